package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyClient fails a fixed number of times before succeeding.
type flakyClient struct {
	failures int
	calls    int
	reply    string
}

func (c *flakyClient) Complete(_ context.Context, _ Request) (string, error) {
	c.calls++
	if c.calls <= c.failures {
		return "", errors.New("transient")
	}
	return c.reply, nil
}

// slowClient blocks until its context is cancelled.
type slowClient struct{}

func (slowClient) Complete(ctx context.Context, _ Request) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestInvokerRecoversFromTransientFailures(t *testing.T) {
	client := &flakyClient{failures: 2, reply: `{"ok": true}`}
	inv := NewInvoker(client, time.Second, 3, time.Millisecond)

	resp, err := inv.Invoke(context.Background(), Request{Vendor: "qwen"})
	require.NoError(t, err)
	assert.Equal(t, 3, client.calls)
	assert.True(t, resp.Has("ok"))
}

func TestInvokerExhaustsRetries(t *testing.T) {
	client := &flakyClient{failures: 10}
	inv := NewInvoker(client, time.Second, 3, time.Millisecond)

	_, err := inv.Invoke(context.Background(), Request{Vendor: "qwen"})
	require.Error(t, err)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "qwen", svcErr.Vendor)
	assert.Equal(t, 3, svcErr.Attempts)
	assert.Equal(t, 3, client.calls, "no attempts beyond the bound")
}

func TestInvokerTimesOutEachAttempt(t *testing.T) {
	inv := NewInvoker(slowClient{}, 10*time.Millisecond, 2, time.Millisecond)

	start := time.Now()
	_, err := inv.Invoke(context.Background(), Request{Vendor: "slow"})
	elapsed := time.Since(start)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, 2, svcErr.Attempts)
	assert.Less(t, elapsed, time.Second, "timeouts bound each attempt")
}

func TestInvokerMinimumOneAttempt(t *testing.T) {
	client := &flakyClient{reply: "hello"}
	inv := NewInvoker(client, time.Second, 0, 0)

	resp, err := inv.Invoke(context.Background(), Request{Vendor: "qwen"})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "hello", resp.Text())
}

func TestOfflineClientAlwaysFails(t *testing.T) {
	inv := NewInvoker(OfflineClient{}, time.Second, 1, 0)
	_, err := inv.Invoke(context.Background(), Request{Vendor: "any"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOffline))
}
