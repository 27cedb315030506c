package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Invoker wraps a Client with the per-attempt timeout and bounded-retry
// discipline every pipeline stage relies on. The zero value is not usable;
// construct with NewInvoker.
type Invoker struct {
	client   Client
	timeout  time.Duration
	attempts int
	delay    time.Duration
}

func NewInvoker(client Client, timeout time.Duration, attempts int, delay time.Duration) *Invoker {
	if attempts < 1 {
		attempts = 1
	}
	return &Invoker{client: client, timeout: timeout, attempts: attempts, delay: delay}
}

// Invoke performs the call, retrying transient failures with a constant
// inter-attempt delay. After the final attempt fails it surfaces a
// ServiceError carrying the last underlying error.
func (inv *Invoker) Invoke(ctx context.Context, req Request) (Response, error) {
	var (
		resp  Response
		tries int
	)
	operation := func() error {
		tries++
		callCtx, cancel := context.WithTimeout(ctx, inv.timeout)
		defer cancel()
		raw, err := inv.client.Complete(callCtx, req)
		if err != nil {
			return err
		}
		resp = NewResponse(raw)
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(inv.delay), uint64(inv.attempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return Response{}, &ServiceError{Vendor: req.Vendor, Attempts: tries, Err: err}
	}
	return resp, nil
}
