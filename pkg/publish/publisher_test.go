package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPPublisherSuccess(t *testing.T) {
	var received Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "post_id": "abc-1", "detail": {"views": 0}}`))
	}))
	defer server.Close()

	p := NewHTTPPublisher(server.URL, nil)
	result, err := p.Publish(context.Background(), Request{
		Content: "hello",
		Images:  []string{"https://cdn/img.png"},
		Tags:    []string{"foodie"},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "abc-1", result.PostID)
	assert.Equal(t, "hello", received.Content)
	assert.Equal(t, []string{"foodie"}, received.Tags)
}

func TestHTTPPublisherAmbiguousReplyCountsAsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "from-id-field"}`))
	}))
	defer server.Close()

	result, err := NewHTTPPublisher(server.URL, nil).Publish(context.Background(), Request{})
	require.NoError(t, err)
	assert.True(t, result.Success, "no explicit failure indicator means success")
	assert.Equal(t, "from-id-field", result.PostID)
}

func TestHTTPPublisherExplicitFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "detail": {"reason": "quota"}}`))
	}))
	defer server.Close()

	result, err := NewHTTPPublisher(server.URL, nil).Publish(context.Background(), Request{})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestHTTPPublisherBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewHTTPPublisher(server.URL, nil).Publish(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPPublisherUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewHTTPPublisher(server.URL, nil).Publish(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestHTTPPublisherUnparsableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	_, err := NewHTTPPublisher(server.URL, nil).Publish(context.Background(), Request{})
	assert.Error(t, err)
}

func TestMockPublisher(t *testing.T) {
	result, err := MockPublisher{}.Publish(context.Background(), Request{
		Images: []string{"a", "b"},
		Tags:   []string{"x"},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.PostID, "mock-"), "mock ids are clearly marked")
	assert.Equal(t, true, result.Detail["mock"])
}
