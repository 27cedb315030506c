package llm

import "context"

// Request is a single chat-completion request to a named vendor.
type Request struct {
	Vendor      string
	System      string
	User        string
	Temperature float32
	// JSONObject asks the endpoint for a structured JSON reply where the
	// vendor supports a response format parameter.
	JSONObject bool
}

// Client performs one raw call against a vendor endpoint. Implementations
// should not retry; the Invoker owns retry and timeout discipline.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
