package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Response is the canonical reply shape handed to pipeline stages. A raw
// reply that parses as a JSON object keeps its fields; anything else is
// wrapped so the text is reachable under the conventional keys.
type Response struct {
	raw    string
	fields map[string]any
}

// NewResponse normalizes a raw vendor reply. Markdown code fences around a
// JSON body are stripped before parsing.
func NewResponse(raw string) Response {
	trimmed := stripFences(strings.TrimSpace(raw))
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil && obj != nil {
		return Response{raw: raw, fields: obj}
	}
	return Response{raw: raw, fields: map[string]any{"text": raw, "output": raw, "content": raw}}
}

// Raw returns the unmodified vendor reply.
func (r Response) Raw() string { return r.raw }

// Text returns the textual payload, probing the conventional keys.
func (r Response) Text() string {
	for _, key := range []string{"text", "output", "content"} {
		if s, ok := r.fields[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Has reports whether the normalized object carries the given key.
func (r Response) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Decode unmarshals the whole normalized object into v.
func (r Response) Decode(v any) error {
	b, err := json.Marshal(r.fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return nil
}

// DecodeKey unmarshals a single field of the normalized object into v.
func (r Response) DecodeKey(key string, v any) error {
	val, ok := r.fields[key]
	if !ok {
		return fmt.Errorf("%w: missing key %q", ErrUnparsable, key)
	}
	b, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, so fenced JSON replies still normalize into objects.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```")
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
