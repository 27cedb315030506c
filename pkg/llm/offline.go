package llm

import (
	"context"
	"errors"
)

// ErrOffline is returned by the offline client for every call.
var ErrOffline = errors.New("offline mode: no vendor configured")

// OfflineClient stands in when no endpoint is configured. Every call fails,
// which drives each stage onto its deterministic local fallback, so a full
// pipeline run still completes without network access.
type OfflineClient struct{}

func (OfflineClient) Complete(context.Context, Request) (string, error) {
	return "", ErrOffline
}
