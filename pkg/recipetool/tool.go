package recipetool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPTool queries an external recipe-knowledge endpoint. It is an optional
// collaborator consulted only when the primary generation vendor yields an
// unusable recipe.
type HTTPTool struct {
	endpoint string
	client   *http.Client
}

func NewHTTPTool(endpoint string, client *http.Client) *HTTPTool {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPTool{endpoint: endpoint, client: client}
}

// Query posts the meal type and returns the recipe payload from the reply's
// "recipe" field, or the whole object when that field is absent.
func (t *HTTPTool) Query(ctx context.Context, mealType string) (map[string]any, error) {
	body, err := json.Marshal(map[string]string{"meal_type": mealType})
	if err != nil {
		return nil, fmt.Errorf("encoding recipe query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building recipe query: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recipe tool unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe tool returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading recipe tool response: %w", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("recipe tool response unparsable: %w", err)
	}
	if recipe, ok := parsed["recipe"].(map[string]any); ok {
		return recipe, nil
	}
	return parsed, nil
}
