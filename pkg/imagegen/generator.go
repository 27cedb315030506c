package imagegen

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/mealpost/mealpost/pkg/config"
)

// DefaultSize is the square size requested for every generated image.
const DefaultSize = "1024x1024"

const placeholderHost = "imgs.local"

// Generator produces one image for a prompt and returns its URL.
type Generator interface {
	Generate(ctx context.Context, prompt, size string) (string, error)
}

// OpenAIGenerator calls an OpenAI-compatible image endpoint.
type OpenAIGenerator struct {
	vendor string
	client *openai.Client
}

func NewOpenAIGenerator(vendor string, cfg config.Vendor) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vendor %s: API key is required", vendor)
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIGenerator{vendor: vendor, client: openai.NewClientWithConfig(clientCfg)}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt, size string) (string, error) {
	if size == "" {
		size = DefaultSize
	}
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("vendor %s: %w", g.vendor, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("vendor %s: no image returned", g.vendor)
	}
	return resp.Data[0].URL, nil
}

// OfflineGenerator never produces an image; callers degrade to placeholders.
type OfflineGenerator struct{}

func (OfflineGenerator) Generate(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("offline mode: image generation unavailable")
}

// PlaceholderURL synthesizes a deterministic local reference for an asset
// that could not be generated.
func PlaceholderURL(name, part string) string {
	return fmt.Sprintf("https://%s/%s_%s.png", placeholderHost, Slug(name), part)
}

// IsPlaceholder reports whether a URL is a synthesized local reference.
func IsPlaceholder(url string) bool {
	return strings.Contains(url, "://"+placeholderHost+"/")
}

var slugPattern = regexp.MustCompile(`[^a-z0-9\p{Han}]+`)

// Slug lowercases a dish name into a URL- and file-safe token.
func Slug(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "dish"
	}
	return s
}
