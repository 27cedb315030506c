package imagegen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "tomato-egg-stir-fry", Slug("Tomato Egg Stir-fry"))
	assert.Equal(t, "dish", Slug("  !!  "))
	assert.Equal(t, "番茄炒蛋", Slug("番茄炒蛋"))
}

func TestPlaceholderURL(t *testing.T) {
	url := PlaceholderURL("Tomato Egg Stir-fry", "cover")
	assert.Equal(t, "https://imgs.local/tomato-egg-stir-fry_cover.png", url)
	assert.True(t, IsPlaceholder(url))
	assert.False(t, IsPlaceholder("https://cdn.example/real.png"))
}

func TestStoreSave(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	fs := afero.NewMemMapFs()
	store := NewStore(fs, "images")

	path, err := store.Save(context.Background(), server.URL, "Cover Shot")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestStoreSkipsPlaceholders(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "images")
	_, err := store.Save(context.Background(), PlaceholderURL("dish", "cover"), "dish")
	assert.Error(t, err)
}

func TestStoreBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	store := NewStore(afero.NewMemMapFs(), "images")
	_, err := store.Save(context.Background(), server.URL, "dish")
	assert.Error(t, err)
}
