package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"peer-backend/client"
	"peer-backend/client/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposerLifecycle(t *testing.T) {
	var uploaded, created bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/posts/photo":
			uploaded = true
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"url":     "http://x/uploads/post_photos/7_a.jpg",
			})
		case "/api/posts":
			created = true
			var body map[string]interface{}
			json.NewDecoder(r.Body).Decode(&body)
			// A URL arrives, never inline image bytes.
			assert.Equal(t, "http://x/uploads/post_photos/7_a.jpg", body["image_url"])
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"post":    map[string]interface{}{"id": 1, "content": body["content"]},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	composer := dashboard.NewComposer(api)
	ctx := context.Background()

	assert.Equal(t, dashboard.ComposerIdle, composer.State())

	composer.Begin()
	assert.Equal(t, dashboard.ComposerComposing, composer.State())

	// Empty content is a validation failure: no request, form stays open.
	_, err := composer.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, dashboard.ComposerComposing, composer.State())
	assert.False(t, created)

	composer.SetContent("shipping today")
	require.NoError(t, composer.AttachPhoto("pic.png", []byte{0x89, 0x50}))

	post, err := composer.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, uploaded)
	assert.True(t, created)
	assert.Equal(t, "shipping today", post.Content)
	assert.Equal(t, dashboard.ComposerIdle, composer.State())
}

func TestComposerRejectsOversizedPhoto(t *testing.T) {
	composer := dashboard.NewComposer(client.New("http://unused"))
	composer.Begin()

	big := make([]byte, 5*1024*1024+1)
	err := composer.AttachPhoto("big.png", big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")
}

func TestComposerNetworkFailureReturnsToIdle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Internal Server Error"})
	}))
	defer srv.Close()

	composer := dashboard.NewComposer(client.New(srv.URL))
	composer.Begin()
	composer.SetContent("hello")

	_, err := composer.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.Equal(t, dashboard.ComposerIdle, composer.State())
}
