package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"peer-backend/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginPersistsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["password"] != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-123",
			"user":  map[string]interface{}{"id": 7, "username": "alice", "email": "a@x.com"},
		})
	}))
	defer srv.Close()

	t.Run("valid credentials persist the token", func(t *testing.T) {
		c := client.New(srv.URL)
		user, err := c.Login(context.Background(), "a@x.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "tok-123", c.Session.Token())
		assert.Equal(t, int64(7), c.Session.User().ID)
	})

	t.Run("invalid credentials persist nothing", func(t *testing.T) {
		c := client.New(srv.URL)
		_, err := c.Login(context.Background(), "a@x.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", err.Error())

		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Empty(t, c.Session.Token())
		assert.Nil(t, c.Session.User())
	})
}

func TestSignupPasswordMismatchIsLocal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "User created"})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	err := c.Signup(context.Background(), client.SignupInput{
		Username:        "alice",
		Email:           "a@x.com",
		Password:        "p1",
		ConfirmPassword: "p2",
	})

	assert.ErrorIs(t, err, client.ErrPasswordMismatch)
	assert.Equal(t, "Passwords do not match.", err.Error())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "mismatch must not reach the network")

	err = c.Signup(context.Background(), client.SignupInput{
		Username:        "alice",
		Email:           "a@x.com",
		Password:        "p1",
		ConfirmPassword: "p1",
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBearerTokenAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "posts": []interface{}{}})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	c.Session.SetCredentials("tok-abc", &client.User{ID: 1})

	_, err := c.ListPosts(context.Background())
	assert.NoError(t, err)
}

// Toggling a like twice returns both count and state to their original
// values when the server enforces pair semantics.
func TestLikeToggleRoundTrip(t *testing.T) {
	liked := false
	var count int64 = 4
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/posts/9/like", r.URL.Path)
		if liked {
			liked = false
			count--
		} else {
			liked = true
			count++
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":       true,
			"likes_count":   count,
			"liked_by_user": liked,
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)

	first, err := c.ToggleLike(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.LikesCount)
	assert.True(t, first.LikedByUser)

	second, err := c.ToggleLike(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(4), second.LikesCount)
	assert.False(t, second.LikedByUser)
}

func TestErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.GetProfile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestMultipartUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/posts/photo", r.URL.Path)
		require.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "pic.png", header.Filename)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"url":     "http://example.com/uploads/post_photos/1_x.jpg",
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	url, err := c.UploadPostPhoto(context.Background(), "pic.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Contains(t, url, "post_photos/")
}
