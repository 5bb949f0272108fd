package routes

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pressroom/app/events"
	"pressroom/app/pubsub"
	"pressroom/app/repositories"
	"pressroom/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := repositories.OpenInMemory()
	require.NoError(t, err)

	bus := pubsub.New[events.Event]()
	n := 0
	svc := services.New(services.Deps{
		Users:    repositories.NewBadgerUserRepository(db),
		Posts:    repositories.NewBadgerPostRepository(db),
		Comments: repositories.NewBadgerCommentRepository(db),
		Bus:      bus,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})

	ts := httptest.NewServer(SetupRoutes(svc, bus))
	t.Cleanup(func() {
		ts.Close()
		require.NoError(t, db.Close())
	})
	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

func TestMutationAPI(t *testing.T) {
	ts := newTestServer(t)

	status, user := doJSON(t, "POST", ts.URL+"/api/users", map[string]interface{}{
		"name": "Ada", "email": "ada@x.com",
	})
	require.Equal(t, http.StatusCreated, status)
	userID := user["id"].(string)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		status, body := doJSON(t, "POST", ts.URL+"/api/users", map[string]interface{}{
			"name": "Imposter", "email": "ada@x.com",
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Contains(t, body["error"], "email already in use")
	})

	t.Run("post with unknown author is rejected", func(t *testing.T) {
		status, _ := doJSON(t, "POST", ts.URL+"/api/posts", map[string]interface{}{
			"title": "Orphan", "author": "ghost",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	status, post := doJSON(t, "POST", ts.URL+"/api/posts", map[string]interface{}{
		"title": "Hello", "body": "world", "published": true, "author": userID,
	})
	require.Equal(t, http.StatusCreated, status)
	postID := post["id"].(string)

	t.Run("comment lifecycle", func(t *testing.T) {
		status, comment := doJSON(t, "POST", ts.URL+"/api/posts/"+postID+"/comments", map[string]interface{}{
			"text": "hi", "author": userID,
		})
		require.Equal(t, http.StatusCreated, status)
		commentID := comment["id"].(string)

		status, updated := doJSON(t, "PUT", ts.URL+"/api/comments/"+commentID, map[string]interface{}{
			"text": "edited",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "edited", updated["text"])

		status, _ = doJSON(t, "DELETE", ts.URL+"/api/comments/"+commentID, nil)
		assert.Equal(t, http.StatusOK, status)

		status, _ = doJSON(t, "DELETE", ts.URL+"/api/comments/"+commentID, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("comment stream requires a published post", func(t *testing.T) {
		status, _ := doJSON(t, "GET", ts.URL+"/api/posts/ghost/comments/stream", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("deleting the user cascades", func(t *testing.T) {
		status, _ := doJSON(t, "DELETE", ts.URL+"/api/users/"+userID, nil)
		require.Equal(t, http.StatusOK, status)

		status, _ = doJSON(t, "GET", ts.URL+"/api/posts/"+postID, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestPostStream(t *testing.T) {
	ts := newTestServer(t)

	status, user := doJSON(t, "POST", ts.URL+"/api/users", map[string]interface{}{
		"name": "Ada", "email": "ada@x.com",
	})
	require.Equal(t, http.StatusCreated, status)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/api/posts/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// The subscription is live once the headers arrive; this publish must
	// reach the stream.
	status, _ = doJSON(t, "POST", ts.URL+"/api/posts", map[string]interface{}{
		"title": "Streamed", "published": true, "author": user["id"],
	})
	require.Equal(t, http.StatusCreated, status)

	lines := make(chan string, 1)
	go func() {
		reader := bufio.NewReader(resp.Body)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if strings.HasPrefix(line, "data:") {
				lines <- line
				return
			}
		}
	}()

	select {
	case line := <-lines:
		assert.Contains(t, line, `"CREATED"`)
		assert.Contains(t, line, "Streamed")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream event")
	}
}
