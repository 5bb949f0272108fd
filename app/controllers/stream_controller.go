package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pressroom/app/events"
	"pressroom/app/pubsub"
	"pressroom/app/repositories"
	"pressroom/app/services"

	"github.com/gorilla/mux"
)

// StreamController relays bus subscriptions to clients as server-sent
// events. Each connection owns one subscription, cancelled when the client
// disconnects.
type StreamController struct {
	postService *services.PostService
	bus         *pubsub.Bus[events.Event]
}

// NewStreamController creates a new StreamController
func NewStreamController(postService *services.PostService, bus *pubsub.Bus[events.Event]) *StreamController {
	return &StreamController{postService: postService, bus: bus}
}

// Posts streams visibility events for all posts.
func (sc *StreamController) Posts(w http.ResponseWriter, r *http.Request) {
	sc.stream(w, r, events.TopicPosts)
}

// PostComments streams comment events for one post. The post must exist and
// be published before the subscription is established.
func (sc *StreamController) PostComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	post, err := sc.postService.GetPost(postID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if !post.Published {
		sendServiceError(w, fmt.Errorf("%w: post %s", repositories.ErrNotFound, postID))
		return
	}
	sc.stream(w, r, events.CommentTopic(postID))
}

func (sc *StreamController) stream(w http.ResponseWriter, r *http.Request, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		sendError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := sc.bus.Subscribe(topic)
	defer sub.Cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
