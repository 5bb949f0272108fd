// Package events defines the lifecycle events the mutation engine publishes
// and the topics subscribers listen on. Topics are exact-match strings; the
// comment topic is parameterized per post so a subscriber only sees one
// post's comment stream.
package events

import "pressroom/app/models"

// Action tags what happened to the entity carried by an event.
type Action string

const (
	ActionCreated Action = "CREATED"
	ActionUpdated Action = "UPDATED"
	ActionDeleted Action = "DELETED"
)

// TopicPosts carries PostEvent payloads for every post whose visibility
// changes. There is no user topic; user mutations are silent.
const TopicPosts = "post"

// CommentTopic returns the topic carrying CommentEvent payloads for a
// single post's comments.
func CommentTopic(postID string) string {
	return "comment:" + postID
}

// Event is the payload contract of the notification bus. Exactly two
// variants exist, one per topic family.
type Event interface {
	EventAction() Action
}

// PostEvent reports a post entering, changing within, or leaving subscriber
// visibility. An unpublish is reported as DELETED with the pre-update
// snapshot; a publish as CREATED with the post-update data.
type PostEvent struct {
	Action Action      `json:"mutation"`
	Post   models.Post `json:"data"`
}

// EventAction returns the event's lifecycle tag.
func (e PostEvent) EventAction() Action { return e.Action }

// CommentEvent reports a comment change on one post's comment stream.
type CommentEvent struct {
	Action  Action         `json:"mutation"`
	Comment models.Comment `json:"data"`
}

// EventAction returns the event's lifecycle tag.
func (e CommentEvent) EventAction() Action { return e.Action }
