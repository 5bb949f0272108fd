package services

import (
	"testing"

	"pressroom/app/events"
	"pressroom/app/models"
	"pressroom/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func TestCreatePost(t *testing.T) {
	svc, bus := newTestServices(t)
	user := mustCreateUser(t, svc, "Ada", "ada@x.com")

	sub := bus.Subscribe(events.TopicPosts)
	defer sub.Cancel()

	t.Run("rejects unknown author", func(t *testing.T) {
		_, err := svc.Posts.CreatePost(&models.CreatePostInput{Title: "Orphan", Author: "ghost"})
		assert.ErrorIs(t, err, ErrInvalidReference)
		assertNoEvent(t, sub)
	})

	t.Run("published post emits CREATED", func(t *testing.T) {
		post := mustCreatePost(t, svc, user.ID, "Live", true)

		ev := recvPostEvent(t, sub)
		assert.Equal(t, events.ActionCreated, ev.Action)
		assert.Equal(t, post.ID, ev.Post.ID)
		assert.True(t, ev.Post.Published)
	})

	t.Run("unpublished post emits nothing", func(t *testing.T) {
		mustCreatePost(t, svc, user.ID, "Draft", false)
		assertNoEvent(t, sub)
	})
}

func TestUpdatePostTransitions(t *testing.T) {
	t.Run("published to unpublished emits DELETED with snapshot", func(t *testing.T) {
		svc, bus := newTestServices(t)
		user := mustCreateUser(t, svc, "Ada", "ada@x.com")
		post := mustCreatePost(t, svc, user.ID, "Original", true)

		sub := bus.Subscribe(events.TopicPosts)
		defer sub.Cancel()

		updated, err := svc.Posts.UpdatePost(post.ID, &models.UpdatePostInput{
			Title:     strPtr("Renamed"),
			Published: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.False(t, updated.Published)

		// The event carries the post as it looked before the update.
		ev := recvPostEvent(t, sub)
		assert.Equal(t, events.ActionDeleted, ev.Action)
		assert.Equal(t, "Original", ev.Post.Title)
		assert.True(t, ev.Post.Published)
		assertNoEvent(t, sub)
	})

	t.Run("unpublished to published emits CREATED with new data", func(t *testing.T) {
		svc, bus := newTestServices(t)
		user := mustCreateUser(t, svc, "Ada", "ada@x.com")
		post := mustCreatePost(t, svc, user.ID, "Draft", false)

		sub := bus.Subscribe(events.TopicPosts)
		defer sub.Cancel()

		_, err := svc.Posts.UpdatePost(post.ID, &models.UpdatePostInput{
			Title:     strPtr("Now Live"),
			Published: boolPtr(true),
		})
		require.NoError(t, err)

		ev := recvPostEvent(t, sub)
		assert.Equal(t, events.ActionCreated, ev.Action)
		assert.Equal(t, "Now Live", ev.Post.Title)
		assert.True(t, ev.Post.Published)
		assertNoEvent(t, sub)
	})

	t.Run("title change on published post emits UPDATED", func(t *testing.T) {
		svc, bus := newTestServices(t)
		user := mustCreateUser(t, svc, "Ada", "ada@x.com")
		post := mustCreatePost(t, svc, user.ID, "Live", true)

		sub := bus.Subscribe(events.TopicPosts)
		defer sub.Cancel()

		_, err := svc.Posts.UpdatePost(post.ID, &models.UpdatePostInput{Title: strPtr("Live v2")})
		require.NoError(t, err)

		ev := recvPostEvent(t, sub)
		assert.Equal(t, events.ActionUpdated, ev.Action)
		assert.Equal(t, "Live v2", ev.Post.Title)
		assertNoEvent(t, sub)
	})

	t.Run("published supplied but unchanged behaves like a plain update", func(t *testing.T) {
		svc, bus := newTestServices(t)
		user := mustCreateUser(t, svc, "Ada", "ada@x.com")
		post := mustCreatePost(t, svc, user.ID, "Live", true)

		sub := bus.Subscribe(events.TopicPosts)
		defer sub.Cancel()

		_, err := svc.Posts.UpdatePost(post.ID, &models.UpdatePostInput{Published: boolPtr(true)})
		require.NoError(t, err)

		ev := recvPostEvent(t, sub)
		assert.Equal(t, events.ActionUpdated, ev.Action)
		assertNoEvent(t, sub)
	})

	t.Run("title change on unpublished post emits nothing", func(t *testing.T) {
		svc, bus := newTestServices(t)
		user := mustCreateUser(t, svc, "Ada", "ada@x.com")
		post := mustCreatePost(t, svc, user.ID, "Draft", false)

		sub := bus.Subscribe(events.TopicPosts)
		defer sub.Cancel()

		_, err := svc.Posts.UpdatePost(post.ID, &models.UpdatePostInput{Title: strPtr("Still Draft")})
		require.NoError(t, err)
		assertNoEvent(t, sub)
	})

	t.Run("unpublished staying unpublished emits nothing", func(t *testing.T) {
		svc, bus := newTestServices(t)
		user := mustCreateUser(t, svc, "Ada", "ada@x.com")
		post := mustCreatePost(t, svc, user.ID, "Draft", false)

		sub := bus.Subscribe(events.TopicPosts)
		defer sub.Cancel()

		_, err := svc.Posts.UpdatePost(post.ID, &models.UpdatePostInput{Published: boolPtr(false)})
		require.NoError(t, err)
		assertNoEvent(t, sub)
	})

	t.Run("missing post", func(t *testing.T) {
		svc, _ := newTestServices(t)
		_, err := svc.Posts.UpdatePost("nope", &models.UpdatePostInput{Title: strPtr("X")})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	svc, bus := newTestServices(t)
	user := mustCreateUser(t, svc, "Ada", "ada@x.com")

	t.Run("published post emits DELETED and removes comments", func(t *testing.T) {
		post := mustCreatePost(t, svc, user.ID, "Live", true)
		comment := mustCreateComment(t, svc, user.ID, post.ID, "hi")

		sub := bus.Subscribe(events.TopicPosts)
		defer sub.Cancel()

		deleted, err := svc.Posts.DeletePost(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, deleted.ID)

		ev := recvPostEvent(t, sub)
		assert.Equal(t, events.ActionDeleted, ev.Action)
		assert.Equal(t, post.ID, ev.Post.ID)

		_, err = svc.Comments.GetComment(comment.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("unpublished post emits nothing", func(t *testing.T) {
		post := mustCreatePost(t, svc, user.ID, "Draft", false)

		sub := bus.Subscribe(events.TopicPosts)
		defer sub.Cancel()

		_, err := svc.Posts.DeletePost(post.ID)
		require.NoError(t, err)
		assertNoEvent(t, sub)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.Posts.DeletePost("nope")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
