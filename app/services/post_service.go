package services

import (
	"errors"
	"fmt"
	"sync"

	"pressroom/app/events"
	"pressroom/app/models"
	"pressroom/app/repositories"
)

// PostService handles post mutations and derives the visibility events the
// post topic carries. Unpublished posts are invisible to subscribers, so a
// publish flip is reported as a synthetic CREATED or DELETED rather than an
// UPDATED.
type PostService struct {
	deps Deps
	mu   *sync.Mutex
}

// CreatePost creates a new post with a generated ID. Fails with
// ErrInvalidReference if the author does not exist. Publishes CREATED only
// when the post starts out published.
func (s *PostService) CreatePost(in *models.CreatePostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.deps.Users.GetByID(in.Author); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: author %s", ErrInvalidReference, in.Author)
		}
		return nil, err
	}

	post := &models.Post{
		ID:        s.deps.NewID(),
		Title:     in.Title,
		Body:      in.Body,
		Published: in.Published,
		Author:    in.Author,
	}
	if err := s.deps.Posts.Create(post); err != nil {
		return nil, err
	}

	if post.Published {
		s.deps.Bus.Publish(events.TopicPosts, events.PostEvent{
			Action: events.ActionCreated,
			Post:   *post,
		})
	}
	return post, nil
}

// GetPost retrieves a post by ID.
func (s *PostService) GetPost(id string) (*models.Post, error) {
	return s.deps.Posts.GetByID(id)
}

// ListPosts retrieves all posts.
func (s *PostService) ListPosts() ([]*models.Post, error) {
	return s.deps.Posts.List()
}

// UpdatePost applies the supplied field overwrites, then reports the
// visibility transition:
//
//   - Published supplied and flipped true to false: DELETED, carrying the
//     pre-update snapshot.
//   - Published supplied and flipped false to true: CREATED, carrying the
//     post-update data.
//   - No flip and the post is published: UPDATED.
//   - No flip and the post is unpublished: no event.
func (s *PostService) UpdatePost(id string, in *models.UpdatePostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.deps.Posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	snapshot := *post

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Body != nil {
		post.Body = *in.Body
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if err := s.deps.Posts.Update(post); err != nil {
		return nil, err
	}

	switch {
	case in.Published != nil && snapshot.Published && !post.Published:
		s.deps.Bus.Publish(events.TopicPosts, events.PostEvent{
			Action: events.ActionDeleted,
			Post:   snapshot,
		})
	case in.Published != nil && !snapshot.Published && post.Published:
		s.deps.Bus.Publish(events.TopicPosts, events.PostEvent{
			Action: events.ActionCreated,
			Post:   *post,
		})
	case post.Published:
		s.deps.Bus.Publish(events.TopicPosts, events.PostEvent{
			Action: events.ActionUpdated,
			Post:   *post,
		})
	}
	return post, nil
}

// DeletePost removes the post and every comment on it, and publishes
// DELETED only if the removed post was published. Cascaded comment removal
// publishes nothing.
func (s *PostService) DeletePost(id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.deps.Posts.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.deps.Posts.Delete(id); err != nil {
		return nil, err
	}
	if _, err := s.deps.Comments.DeleteByPost(id); err != nil {
		return nil, err
	}

	if post.Published {
		s.deps.Bus.Publish(events.TopicPosts, events.PostEvent{
			Action: events.ActionDeleted,
			Post:   *post,
		})
	}
	return post, nil
}
