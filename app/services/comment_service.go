package services

import (
	"errors"
	"fmt"
	"sync"

	"pressroom/app/events"
	"pressroom/app/models"
	"pressroom/app/repositories"
)

// CommentService handles comment mutations. Every comment event goes out on
// the topic of the post the comment belongs to.
type CommentService struct {
	deps Deps
	mu   *sync.Mutex
}

// CreateComment creates a new comment with a generated ID. Fails with
// ErrInvalidReference unless the author exists and the post exists and is
// published at this moment. Unpublishing the post later does not invalidate
// the comment.
func (s *CommentService) CreateComment(in *models.CreateCommentInput) (*models.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.deps.Users.GetByID(in.Author); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: author %s", ErrInvalidReference, in.Author)
		}
		return nil, err
	}
	post, err := s.deps.Posts.GetByID(in.Post)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: post %s", ErrInvalidReference, in.Post)
		}
		return nil, err
	}
	if !post.Published {
		return nil, fmt.Errorf("%w: post %s is not published", ErrInvalidReference, in.Post)
	}

	comment := &models.Comment{
		ID:     s.deps.NewID(),
		Text:   in.Text,
		Author: in.Author,
		Post:   in.Post,
	}
	if err := s.deps.Comments.Create(comment); err != nil {
		return nil, err
	}

	s.deps.Bus.Publish(events.CommentTopic(comment.Post), events.CommentEvent{
		Action:  events.ActionCreated,
		Comment: *comment,
	})
	return comment, nil
}

// GetComment retrieves a comment by ID.
func (s *CommentService) GetComment(id string) (*models.Comment, error) {
	return s.deps.Comments.GetByID(id)
}

// ListPostComments retrieves all comments on a post.
func (s *CommentService) ListPostComments(postID string) ([]*models.Comment, error) {
	if _, err := s.deps.Posts.GetByID(postID); err != nil {
		return nil, err
	}
	return s.deps.Comments.ListByPost(postID)
}

// UpdateComment overwrites the text when supplied and always publishes
// UPDATED, whether or not anything changed.
func (s *CommentService) UpdateComment(id string, in *models.UpdateCommentInput) (*models.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comment, err := s.deps.Comments.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		comment.Text = *in.Text
	}
	if err := s.deps.Comments.Update(comment); err != nil {
		return nil, err
	}

	s.deps.Bus.Publish(events.CommentTopic(comment.Post), events.CommentEvent{
		Action:  events.ActionUpdated,
		Comment: *comment,
	})
	return comment, nil
}

// DeleteComment removes the comment and publishes DELETED on its post's
// topic.
func (s *CommentService) DeleteComment(id string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, err := s.deps.Comments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Comments.Delete(id); err != nil {
		return nil, err
	}

	s.deps.Bus.Publish(events.CommentTopic(comment.Post), events.CommentEvent{
		Action:  events.ActionDeleted,
		Comment: *comment,
	})
	return comment, nil
}
