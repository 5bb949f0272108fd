package repositories

import (
	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create inserts a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return insertEntity(txn, []byte(CommentKeyPrefix+comment.ID), comment)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(CommentKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})

	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves all comments attached to a post
func (r *BadgerCommentRepository) ListByPost(postID string) ([]*models.Comment, error) {
	var comments []*models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return err
			}
			if comment.Post == postID {
				comments = append(comments, &comment)
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Update overwrites an existing comment
func (r *BadgerCommentRepository) Update(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return updateEntity(txn, []byte(CommentKeyPrefix+comment.ID), comment)
	})
}

// Delete removes a comment by ID
func (r *BadgerCommentRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteEntity(txn, []byte(CommentKeyPrefix+id))
	})
}

// DeleteByPost removes every comment attached to the given post and returns
// the removed comments.
func (r *BadgerCommentRepository) DeleteByPost(postID string) ([]*models.Comment, error) {
	return r.deleteWhere(func(c *models.Comment) bool {
		return c.Post == postID
	})
}

// DeleteByAuthor removes every comment authored by the given user and
// returns the removed comments.
func (r *BadgerCommentRepository) DeleteByAuthor(author string) ([]*models.Comment, error) {
	return r.deleteWhere(func(c *models.Comment) bool {
		return c.Author == author
	})
}

// deleteWhere removes all comments matching the predicate in one txn.
func (r *BadgerCommentRepository) deleteWhere(match func(*models.Comment) bool) ([]*models.Comment, error) {
	var removed []*models.Comment

	err := r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				it.Close()
				return err
			}
			if match(&comment) {
				removed = append(removed, &comment)
			}
		}
		it.Close()

		for _, comment := range removed {
			if err := txn.Delete([]byte(CommentKeyPrefix + comment.ID)); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return removed, nil
}
