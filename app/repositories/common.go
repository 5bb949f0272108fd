package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix    = "user:"
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
)

// OpenInMemory opens a badger instance that lives only for the lifetime of
// the process. All entity data is volatile.
func OpenInMemory() (*badger.DB, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	return badger.Open(opts)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

// insertEntity writes a new record, refusing to overwrite an existing key.
// A collision can only happen if the ID generator repeats itself; it is
// surfaced as ErrConflict rather than silently ignored.
func insertEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	_, err := txn.Get(key)
	if err == nil {
		return ErrConflict
	}
	if err != badger.ErrKeyNotFound {
		return err
	}

	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// updateEntity overwrites an existing record, failing with ErrNotFound if
// the key is absent.
func updateEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// deleteEntity removes an existing record, failing with ErrNotFound if the
// key is absent.
func deleteEntity(txn *badger.Txn, key []byte) error {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return txn.Delete(key)
}
