package store

import (
	"errors"
	"fmt"

	"github.com/badele/textanalyzer/internal/types"
)

// ErrStorage matches every error returned by a Store.
var ErrStorage = types.ErrStorage

var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
	ErrTextNotFound     = errors.New("text not found")
	ErrDuplicateStats   = errors.New("stats already recorded for text")
	ErrClosed           = errors.New("store closed")
)

// StorageError is returned by every failing Store operation.
type StorageError struct {
	Op     string // open, schema, insert_text, insert_token, insert_stats, close
	Driver StoreType
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Driver, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func storageErr(driver StoreType, op string, err error) error {
	return &StorageError{Op: op, Driver: driver, Err: err}
}
