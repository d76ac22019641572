// Package apperr holds the error taxonomy shared by every resource collection.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrNotFound is wrapped by every domain "record not found" error.
var ErrNotFound = errors.New("not found")

// ValidationError carries every field violation found on an entity.
type ValidationError struct {
	Entity string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, "; "))
}

// FromValidation converts an ozzo-validation result into a *ValidationError.
// Nil stays nil and internal validator errors are returned untouched.
// prefix is prepended to every field name ("publisher." for embedded documents).
func FromValidation(entity, prefix string, err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	fields := map[string]string{}
	collect(fields, prefix, err)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Fields: fields}
}

func collect(dst map[string]string, prefix string, err error) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		for field, fieldErr := range errs {
			if fieldErr == nil {
				continue
			}
			collect(dst, prefix+field+".", fieldErr)
		}
		return
	}
	dst[strings.TrimSuffix(prefix, ".")] = err.Error()
}

// Merge folds several validation results for the same entity into one.
// Non-validation errors short-circuit.
func Merge(entity string, errs ...error) error {
	fields := map[string]string{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for k, v := range ve.Fields {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Fields: fields}
}

// DuplicateKeyError reports a unique index violation.
type DuplicateKeyError struct {
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

// IsDuplicateKey reports whether err is a unique index violation, either typed
// or recognised by the store's "duplicate key" message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
