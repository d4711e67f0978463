// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
package repository

import "errors"

var (
	// ErrConflict is returned when a write would break a uniqueness rule.
	ErrConflict = errors.New("conflicting record exists")
	// ErrForeignKey is returned when a write references a row that does not exist.
	ErrForeignKey = errors.New("referenced record does not exist")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
