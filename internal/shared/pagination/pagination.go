// Package pagination turns page/limit query parameters into bounded offset slices
// and builds the list envelope shared by every collection.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ErrInvalidParams is returned for a present but non-numeric or non-positive page/limit.
var ErrInvalidParams = errors.New("Params page or limit are not valid")

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// Default returns page 1 with the default limit.
func Default() Params {
	return Params{Page: DefaultPage, Limit: DefaultLimit}
}

// Parse validates raw query values. Empty values fall back to the defaults.
func Parse(page, limit string) (Params, error) {
	p := Default()

	var err error
	if p.Page, err = parsePositive(page, DefaultPage); err != nil {
		return Params{}, err
	}
	if p.Limit, err = parsePositive(limit, DefaultLimit); err != nil {
		return Params{}, err
	}
	// Offset must fit in an int.
	if p.Page-1 > math.MaxInt/p.Limit {
		return Params{}, ErrInvalidParams
	}
	return p, nil
}

func parsePositive(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, ErrInvalidParams
	}
	return n, nil
}

// Offset is the number of records to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Page is the pagination envelope.
type Page[T any] struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Data        []T   `json:"data"`
}

// NewPage builds the envelope. Data is never nil so it always encodes as an array.
func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		TotalItems:  total,
		TotalPages:  TotalPages(total, p.Limit),
		CurrentPage: p.Page,
		Data:        items,
	}
}
