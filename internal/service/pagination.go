package service

import "github.com/dom/unique-nails/internal/domain"

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Paginate returns items[(page-1)*limit : page*limit], clamped to the
// slice bounds. page and limit must both be at least 1; pages past the
// last one are empty, however large.
func Paginate[T any](items []T, page, limit int) (Page[T], error) {
	if page < 1 || limit < 1 {
		return Page[T]{}, domain.Validation("page and limit must be positive integers")
	}

	total := len(items)
	totalPages := total/limit + min(1, total%limit)

	start := total
	if page <= totalPages {
		start = (page - 1) * limit
	}
	end := start + min(limit, total-start)

	return Page[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
