package pagination

import (
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 10
	// MaxPageSize caps how many rows any page query can request.
	MaxPageSize = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	PageNumber int
	PageSize   int
	SortBy     string
	SortDir    string
}

// Page wraps a result slice with paging metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	LastPage      bool  `json:"lastPage"`
}

// Normalize clamps page inputs and fills defaults. sortable lists the column
// names callers may sort by; unknown columns fall back to the first entry.
func (p Params) Normalize(sortable ...string) Params {
	out := p
	if out.PageNumber < 0 {
		out.PageNumber = 0
	}
	if out.PageSize <= 0 {
		out.PageSize = DefaultPageSize
	}
	if out.PageSize > MaxPageSize {
		out.PageSize = MaxPageSize
	}

	if strings.EqualFold(out.SortDir, "desc") {
		out.SortDir = "desc"
	} else {
		out.SortDir = "asc"
	}

	if len(sortable) > 0 {
		column := sortable[0]
		for _, candidate := range sortable {
			if strings.EqualFold(candidate, out.SortBy) {
				column = candidate
				break
			}
		}
		out.SortBy = column
	}
	return out
}

// Scope returns a GORM scope applying the normalized offset, limit and ordering.
func (p Params) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Offset(p.PageNumber * p.PageSize).Limit(p.PageSize)
		if p.SortBy != "" {
			tx = tx.Order(p.SortBy + " " + p.SortDir)
		}
		return tx
	}
}

// NewPage assembles the response envelope from a result slice and total count.
func NewPage[T any](content []T, p Params, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return Page[T]{
		Content:       content,
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		LastPage:      p.PageNumber >= totalPages-1,
	}
}
