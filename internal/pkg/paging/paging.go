// Package paging bounds list queries and computes page metadata.
package paging

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a normalized pagination request. Construct via New so the
// bounds are always applied.
type Page struct {
	Number int
	Size   int
}

// New clamps the requested page and size: page < 0 falls back to 0,
// size <= 0 falls back to DefaultPageSize and anything above
// MaxPageSize is capped, not rejected.
func New(number, size int) Page {
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return p.Number * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// Meta is the envelope metadata returned alongside every list response.
// Size reflects the post-cap value, not what the caller asked for.
type Meta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func (p Page) MetaFor(total int64) Meta {
	return Meta{Page: p.Number, PageSize: p.Size, Total: total}
}
