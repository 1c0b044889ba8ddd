package entity

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order sorts by a DTO property name, e.g. "id" or "createdAt".
type Order struct {
	Property  string
	Direction Direction
}

// Pageable is a zero-based page request.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// Normalize clamps page and size into their allowed ranges.
func (p Pageable) Normalize() Pageable {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	// Offset must not overflow; such a page is past the end anyway.
	if last := math.MaxInt / p.Size; p.Page > last {
		p.Page = last
	}
	return p
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 0
}

// MapPage converts the content of a page, keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{
		Content:       make([]U, 0, len(p.Content)),
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}
	for _, v := range p.Content {
		out.Content = append(out.Content, fn(v))
	}
	return out
}
