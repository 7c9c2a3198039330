package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 100
	// MaxPage keeps the offset and the end of the page within int.
	MaxPage = (math.MaxInt - MaxSize) / MaxSize
)

// Request selects a zero-based page of a listing.
type Request struct {
	Page int
	Size int
}

// Normalize clamps the request into the accepted range.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	return r
}

// Offset returns the number of rows preceding the page.
func (r Request) Offset() int {
	n := r.Normalize()
	return n.Page * n.Size
}

// Page is one slice of an ordered listing plus the listing's total size.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int64
}

// NewPage assembles a page for the given request.
func NewPage[T any](items []T, req Request, total int64) Page[T] {
	req = req.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: req.Page, Size: req.Size, TotalItems: total}
}

// TotalPages reports how many pages the listing spans.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 || p.TotalItems == 0 {
		return 0
	}
	return int((p.TotalItems + int64(p.Size) - 1) / int64(p.Size))
}

// Slice cuts an in-memory listing into the requested page.
func Slice[T any](all []T, req Request) Page[T] {
	req = req.Normalize()
	total := int64(len(all))
	start := req.Offset()
	if start >= len(all) {
		return NewPage[T](nil, req, total)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return NewPage(items, req, total)
}

// Map converts the items of a page while keeping its position.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[U]{Items: items, Page: p.Page, Size: p.Size, TotalItems: p.TotalItems}
}

var (
	ErrInvalidPage = errors.New("page must be an integer between 0 and " + strconv.Itoa(MaxPage))
	ErrInvalidSize = errors.New("size must be a positive integer")
)

// Parse reads raw page and size query values. Blank values fall back to defaults.
func Parse(page, size string) (Request, error) {
	var req Request
	var err error
	if page = strings.TrimSpace(page); page != "" {
		if req.Page, err = strconv.Atoi(page); err != nil || req.Page < 0 || req.Page > MaxPage {
			return Request{}, ErrInvalidPage
		}
	}
	if size = strings.TrimSpace(size); size != "" {
		if req.Size, err = strconv.Atoi(size); err != nil || req.Size <= 0 {
			return Request{}, ErrInvalidSize
		}
	}
	return req.Normalize(), nil
}
