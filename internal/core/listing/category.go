// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"strings"

	"github.com/taibuivan/litfair/internal/platform/apperr"
	"github.com/taibuivan/litfair/pkg/slug"
)

// Category classifies books. Membership is a shared many-to-many relation:
// neither side owns the other, and the two sets must stay symmetric.
type Category struct {
	id   string
	name string
	slug string

	// books is keyed by the variant-independent core so that identity is
	// stable regardless of which concrete Book type was inserted.
	books map[*bookCore]struct{}
}

// NewCategory constructs a category with a slug derived from the name.
func NewCategory(name string) *Category {
	return &Category{
		name:  name,
		slug:  slug.From(name),
		books: make(map[*bookCore]struct{}),
	}
}

// ID returns the persistent identity, or "" before the first save.
func (c *Category) ID() string { return c.id }

func (c *Category) setID(id string) { c.id = id }

// Name returns the unique category name.
func (c *Category) Name() string { return c.name }

// SetName replaces the name and regenerates the slug.
func (c *Category) SetName(name string) {
	c.name = name
	c.slug = slug.From(name)
}

// Slug returns the URL-safe identifier derived from the name.
func (c *Category) Slug() string { return c.slug }

// # Category ↔ Book

// Books returns a copy of the member books.
func (c *Category) Books() []Book {
	out := make([]Book, 0, len(c.books))
	for core := range c.books {
		out = append(out, core.self)
	}
	return out
}

// HasBook reports whether the book is a member of the category.
func (c *Category) HasBook(book Book) bool {
	if book == nil {
		return false
	}
	_, ok := c.books[book.core()]
	return ok
}

// AddBook inserts the book and fixes up its category set. A nil or
// already-present book is a no-op; the mutual call terminates because the
// second side observes the relation already established.
func (c *Category) AddBook(book Book) {
	if book == nil || c.HasBook(book) {
		return
	}
	c.books[book.core()] = struct{}{}
	if !book.core().HasCategory(c) {
		book.core().AddCategory(c)
	}
}

// RemoveBook removes the book and fixes up its category set.
func (c *Category) RemoveBook(book Book) {
	if book == nil || !c.HasBook(book) {
		return
	}
	delete(c.books, book.core())
	if book.core().HasCategory(c) {
		book.core().RemoveCategory(c)
	}
}

// Violations returns every invalid attribute of the category.
func (c *Category) Violations() []apperr.FieldError {
	var violations []apperr.FieldError
	if strings.TrimSpace(c.name) == "" {
		violations = append(violations, apperr.FieldError{Field: FieldName, Message: "Category name can't be blank"})
	}
	return violations
}
