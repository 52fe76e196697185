// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/litfair/internal/core/listing"
)

func validDetails() listing.BookDetails {
	return listing.BookDetails{
		Name:             "The Master and Margarita",
		YearOfPublishing: 1967,
		Description:      "A devil visits Moscow.",
		Author:           "Mikhail Bulgakov",
		ISBN:             "978-0-14-118014-4",
	}
}

/*
TestEstimatedReadingTime verifies the reading-time model of each variant:
pages through the fixed words-per-page and reading-speed constants, disks
through the recording length, and the bundle through the shorter medium.
*/
func TestEstimatedReadingTime(t *testing.T) {
	tests := []struct {
		name string
		book listing.Book
		want float64
	}{
		{
			"paper_300_pages",
			listing.NewPaperBook(validDetails(), 300),
			7.5,
		},
		{
			"disk_three_hours",
			listing.NewDiskBook(validDetails(), 3.0, listing.DiskFormatCD),
			3.0,
		},
		{
			"bundle_disk_shorter",
			listing.NewPaperBookWithDisk(validDetails(), 560, 3.0, listing.DiskFormatDVD, true),
			3.0,
		},
		{
			"bundle_paper_shorter",
			listing.NewPaperBookWithDisk(validDetails(), 80, 12.0, listing.DiskFormatBluRay, false),
			2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.book.EstimatedReadingTime(), 1e-9)
		})
	}
}

/*
TestBookViolations_CollectsAll verifies that validation reports every
broken attribute at once instead of stopping at the first.
*/
func TestBookViolations_CollectsAll(t *testing.T) {
	book := listing.NewPaperBook(listing.BookDetails{
		Name:        "",
		Description: "  ",
		Author:      "",
		ISBN:        "not-an-isbn",
	}, 0)

	violations := book.Violations()
	assert.Len(t, violations, 6)

	fields := make(map[string]bool)
	for _, violation := range violations {
		fields[violation.Field] = true
	}
	assert.True(t, fields[listing.FieldName])
	assert.True(t, fields[listing.FieldYear])
	assert.True(t, fields[listing.FieldDescription])
	assert.True(t, fields[listing.FieldAuthor])
	assert.True(t, fields[listing.FieldISBN])
	assert.True(t, fields[listing.FieldPages])
}

/*
TestBookViolations_ISBN checks the accepted ISBN shapes.
*/
func TestBookViolations_ISBN(t *testing.T) {
	tests := []struct {
		name  string
		isbn  string
		valid bool
	}{
		{"isbn13_hyphenated", "978-0-14-118014-4", true},
		{"isbn13_plain", "9780141180144", true},
		{"isbn10", "0141180145", true},
		{"isbn10_check_x", "043942089X", true},
		{"wrong_length", "12345", false},
		{"letters", "97801411801AB", false},
		{"blank", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validDetails()
			details.ISBN = tt.isbn
			book := listing.NewPaperBook(details, 100)

			var isbnBroken bool
			for _, violation := range book.Violations() {
				if violation.Field == listing.FieldISBN {
					isbnBroken = true
				}
			}
			assert.Equal(t, !tt.valid, isbnBroken)
		})
	}
}

/*
TestBookCategory_Symmetry verifies that membership mutated from either
side is observable from both.
*/
func TestBookCategory_Symmetry(t *testing.T) {
	book := listing.NewPaperBook(validDetails(), 100)
	fiction := listing.NewCategory("Fiction")
	classics := listing.NewCategory("Classics")

	// Added from the book side.
	book.AddCategory(fiction)
	assert.True(t, book.HasCategory(fiction))
	assert.True(t, fiction.HasBook(book))

	// Added from the category side.
	classics.AddBook(book)
	assert.True(t, book.HasCategory(classics))
	assert.True(t, classics.HasBook(book))

	// Duplicate add is a no-op.
	book.AddCategory(fiction)
	assert.Len(t, book.Categories(), 2)
	assert.Len(t, fiction.Books(), 1)

	// Removed from the opposite side it was added on.
	fiction.RemoveBook(book)
	assert.False(t, book.HasCategory(fiction))
	assert.False(t, fiction.HasBook(book))

	book.RemoveCategory(classics)
	assert.False(t, book.HasCategory(classics))
	assert.False(t, classics.HasBook(book))
}

/*
TestNewBook_ConstructorCategories verifies that categories supplied at
construction are wired symmetrically.
*/
func TestNewBook_ConstructorCategories(t *testing.T) {
	fiction := listing.NewCategory("Fiction")
	details := validDetails()
	details.Categories = []*listing.Category{fiction}

	book := listing.NewDiskBook(details, 2.5, listing.DiskFormatCD)

	require.True(t, book.HasCategory(fiction))
	assert.True(t, fiction.HasBook(book))
}
