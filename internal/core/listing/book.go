// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"strings"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// # Book Variants

// BookKind discriminates the closed set of book variants.
type BookKind string

const (
	// BookKindPaper is a plain paper book.
	BookKindPaper BookKind = "paper"

	// BookKindDisk is an audio/data disk edition with no paper pages.
	BookKindDisk BookKind = "disk"

	// BookKindPaperWithDisk is a paper book bundled with a disk.
	BookKindPaperWithDisk BookKind = "paper_with_disk"
)

// IsValid reports whether k is a recognised [BookKind] value.
func (k BookKind) IsValid() bool {
	switch k {
	case BookKindPaper, BookKindDisk, BookKindPaperWithDisk:
		return true
	}
	return false
}

// DiskFormat is the physical format of a disk edition.
type DiskFormat string

const (
	DiskFormatCD     DiskFormat = "CD"
	DiskFormatDVD    DiskFormat = "DVD"
	DiskFormatBluRay DiskFormat = "BLU_RAY"
)

// IsValid reports whether f is a recognised [DiskFormat] value.
func (f DiskFormat) IsValid() bool {
	switch f {
	case DiskFormatCD, DiskFormatDVD, DiskFormatBluRay:
		return true
	}
	return false
}

// Reading-speed model shared by all paper variants.
const (
	averageWordsPerPage = 300
	readingSpeedWPM     = 200
)

// paperReadingTime estimates the hours needed to read the given page count.
func paperReadingTime(pages int) float64 {
	return float64(pages*averageWordsPerPage) / readingSpeedWPM / 60
}

// Book is a listed publication. The variant set is closed: only the three
// kinds in this package can satisfy the interface, because core is
// unexported.
type Book interface {
	// Kind identifies the concrete variant.
	Kind() BookKind

	// EstimatedReadingTime returns the hours a reader is expected to need:
	// derived from page count for paper, the recording length for disks,
	// and whichever medium is shorter for the bundled variant.
	EstimatedReadingTime() float64

	// Violations returns every invalid attribute of the book, never just
	// the first one. An empty slice means the book is valid.
	Violations() []apperr.FieldError

	core() *bookCore
}

// # Shared Book State

// BookDetails carries the attributes common to every book variant,
// used by the variant constructors.
type BookDetails struct {
	Name             string
	YearOfPublishing int
	Description      string
	Author           string
	ISBN             string
	Categories       []*Category
}

// bookCore holds the state and association logic shared by all variants.
// Variants embed it; its exported methods are promoted onto each variant.
type bookCore struct {
	id          string
	name        string
	year        int
	description string
	author      string
	isbn        string

	categories map[*Category]struct{}
	images     map[*Image]struct{}
	offer      *Offer

	// self is the enclosing variant, set once by the variant constructor.
	// It lets shared association code hand out the concrete Book.
	self Book
}

func newBookCore(details BookDetails) bookCore {
	return bookCore{
		name:        details.Name,
		year:        details.YearOfPublishing,
		description: details.Description,
		author:      details.Author,
		isbn:        details.ISBN,
		categories:  make(map[*Category]struct{}),
		images:      make(map[*Image]struct{}),
	}
}

// attachCategories wires the constructor-supplied categories from the
// book side, which fixes up each category's back-set.
func (b *bookCore) attachCategories(categories []*Category) {
	for _, category := range categories {
		b.AddCategory(category)
	}
}

func (b *bookCore) core() *bookCore { return b }

// ID returns the persistent identity, or "" before the first save.
func (b *bookCore) ID() string { return b.id }

// setID is called by the store when identity is assigned on first save.
func (b *bookCore) setID(id string) { b.id = id }

func (b *bookCore) Name() string              { return b.name }
func (b *bookCore) SetName(name string)       { b.name = name }
func (b *bookCore) YearOfPublishing() int     { return b.year }
func (b *bookCore) SetYearOfPublishing(y int) { b.year = y }
func (b *bookCore) Description() string       { return b.description }
func (b *bookCore) SetDescription(d string)   { b.description = d }
func (b *bookCore) Author() string            { return b.author }
func (b *bookCore) SetAuthor(author string)   { b.author = author }
func (b *bookCore) ISBN() string              { return b.isbn }
func (b *bookCore) SetISBN(isbn string)       { b.isbn = isbn }

// # Book ↔ Category

// Categories returns a copy of the category set.
func (b *bookCore) Categories() []*Category {
	out := make([]*Category, 0, len(b.categories))
	for category := range b.categories {
		out = append(out, category)
	}
	return out
}

// HasCategory reports whether the book is a member of the category.
func (b *bookCore) HasCategory(category *Category) bool {
	_, ok := b.categories[category]
	return ok
}

// AddCategory inserts the category and fixes up its back-set. A nil or
// already-present category is a no-op. The mutual call terminates because
// the second side observes the relation already established.
func (b *bookCore) AddCategory(category *Category) {
	if category == nil || b.HasCategory(category) {
		return
	}
	b.categories[category] = struct{}{}
	if !category.HasBook(b.self) {
		category.AddBook(b.self)
	}
}

// RemoveCategory removes the category and fixes up its back-set.
func (b *bookCore) RemoveCategory(category *Category) {
	if category == nil || !b.HasCategory(category) {
		return
	}
	delete(b.categories, category)
	if category.HasBook(b.self) {
		category.RemoveBook(b.self)
	}
}

// # Book ↔ Image

// Images returns a copy of the image set.
func (b *bookCore) Images() []*Image {
	out := make([]*Image, 0, len(b.images))
	for image := range b.images {
		out = append(out, image)
	}
	return out
}

// HasImage reports whether the image belongs to the book.
func (b *bookCore) HasImage(image *Image) bool {
	_, ok := b.images[image]
	return ok
}

// AddImage inserts an image that must already designate this book as its
// owner; a mismatch is a structural violation, not a silent fix-up.
func (b *bookCore) AddImage(image *Image) error {
	if image == nil {
		return apperr.Structural("Image can't be nil")
	}
	if image.book == nil || image.book.core() != b {
		return apperr.Structural("Image is attached to another book")
	}
	b.images[image] = struct{}{}
	return nil
}

// RemoveImage removes the image and clears its owner reference.
func (b *bookCore) RemoveImage(image *Image) {
	if image == nil || !b.HasImage(image) {
		return
	}
	delete(b.images, image)
	if image.book != nil && image.book.core() == b {
		image.book = nil
	}
}

// # Book ↔ Offer

// Offer returns the owning offer, or nil while the book is unattached.
func (b *bookCore) Offer() *Offer { return b.offer }

// SetOffer attaches the book to its owning offer. The offer must already
// reference this book, and an attached book cannot be re-parented.
func (b *bookCore) SetOffer(offer *Offer) error {
	if offer == nil {
		return apperr.Structural("Offer can't be nil")
	}
	if b.offer != nil && b.offer != offer {
		return apperr.Structural("Book is already attached to another offer")
	}
	if offer.book == nil || offer.book.core() != b {
		return apperr.Structural("Offer is attached to another book")
	}
	b.offer = offer
	return nil
}

// sharedViolations checks the attributes common to all variants.
func (b *bookCore) sharedViolations() []apperr.FieldError {
	var violations []apperr.FieldError
	if strings.TrimSpace(b.name) == "" {
		violations = append(violations, apperr.FieldError{Field: FieldName, Message: "Name can't be blank"})
	}
	if b.year < 1 {
		violations = append(violations, apperr.FieldError{Field: FieldYear, Message: "The year of publishing must be greater than zero"})
	}
	if strings.TrimSpace(b.description) == "" {
		violations = append(violations, apperr.FieldError{Field: FieldDescription, Message: "Description can't be blank"})
	}
	if strings.TrimSpace(b.author) == "" {
		violations = append(violations, apperr.FieldError{Field: FieldAuthor, Message: "Author can't be blank"})
	}
	if !isValidISBN(b.isbn) {
		violations = append(violations, apperr.FieldError{Field: FieldISBN, Message: "ISBN must be a valid ISBN-10 or ISBN-13"})
	}
	return violations
}

// isValidISBN accepts ISBN-10 and ISBN-13 with optional hyphen/space
// separators; ISBN-10 may end with the X check character.
func isValidISBN(isbn string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, isbn)

	switch len(cleaned) {
	case 10:
		for i, r := range cleaned {
			if r >= '0' && r <= '9' {
				continue
			}
			if i == 9 && (r == 'X' || r == 'x') {
				continue
			}
			return false
		}
		return true
	case 13:
		for _, r := range cleaned {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}

// # Paper Book

// PaperBook is a plain paper edition.
type PaperBook struct {
	bookCore
	pages int
}

// NewPaperBook constructs a paper book and wires the supplied categories.
func NewPaperBook(details BookDetails, pages int) *PaperBook {
	book := &PaperBook{bookCore: newBookCore(details), pages: pages}
	book.self = book
	book.attachCategories(details.Categories)
	return book
}

func (b *PaperBook) Kind() BookKind { return BookKindPaper }

// NumberOfPages returns the page count.
func (b *PaperBook) NumberOfPages() int { return b.pages }

// SetNumberOfPages replaces the page count.
func (b *PaperBook) SetNumberOfPages(pages int) { b.pages = pages }

// EstimatedReadingTime derives hours from the page count using the fixed
// words-per-page and reading-speed constants.
func (b *PaperBook) EstimatedReadingTime() float64 {
	return paperReadingTime(b.pages)
}

func (b *PaperBook) Violations() []apperr.FieldError {
	violations := b.sharedViolations()
	if b.pages < 1 {
		violations = append(violations, apperr.FieldError{Field: FieldPages, Message: "Number of pages can't be negative or zero"})
	}
	return violations
}

// # Disk Book

// DiskBook is a disk-only edition (audiobook or data disk).
type DiskBook struct {
	bookCore
	durationHours float64
	diskFormat    DiskFormat
}

// NewDiskBook constructs a disk book and wires the supplied categories.
func NewDiskBook(details BookDetails, durationHours float64, format DiskFormat) *DiskBook {
	book := &DiskBook{bookCore: newBookCore(details), durationHours: durationHours, diskFormat: format}
	book.self = book
	book.attachCategories(details.Categories)
	return book
}

func (b *DiskBook) Kind() BookKind { return BookKindDisk }

// DurationInHours returns the recording length.
func (b *DiskBook) DurationInHours() float64 { return b.durationHours }

// SetDurationInHours replaces the recording length.
func (b *DiskBook) SetDurationInHours(hours float64) { b.durationHours = hours }

// DiskFormat returns the physical disk format.
func (b *DiskBook) DiskFormat() DiskFormat { return b.diskFormat }

// SetDiskFormat replaces the physical disk format.
func (b *DiskBook) SetDiskFormat(format DiskFormat) { b.diskFormat = format }

// EstimatedReadingTime is the recording length itself.
func (b *DiskBook) EstimatedReadingTime() float64 {
	return b.durationHours
}

func (b *DiskBook) Violations() []apperr.FieldError {
	violations := b.sharedViolations()
	if b.durationHours < 0 {
		violations = append(violations, apperr.FieldError{Field: FieldDuration, Message: "Duration in hours can't be negative"})
	}
	if !b.diskFormat.IsValid() {
		violations = append(violations, apperr.FieldError{Field: FieldDiskFormat, Message: "Disk format is not recognised"})
	}
	return violations
}

// # Paper Book With Disk

// PaperBookWithDisk is a paper edition bundled with a disk.
type PaperBookWithDisk struct {
	bookCore
	pages         int
	durationHours float64
	diskFormat    DiskFormat
	diskGlued     bool
}

// NewPaperBookWithDisk constructs a bundled edition and wires the supplied categories.
func NewPaperBookWithDisk(details BookDetails, pages int, durationHours float64, format DiskFormat, diskGlued bool) *PaperBookWithDisk {
	book := &PaperBookWithDisk{
		bookCore:      newBookCore(details),
		pages:         pages,
		durationHours: durationHours,
		diskFormat:    format,
		diskGlued:     diskGlued,
	}
	book.self = book
	book.attachCategories(details.Categories)
	return book
}

func (b *PaperBookWithDisk) Kind() BookKind { return BookKindPaperWithDisk }

func (b *PaperBookWithDisk) NumberOfPages() int               { return b.pages }
func (b *PaperBookWithDisk) SetNumberOfPages(pages int)       { b.pages = pages }
func (b *PaperBookWithDisk) DurationInHours() float64         { return b.durationHours }
func (b *PaperBookWithDisk) SetDurationInHours(hours float64) { b.durationHours = hours }
func (b *PaperBookWithDisk) DiskFormat() DiskFormat           { return b.diskFormat }
func (b *PaperBookWithDisk) SetDiskFormat(format DiskFormat)  { b.diskFormat = format }
func (b *PaperBookWithDisk) IsDiskGlued() bool                { return b.diskGlued }
func (b *PaperBookWithDisk) SetDiskGlued(glued bool)          { b.diskGlued = glued }

// EstimatedReadingTime is bounded by whichever medium is shorter: the
// reader finishes when either the pages or the recording run out.
func (b *PaperBookWithDisk) EstimatedReadingTime() float64 {
	paper := paperReadingTime(b.pages)
	if b.durationHours < paper {
		return b.durationHours
	}
	return paper
}

func (b *PaperBookWithDisk) Violations() []apperr.FieldError {
	violations := b.sharedViolations()
	if b.pages < 1 {
		violations = append(violations, apperr.FieldError{Field: FieldPages, Message: "Number of pages can't be negative or zero"})
	}
	if b.durationHours < 0 {
		violations = append(violations, apperr.FieldError{Field: FieldDuration, Message: "Duration in hours can't be negative"})
	}
	if !b.diskFormat.IsValid() {
		violations = append(violations, apperr.FieldError{Field: FieldDiskFormat, Message: "Disk format is not recognised"})
	}
	return violations
}
