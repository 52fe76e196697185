// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"strings"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// ImageFormat is the encoding of a stored book image.
type ImageFormat string

const (
	ImageFormatJPEG ImageFormat = "JPEG"
	ImageFormatPNG  ImageFormat = "PNG"
)

// IsValid reports whether f is a recognised [ImageFormat] value.
func (f ImageFormat) IsValid() bool {
	switch f {
	case ImageFormatJPEG, ImageFormatPNG:
		return true
	}
	return false
}

// ImageFormatFromContentType maps an HTTP content type onto an
// [ImageFormat]. Anything but JPEG and PNG is rejected as a business-rule
// violation.
func ImageFormatFromContentType(contentType string) (ImageFormat, error) {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ImageFormatJPEG, nil
	case "image/png":
		return ImageFormatPNG, nil
	}
	return "", apperr.BusinessRule("Unsupported image format: " + contentType)
}

// Image is a binary picture of a listed book. It is owned exclusively by
// one book: the owner is fixed at construction and can only be cleared,
// never transferred.
type Image struct {
	id      string
	data    []byte
	format  ImageFormat
	preview bool
	book    Book
}

// NewImage constructs an image already attached to its owning book and
// registers it in the book's image set.
func NewImage(data []byte, format ImageFormat, preview bool, book Book) (*Image, error) {
	if book == nil {
		return nil, apperr.Structural("Image requires an owning book")
	}
	image := &Image{data: data, format: format, preview: preview}
	if err := image.SetBook(book); err != nil {
		return nil, err
	}
	return image, nil
}

// ID returns the persistent identity, or "" before the first save.
func (i *Image) ID() string { return i.id }

func (i *Image) setID(id string) { i.id = id }

// Data returns the raw image bytes.
func (i *Image) Data() []byte { return i.data }

// SetData replaces the raw image bytes.
func (i *Image) SetData(data []byte) { i.data = data }

// Format returns the image encoding.
func (i *Image) Format() ImageFormat { return i.format }

// SetFormat replaces the image encoding.
func (i *Image) SetFormat(format ImageFormat) { i.format = format }

// IsPreview reports whether this image is the listing's preview picture.
func (i *Image) IsPreview() bool { return i.preview }

// SetPreview flags or unflags the image as the preview picture.
func (i *Image) SetPreview(preview bool) { i.preview = preview }

// Book returns the owning book, or nil after detachment.
func (i *Image) Book() Book { return i.book }

// SetBook attaches or detaches the owner.
//
// # Ownership Rules
//
//   - A different owner while one is recorded is a structural violation;
//     the image must be detached (SetBook(nil)) first.
//   - nil detaches: the image is removed from the old owner's set.
//   - Attaching from the detached state registers the image in the new
//     owner's set.
func (i *Image) SetBook(book Book) error {
	current := i.book

	if book != nil && current != nil && book.core() != current.core() {
		return apperr.Structural("Owner of image can't be changed")
	}

	if book == nil {
		if current != nil {
			i.book = nil
			current.core().RemoveImage(i)
		}
		return nil
	}

	if current == nil {
		i.book = book
		if !book.core().HasImage(i) {
			return book.core().AddImage(i)
		}
	}
	return nil
}

// Violations returns every invalid attribute of the image.
func (i *Image) Violations() []apperr.FieldError {
	var violations []apperr.FieldError
	if len(i.data) == 0 {
		violations = append(violations, apperr.FieldError{Field: FieldImages, Message: "Image payload can't be empty"})
	}
	if !i.format.IsValid() {
		violations = append(violations, apperr.FieldError{Field: FieldImages, Message: "Image format is not recognised"})
	}
	return violations
}
