// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listing defines the core domain entities for the Litfair marketplace.

It manages second-hand book listings: books with variant-specific attributes
(paper, disk, paper-with-disk), the offers that sell them, and the customers
who publish, report, and favourite those offers.

Core Responsibility:

  - Consistency: Every bidirectional association (book and category, offer
    and report, customer and favourite, ...) stays symmetric no matter which
    side is mutated.
  - Ownership: An entity owned by another cannot be silently re-parented;
    reassignment fails unless the old owner was detached first.
  - Capability: An offer's role set decides which optional fields are legal
    and which computed accessors may be called.

The graph is mutated synchronously and in-process. Transaction boundaries,
locking, and rollback belong to the storage layer; the entities themselves
never retry and never partially apply a mutation.
*/
package listing

// # Field Identifiers

// Field names shared by validation details, JSON payloads, and the dynamic
// parts of the persistence layer.
const (
	FieldName           = "name"
	FieldYear           = "year_of_publishing"
	FieldDescription    = "description"
	FieldAuthor         = "author"
	FieldISBN           = "isbn"
	FieldPages          = "number_of_pages"
	FieldDuration       = "duration_in_hours"
	FieldDiskFormat     = "disk_format"
	FieldCategoryIDs    = "category_ids"
	FieldImages         = "images"
	FieldPrice          = "price"
	FieldCopies         = "number_of_copies"
	FieldRoles          = "roles"
	FieldPublishingTime = "publishing_time"
	FieldDiscount       = "discount"
	FieldEndDate        = "end_date"
	FieldPublishState   = "publish_state"
	FieldEmail          = "email"
	FieldPhone          = "telephone_number"
	FieldSocialLink     = "social_media_link"
	FieldBirthDate      = "date_of_birth"
	FieldCountry        = "country"
	FieldPostalCode     = "postal_code"
)

// sameIdentity reports whether two entities are the same, following the
// identity rule of the graph: once both carry a persistent ID, the IDs
// decide; until then only pointer identity counts. The caller passes the
// pointer comparison result as samePointer.
func sameIdentity(samePointer bool, aID, bID string) bool {
	if samePointer {
		return true
	}
	return aID != "" && aID == bID
}
