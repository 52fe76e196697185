// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import "context"

// # Browse Criteria

// Filter narrows offer discovery queries.
type Filter struct {
	// Query matches against book name and author (ILIKE).
	Query string

	// CategorySlug restricts to offers whose book carries the category.
	CategorySlug string

	// Kind restricts to a single book variant; empty means all.
	Kind BookKind

	// State restricts to a publish state; empty means published only.
	State PublishState

	// OwnerID restricts to offers sold by one customer.
	OwnerID string

	// MaxPrice keeps offers at or below the given price.
	MaxPrice *float64
}

// # Offer Data Access

// OfferRepository defines the data access contract for offers and the
// aggregates they own (book, variant attributes, contact info, images).
type OfferRepository interface {
	// ListOffers returns a filtered, paginated slice of offers with their
	// books hydrated, and the total count.
	ListOffers(context context.Context, filter Filter, limit, offset int) ([]*Offer, int, error)

	// FindOfferByID returns the fully hydrated offer aggregate: book with
	// variant attributes, categories, images, contact info and owner.
	FindOfferByID(context context.Context, id string) (*Offer, error)

	// CreateListing persists a new offer aggregate in one transaction:
	// the book row, its variant side row, category links, images, the
	// offer row and its contact info. IDs are assigned to every entity.
	CreateListing(context context.Context, offer *Offer) error

	// UpdateListing persists the mutable fields of an existing aggregate,
	// replacing category links, in one transaction.
	UpdateListing(context context.Context, offer *Offer) error

	// UpdatePublishState flips only the visibility state of an offer.
	UpdatePublishState(context context.Context, id string, state PublishState) error

	// DeleteOffer removes the offer aggregate and everything it owns.
	DeleteOffer(context context.Context, id string) error

	// AddImage persists one image row for an already stored book.
	AddImage(context context.Context, image *Image) error

	// FindImageByID returns a single image with its payload.
	FindImageByID(context context.Context, id string) (*Image, error)

	// DeleteImage removes one image row.
	DeleteImage(context context.Context, id string) error
}

// # Category Data Access

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {
	// ListCategories returns all categories ordered by name.
	ListCategories(context context.Context) ([]*Category, error)

	// FindCategoryBySlug returns the category with the given slug.
	FindCategoryBySlug(context context.Context, slug string) (*Category, error)

	// FindCategoriesByIDs returns the categories matching the given IDs.
	// Missing IDs are not an error; the caller compares lengths.
	FindCategoriesByIDs(context context.Context, ids []string) ([]*Category, error)

	// CreateCategory persists a new category and assigns its ID.
	CreateCategory(context context.Context, category *Category) error

	// DeleteCategory removes a category and its membership links.
	DeleteCategory(context context.Context, id string) error
}

// # Engagement Data Access

// EngagementRepository defines the data access contract for reports and
// favourite links.
type EngagementRepository interface {
	// CreateReport persists a report and assigns its ID.
	CreateReport(context context.Context, report *Report) error

	// ListReportsForOffer returns the reports filed against an offer.
	ListReportsForOffer(context context.Context, offerID string, limit, offset int) ([]*Report, int, error)

	// DeleteReport removes one report row.
	DeleteReport(context context.Context, id string) error

	// CreateFavourite persists a favourite link and assigns its ID.
	CreateFavourite(context context.Context, favourite *FavouriteOffer) error

	// FindFavourite returns the link between an offer and a customer.
	FindFavourite(context context.Context, offerID, customerID string) (*FavouriteOffer, error)

	// ListFavouritesForCustomer returns a customer's favourite links with
	// their offers hydrated.
	ListFavouritesForCustomer(context context.Context, customerID string, limit, offset int) ([]*FavouriteOffer, int, error)

	// DeleteFavourite removes the link between an offer and a customer.
	DeleteFavourite(context context.Context, offerID, customerID string) error
}
