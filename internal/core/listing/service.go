// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/litfair/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for the listing catalogue.
// It is the single entry point for browsing, selling and moderating
// offers and the aggregates they own.
type Service struct {
	offers     OfferRepository
	categories CategoryRepository
	engagement EngagementRepository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(offers OfferRepository, categories CategoryRepository, engagement EngagementRepository, logger *slog.Logger) *Service {
	return &Service{
		offers:     offers,
		categories: categories,
		engagement: engagement,
		logger:     logger,
	}
}

// customerRef builds a detached customer carrying only a persistent
// identity. Associations wired through it are persisted by ID; the full
// account lives in the users schema.
func customerRef(id string) *Customer {
	customer := NewCustomer("", "", "", "", "", time.Time{}, Address{})
	customer.setID(id)
	return customer
}

// # Discovery

/*
BrowseOffers retrieves a paginated and filtered collection of offers.

Description: Criteria are pushed down to the repository for
database-level filtering. Unauthenticated browsing only ever sees
published offers; the handler decides whether a caller may widen the
state filter.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Offer: Slice of matching offers
  - int: Total count for pagination metadata
  - error: Repository failures
*/
func (service *Service) BrowseOffers(context context.Context, filter Filter, limit, offset int) ([]*Offer, int, error) {
	return service.offers.ListOffers(context, filter, limit, offset)
}

// GetOffer fetches a fully hydrated offer aggregate by UUID.
func (service *Service) GetOffer(context context.Context, id string) (*Offer, error) {
	return service.offers.FindOfferByID(context, id)
}

// # Categories

// ListCategories returns all categories ordered by name.
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.categories.ListCategories(context)
}

// GetCategoryBySlug resolves a category by its URL identifier.
func (service *Service) GetCategoryBySlug(context context.Context, slug string) (*Category, error) {
	return service.categories.FindCategoryBySlug(context, slug)
}

/*
CreateCategory initialises a new category.

Parameters:
  - context: context.Context
  - name: string (Unique category name)

Returns:
  - *Category: The persisted category with its assigned ID
  - error: Validation or persistence errors
*/
func (service *Service) CreateCategory(context context.Context, name string) (*Category, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category := NewCategory(name)
	if err := service.categories.CreateCategory(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID()),
		slog.String("slug", category.Slug()),
	)
	return category, nil
}

// DeleteCategory removes a category and detaches its books.
func (service *Service) DeleteCategory(context context.Context, id string) error {
	if err := service.categories.DeleteCategory(context, id); err != nil {
		return err
	}
	service.logger.Warn("category_deleted", slog.String("category_id", id))
	return nil
}
