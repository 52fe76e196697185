// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taibuivan/litfair/internal/platform/apperr"
	"github.com/taibuivan/litfair/internal/platform/validate"
)

// maxImagesPerBook caps the pictures attached to one listed book.
const maxImagesPerBook = 3

// # Inputs

// ContactInput carries the seller contact channels of a listing request.
type ContactInput struct {
	Email      string `json:"email"`
	Phone      string `json:"telephone_number"`
	SocialLink string `json:"social_media_link"`
}

// BookInput carries the book attributes of a create-listing request.
// The variant fields beyond Kind are read selectively per kind.
type BookInput struct {
	Kind             BookKind   `json:"kind"`
	Name             string     `json:"name"`
	YearOfPublishing int        `json:"year_of_publishing"`
	Description      string     `json:"description"`
	Author           string     `json:"author"`
	ISBN             string     `json:"isbn"`
	CategoryIDs      []string   `json:"category_ids"`
	NumberOfPages    int        `json:"number_of_pages"`
	DurationInHours  float64    `json:"duration_in_hours"`
	DiskFormat       DiskFormat `json:"disk_format"`
	IsDiskGlued      bool       `json:"is_disk_glued"`
}

// CreateListingInput is the full payload for putting a book up for sale.
type CreateListingInput struct {
	Book           BookInput     `json:"book"`
	Price          float64       `json:"price"`
	NumberOfCopies int           `json:"number_of_copies"`
	Roles          RoleSet       `json:"-"`
	Fields         RoleFields    `json:"-"`
	Contact        *ContactInput `json:"contact,omitempty"`
}

// UpdateListingInput carries a partial update; nil pointers leave the
// current value untouched. Roles and Fields travel together so the role
// set and its gated fields change atomically.
type UpdateListingInput struct {
	Name             *string     `json:"name"`
	YearOfPublishing *int        `json:"year_of_publishing"`
	Description      *string     `json:"description"`
	Author           *string     `json:"author"`
	ISBN             *string     `json:"isbn"`
	CategoryIDs      *[]string   `json:"category_ids"`
	NumberOfPages    *int        `json:"number_of_pages"`
	DurationInHours  *float64    `json:"duration_in_hours"`
	DiskFormat       *DiskFormat `json:"disk_format"`
	IsDiskGlued      *bool       `json:"is_disk_glued"`
	Price            *float64    `json:"price"`
	NumberOfCopies   *int        `json:"number_of_copies"`
	Roles            *RoleSet    `json:"-"`
	Fields           *RoleFields `json:"-"`
	Contact          *ContactInput
}

// # Listing Lifecycle

/*
CreateListing puts a new book up for sale.

Description: Builds the requested book variant, resolves its categories,
wires the offer under the selling customer and persists the whole
aggregate. Validation is aggregated: every violation across the book,
the offer and the contact sheet is reported in one response. New offers
always start unpublished.

Parameters:
  - context: context.Context
  - ownerID: string (Authenticated customer UUID)
  - input: CreateListingInput

Returns:
  - *Offer: The persisted aggregate with assigned IDs
  - error: Validation, capability or persistence errors
*/
func (service *Service) CreateListing(context context.Context, ownerID string, input CreateListingInput) (*Offer, error) {
	validator := &validate.Validator{}
	validator.Required("kind", string(input.Book.Kind)).OneOf("kind", string(input.Book.Kind),
		string(BookKindPaper),
		string(BookKindDisk),
		string(BookKindPaperWithDisk),
	)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	categories, err := service.resolveCategories(context, input.Book.CategoryIDs)
	if err != nil {
		return nil, err
	}

	book := buildBook(input.Book, categories)

	offer, err := NewOffer(book, customerRef(ownerID), input.Price, input.NumberOfCopies,
		PublishStateUnpublished, input.Roles, input.Fields)
	if err != nil {
		return nil, err
	}

	if input.Contact != nil {
		if _, err := NewContactInfo(input.Contact.Email, input.Contact.Phone, input.Contact.SocialLink, offer); err != nil {
			return nil, err
		}
	}

	if err := aggregateViolations(offer); err != nil {
		return nil, err
	}

	if err := service.offers.CreateListing(context, offer); err != nil {
		return nil, err
	}

	service.logger.Info("listing_created",
		slog.String("offer_id", offer.ID()),
		slog.String("owner_id", ownerID),
		slog.String("kind", string(book.Kind())),
	)
	return offer, nil
}

/*
UpdateListing applies a partial update to an owned listing.

Description: Loads the aggregate, applies every requested change through
the domain mutators, then validates the whole aggregate at once so the
response names every broken attribute across the book, the offer, the
images and the contact sheet. The price cap and role atomicity are
enforced by the mutators themselves.

Parameters:
  - context: context.Context
  - offerID: string (UUID)
  - actorID: string (Authenticated customer UUID)
  - input: UpdateListingInput

Returns:
  - *Offer: The updated aggregate
  - error: Forbidden if the actor does not own the offer; validation,
    capability or persistence errors otherwise
*/
func (service *Service) UpdateListing(context context.Context, offerID, actorID string, input UpdateListingInput) (*Offer, error) {
	offer, err := service.ownedOffer(context, offerID, actorID)
	if err != nil {
		return nil, err
	}

	applyBookInput(offer.Book(), input)

	if input.CategoryIDs != nil {
		categories, err := service.resolveCategories(context, *input.CategoryIDs)
		if err != nil {
			return nil, err
		}
		book := offer.Book().core()
		for _, category := range book.Categories() {
			book.RemoveCategory(category)
		}
		for _, category := range categories {
			book.AddCategory(category)
		}
	}

	// Only the relative price cap rejects immediately; a structurally
	// invalid value lands in the aggregated validation below.
	if input.Price != nil {
		if err := offer.SetPrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.NumberOfCopies != nil {
		offer.SetNumberOfCopies(*input.NumberOfCopies)
	}

	if input.Roles != nil {
		fields := offer.RoleFields()
		if input.Fields != nil {
			fields = *input.Fields
		}
		if err := offer.SetRoles(*input.Roles, fields); err != nil {
			return nil, err
		}
	}

	if input.Contact != nil {
		if contact := offer.ContactInfo(); contact != nil {
			contact.SetEmail(input.Contact.Email)
			contact.SetPhone(input.Contact.Phone)
			contact.SetSocialLink(input.Contact.SocialLink)
		} else if _, err := NewContactInfo(input.Contact.Email, input.Contact.Phone, input.Contact.SocialLink, offer); err != nil {
			return nil, err
		}
	}

	if err := aggregateViolations(offer); err != nil {
		return nil, err
	}

	if err := service.offers.UpdateListing(context, offer); err != nil {
		return nil, err
	}

	service.logger.Info("listing_updated", slog.String("offer_id", offerID))
	return offer, nil
}

/*
DeleteListing removes an owned listing and everything it owns.

Parameters:
  - context: context.Context
  - offerID: string (UUID)
  - actorID: string (Authenticated customer UUID)

Returns:
  - error: Forbidden if the actor does not own the offer
*/
func (service *Service) DeleteListing(context context.Context, offerID, actorID string) error {
	if _, err := service.ownedOffer(context, offerID, actorID); err != nil {
		return err
	}
	if err := service.offers.DeleteOffer(context, offerID); err != nil {
		return err
	}
	service.logger.Warn("listing_deleted", slog.String("offer_id", offerID))
	return nil
}

// # Publish State

// stateTransitions lists the moves a seller can make. Banning and
// unbanning are administrator operations and are not in this table.
var stateTransitions = map[PublishState][]PublishState{
	PublishStateUnpublished: {PublishStatePublished, PublishStateArchived},
	PublishStatePublished:   {PublishStateUnpublished, PublishStateArchived},
	PublishStateArchived:    {PublishStatePublished, PublishStateUnpublished},
	PublishStateBanned:      {},
}

func canTransition(from, to PublishState) bool {
	for _, next := range stateTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

/*
ChangePublishState moves an owned offer between visibility states.

Description: Sellers move offers between unpublished, published and
archived. A banned offer is frozen until an administrator lifts the ban.

Parameters:
  - context: context.Context
  - offerID: string (UUID)
  - actorID: string (Authenticated customer UUID)
  - state: PublishState (Target)

Returns:
  - error: BusinessRule if the transition is not allowed
*/
func (service *Service) ChangePublishState(context context.Context, offerID, actorID string, state PublishState) error {
	if !state.IsValid() {
		return apperr.ValidationError("Publish state is not recognised")
	}

	offer, err := service.ownedOffer(context, offerID, actorID)
	if err != nil {
		return err
	}

	if !canTransition(offer.PublishState(), state) {
		return apperr.BusinessRule(fmt.Sprintf("Offer can't move from %s to %s", offer.PublishState(), state))
	}

	if err := service.offers.UpdatePublishState(context, offerID, state); err != nil {
		return err
	}

	service.logger.Info("publish_state_changed",
		slog.String("offer_id", offerID),
		slog.String("from", string(offer.PublishState())),
		slog.String("to", string(state)),
	)
	return nil
}

// BanOffer hides an offer by administrative decision, from any state.
func (service *Service) BanOffer(context context.Context, offerID string) error {
	if err := service.offers.UpdatePublishState(context, offerID, PublishStateBanned); err != nil {
		return err
	}
	service.logger.Warn("offer_banned", slog.String("offer_id", offerID))
	return nil
}

// UnbanOffer lifts a ban; the offer returns to the unpublished state.
func (service *Service) UnbanOffer(context context.Context, offerID string) error {
	offer, err := service.offers.FindOfferByID(context, offerID)
	if err != nil {
		return err
	}
	if offer.PublishState() != PublishStateBanned {
		return apperr.BusinessRule("Offer is not banned")
	}
	if err := service.offers.UpdatePublishState(context, offerID, PublishStateUnpublished); err != nil {
		return err
	}
	service.logger.Info("offer_unbanned", slog.String("offer_id", offerID))
	return nil
}

// # Images

/*
AddListingImage attaches a picture to an owned listing.

Description: The image format is sniffed from the payload bytes, not
trusted from the request header. A book carries at most three images.

Parameters:
  - context: context.Context
  - offerID: string (UUID)
  - actorID: string (Authenticated customer UUID)
  - data: []byte (Raw image payload)
  - preview: bool (Whether this is the preview picture)

Returns:
  - *Image: The persisted image with its assigned ID
  - error: BusinessRule for unsupported formats or the image cap
*/
func (service *Service) AddListingImage(context context.Context, offerID, actorID string, data []byte, preview bool) (*Image, error) {
	offer, err := service.ownedOffer(context, offerID, actorID)
	if err != nil {
		return nil, err
	}

	format, err := ImageFormatFromContentType(http.DetectContentType(data))
	if err != nil {
		return nil, err
	}

	book := offer.Book().core()
	if len(book.Images()) >= maxImagesPerBook {
		return nil, apperr.BusinessRule(fmt.Sprintf("A book can have at most %d images", maxImagesPerBook))
	}

	image, err := NewImage(data, format, preview, offer.Book())
	if err != nil {
		return nil, err
	}

	if err := service.offers.AddImage(context, image); err != nil {
		return nil, err
	}

	service.logger.Info("image_added",
		slog.String("offer_id", offerID),
		slog.String("image_id", image.ID()),
		slog.String("format", string(format)),
	)
	return image, nil
}

// GetImage returns a stored image including its payload.
func (service *Service) GetImage(context context.Context, id string) (*Image, error) {
	return service.offers.FindImageByID(context, id)
}

// DeleteListingImage detaches and removes a picture from an owned listing.
func (service *Service) DeleteListingImage(context context.Context, offerID, imageID, actorID string) error {
	offer, err := service.ownedOffer(context, offerID, actorID)
	if err != nil {
		return err
	}

	for _, image := range offer.Book().core().Images() {
		if image.ID() == imageID {
			if err := image.SetBook(nil); err != nil {
				return err
			}
			return service.offers.DeleteImage(context, imageID)
		}
	}
	return apperr.NotFound("Image")
}

// # Internal Helpers

// ownedOffer loads an aggregate and verifies the actor owns it.
func (service *Service) ownedOffer(context context.Context, offerID, actorID string) (*Offer, error) {
	offer, err := service.offers.FindOfferByID(context, offerID)
	if err != nil {
		return nil, err
	}
	if offer.Owner() == nil || offer.Owner().ID() != actorID {
		return nil, apperr.Forbidden("Offer belongs to another customer")
	}
	return offer, nil
}

// resolveCategories loads categories by ID and rejects unknown ones.
func (service *Service) resolveCategories(context context.Context, ids []string) ([]*Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories, err := service.categories.FindCategoriesByIDs(context, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldCategoryIDs, Message: "One or more categories do not exist"})
	}
	return categories, nil
}

// buildBook constructs the requested variant from validated input.
func buildBook(input BookInput, categories []*Category) Book {
	details := BookDetails{
		Name:             input.Name,
		YearOfPublishing: input.YearOfPublishing,
		Description:      input.Description,
		Author:           input.Author,
		ISBN:             input.ISBN,
		Categories:       categories,
	}

	switch input.Kind {
	case BookKindDisk:
		return NewDiskBook(details, input.DurationInHours, input.DiskFormat)
	case BookKindPaperWithDisk:
		return NewPaperBookWithDisk(details, input.NumberOfPages, input.DurationInHours, input.DiskFormat, input.IsDiskGlued)
	default:
		return NewPaperBook(details, input.NumberOfPages)
	}
}

// applyBookInput copies the requested attribute changes onto the book,
// dispatching the variant-specific fields by concrete type.
func applyBookInput(book Book, input UpdateListingInput) {
	core := book.core()
	if input.Name != nil {
		core.SetName(*input.Name)
	}
	if input.YearOfPublishing != nil {
		core.SetYearOfPublishing(*input.YearOfPublishing)
	}
	if input.Description != nil {
		core.SetDescription(*input.Description)
	}
	if input.Author != nil {
		core.SetAuthor(*input.Author)
	}
	if input.ISBN != nil {
		core.SetISBN(*input.ISBN)
	}

	switch variant := book.(type) {
	case *PaperBook:
		if input.NumberOfPages != nil {
			variant.SetNumberOfPages(*input.NumberOfPages)
		}
	case *DiskBook:
		if input.DurationInHours != nil {
			variant.SetDurationInHours(*input.DurationInHours)
		}
		if input.DiskFormat != nil {
			variant.SetDiskFormat(*input.DiskFormat)
		}
	case *PaperBookWithDisk:
		if input.NumberOfPages != nil {
			variant.SetNumberOfPages(*input.NumberOfPages)
		}
		if input.DurationInHours != nil {
			variant.SetDurationInHours(*input.DurationInHours)
		}
		if input.DiskFormat != nil {
			variant.SetDiskFormat(*input.DiskFormat)
		}
		if input.IsDiskGlued != nil {
			variant.SetDiskGlued(*input.IsDiskGlued)
		}
	}
}

// aggregateViolations validates the whole aggregate at once: the book,
// the offer, the image cap and the contact sheet. Every violation is
// reported in a single error.
func aggregateViolations(offer *Offer) error {
	violations := offer.Book().Violations()
	violations = append(violations, offer.Violations()...)

	if len(offer.Book().core().Images()) > maxImagesPerBook {
		violations = append(violations, apperr.FieldError{
			Field:   FieldImages,
			Message: fmt.Sprintf("A book can have at most %d images", maxImagesPerBook),
		})
	}

	if contact := offer.ContactInfo(); contact != nil {
		violations = append(violations, contact.Violations()...)
	}

	if len(violations) > 0 {
		return apperr.ValidationError("Validation failed", violations...)
	}
	return nil
}
