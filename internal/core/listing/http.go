// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/litfair/internal/platform/middleware"
	"github.com/taibuivan/litfair/internal/platform/sec"
)

// Handler exposes the listing catalogue over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the listing HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterOfferRoutes mounts the offer, image, report and favourite
// endpoints.
func (handler *Handler) RegisterOfferRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listOffers)
	router.Get("/images/{imageID}", handler.getImage)
	router.Get("/{id}", handler.getOffer)

	// Authenticated customers
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/favourites", handler.listFavourites)
		authRoute.Post("/", handler.createListing)
		authRoute.Patch("/{id}", handler.updateListing)
		authRoute.Delete("/{id}", handler.deleteListing)
		authRoute.Put("/{id}/state", handler.changePublishState)

		authRoute.Post("/{id}/images", handler.addImage)
		authRoute.Delete("/{id}/images/{imageID}", handler.deleteImage)

		authRoute.Post("/{id}/reports", handler.reportOffer)
		authRoute.Put("/{id}/favourite", handler.addFavourite)
		authRoute.Delete("/{id}/favourite", handler.removeFavourite)
	})

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/{id}/ban", handler.banOffer)
		adminRoute.Delete("/{id}/ban", handler.unbanOffer)
		adminRoute.Get("/{id}/reports", handler.listReports)
		adminRoute.Delete("/{id}/reports/{reportID}", handler.dismissReport)
	})
}

// RegisterCategoryRoutes mounts the category endpoints.
func (handler *Handler) RegisterCategoryRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listCategories)
	router.Get("/{slug}", handler.getCategory)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createCategory)
		adminRoute.Delete("/{id}", handler.deleteCategory)
	})
}

// # Response Shapes

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ImageResponse is the metadata view of an image; the payload is served
// by the image endpoint.
type ImageResponse struct {
	ID        string      `json:"id"`
	Format    ImageFormat `json:"format"`
	IsPreview bool        `json:"is_preview"`
}

// BookResponse is the public view of a book with its variant attributes.
type BookResponse struct {
	ID                   string             `json:"id"`
	Kind                 BookKind           `json:"kind"`
	Name                 string             `json:"name"`
	YearOfPublishing     int                `json:"year_of_publishing"`
	Description          string             `json:"description"`
	Author               string             `json:"author"`
	ISBN                 string             `json:"isbn"`
	EstimatedReadingTime float64            `json:"estimated_reading_time_hours"`
	NumberOfPages        *int               `json:"number_of_pages,omitempty"`
	DurationInHours      *float64           `json:"duration_in_hours,omitempty"`
	DiskFormat           *DiskFormat        `json:"disk_format,omitempty"`
	IsDiskGlued          *bool              `json:"is_disk_glued,omitempty"`
	Categories           []CategoryResponse `json:"categories"`
	Images               []ImageResponse    `json:"images"`
}

// OwnerResponse is the public view of the selling customer.
type OwnerResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ContactResponse is the public view of the seller contact sheet.
type ContactResponse struct {
	Email      string `json:"email,omitempty"`
	Phone      string `json:"telephone_number,omitempty"`
	SocialLink string `json:"social_media_link,omitempty"`
}

// OfferResponse is the public view of an offer. The role-gated fields
// appear only when the matching role is held, mirroring the gated
// accessors of the aggregate.
type OfferResponse struct {
	ID             string       `json:"id"`
	Price          float64      `json:"price"`
	NumberOfCopies int          `json:"number_of_copies"`
	PublishState   PublishState `json:"publish_state"`
	Roles          []string     `json:"roles"`

	PublishingTime    *time.Time `json:"publishing_time,omitempty"`
	Discount          *float64   `json:"discount,omitempty"`
	PriceWithDiscount *float64   `json:"price_with_discount,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	DaysRemaining     *int       `json:"days_remaining,omitempty"`

	Book    BookResponse     `json:"book"`
	Owner   *OwnerResponse   `json:"owner,omitempty"`
	Contact *ContactResponse `json:"contact,omitempty"`
}

// ReportResponse is the moderation view of a report.
type ReportResponse struct {
	ID       string         `json:"id"`
	Reason   string         `json:"reason"`
	Reporter *OwnerResponse `json:"reporter,omitempty"`
}

// FavouriteResponse is the customer view of a favourite link.
type FavouriteResponse struct {
	ID    string         `json:"id"`
	Note  string         `json:"note"`
	Offer *OfferResponse `json:"offer,omitempty"`
}

func newCategoryResponse(category *Category) CategoryResponse {
	return CategoryResponse{ID: category.ID(), Name: category.Name(), Slug: category.Slug()}
}

func newBookResponse(book Book) BookResponse {
	core := book.core()
	response := BookResponse{
		ID:                   core.ID(),
		Kind:                 book.Kind(),
		Name:                 core.Name(),
		YearOfPublishing:     core.YearOfPublishing(),
		Description:          core.Description(),
		Author:               core.Author(),
		ISBN:                 core.ISBN(),
		EstimatedReadingTime: book.EstimatedReadingTime(),
		Categories:           make([]CategoryResponse, 0, len(core.Categories())),
		Images:               make([]ImageResponse, 0, len(core.Images())),
	}

	for _, category := range core.Categories() {
		response.Categories = append(response.Categories, newCategoryResponse(category))
	}
	for _, image := range core.Images() {
		response.Images = append(response.Images, ImageResponse{
			ID:        image.ID(),
			Format:    image.Format(),
			IsPreview: image.IsPreview(),
		})
	}

	switch variant := book.(type) {
	case *PaperBook:
		pages := variant.NumberOfPages()
		response.NumberOfPages = &pages
	case *DiskBook:
		duration := variant.DurationInHours()
		format := variant.DiskFormat()
		response.DurationInHours = &duration
		response.DiskFormat = &format
	case *PaperBookWithDisk:
		pages := variant.NumberOfPages()
		duration := variant.DurationInHours()
		format := variant.DiskFormat()
		glued := variant.IsDiskGlued()
		response.NumberOfPages = &pages
		response.DurationInHours = &duration
		response.DiskFormat = &format
		response.IsDiskGlued = &glued
	}
	return response
}

func newOwnerResponse(customer *Customer) *OwnerResponse {
	if customer == nil {
		return nil
	}
	return &OwnerResponse{
		ID:        customer.ID(),
		Username:  customer.Username(),
		FirstName: customer.FirstName(),
		LastName:  customer.LastName(),
	}
}

func newOfferResponse(offer *Offer) OfferResponse {
	response := OfferResponse{
		ID:             offer.ID(),
		Price:          offer.Price(),
		NumberOfCopies: offer.NumberOfCopies(),
		PublishState:   offer.PublishState(),
		Roles:          make([]string, 0, 3),
		Book:           newBookResponse(offer.Book()),
		Owner:          newOwnerResponse(offer.Owner()),
	}

	for _, role := range offer.Roles().Roles() {
		response.Roles = append(response.Roles, role.String())
	}

	// The gated accessors decide which optional fields the client sees.
	if publishingTime, err := offer.PublishingTime(); err == nil {
		response.PublishingTime = &publishingTime
	}
	if discounted, err := offer.PriceWithDiscount(); err == nil {
		fields := offer.RoleFields()
		response.Discount = fields.Discount
		response.PriceWithDiscount = &discounted
	}
	if endDate, err := offer.EndDate(); err == nil {
		response.EndDate = &endDate
	}
	if days, err := offer.DaysRemaining(); err == nil {
		response.DaysRemaining = &days
	}

	if contact := offer.ContactInfo(); contact != nil {
		response.Contact = &ContactResponse{
			Email:      contact.Email(),
			Phone:      contact.Phone(),
			SocialLink: contact.SocialLink(),
		}
	}
	return response
}

func newOfferResponses(offers []*Offer) []OfferResponse {
	responses := make([]OfferResponse, 0, len(offers))
	for _, offer := range offers {
		responses = append(responses, newOfferResponse(offer))
	}
	return responses
}
