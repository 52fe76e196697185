// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	requestutil "github.com/taibuivan/litfair/internal/platform/request"
	"github.com/taibuivan/litfair/internal/platform/respond"
	"github.com/taibuivan/litfair/internal/platform/sec"
	"github.com/taibuivan/litfair/pkg/pagination"
)

// maxImageUploadBytes bounds a single image upload.
const maxImageUploadBytes = 8 << 20

// # Request Shapes

type createListingRequest struct {
	Book           BookInput     `json:"book"`
	Price          float64       `json:"price"`
	NumberOfCopies int           `json:"number_of_copies"`
	Roles          []string      `json:"roles"`
	PublishingTime *time.Time    `json:"publishing_time"`
	Discount       *float64      `json:"discount"`
	EndDate        *time.Time    `json:"end_date"`
	Contact        *ContactInput `json:"contact"`
}

type updateListingRequest struct {
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

	Roles          *[]string  `json:"roles"`
	PublishingTime *time.Time `json:"publishing_time"`
	Discount       *float64   `json:"discount"`
	EndDate        *time.Time `json:"end_date"`

	Contact *ContactInput `json:"contact"`
}

type changeStateRequest struct {
	State PublishState `json:"state"`
}

// parseRoles converts the wire role list into a [RoleSet].
func parseRoles(names []string) (RoleSet, error) {
	return ParseRoleSet(strings.Join(names, ","))
}

// # Offer Handlers

func (handler *Handler) listOffers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Query:        query.Get("q"),
		CategorySlug: query.Get("category"),
		Kind:         BookKind(query.Get("kind")),
	}
	if maxPrice := query.Get("max_price"); maxPrice != "" {
		if parsed, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			filter.MaxPrice = &parsed
		}
	}

	// Owners browsing their own listings may widen the state filter;
	// everyone else only sees published offers.
	if query.Get("mine") == "true" {
		claims, err := requestutil.RequiredClaims(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		filter.OwnerID = claims.UserID
		filter.State = PublishState(query.Get("state"))
	} else if claims := requestutil.Claims(request); claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleAdmin) {
		filter.State = PublishState(query.Get("state"))
	}

	offers, total, err := handler.service.BrowseOffers(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, newOfferResponses(offers), pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getOffer(writer http.ResponseWriter, request *http.Request) {
	offer, err := handler.service.GetOffer(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, newOfferResponse(offer))
}

func (handler *Handler) createListing(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createListingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	roles, err := parseRoles(input.Roles)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	offer, err := handler.service.CreateListing(request.Context(), userID, CreateListingInput{
		Book:           input.Book,
		Price:          input.Price,
		NumberOfCopies: input.NumberOfCopies,
		Roles:          roles,
		Fields: RoleFields{
			PublishingTime: input.PublishingTime,
			Discount:       input.Discount,
			EndDate:        input.EndDate,
		},
		Contact: input.Contact,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, newOfferResponse(offer))
}

func (handler *Handler) updateListing(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateListingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := UpdateListingInput{
		Name:             input.Name,
		YearOfPublishing: input.YearOfPublishing,
		Description:      input.Description,
		Author:           input.Author,
		ISBN:             input.ISBN,
		CategoryIDs:      input.CategoryIDs,
		NumberOfPages:    input.NumberOfPages,
		DurationInHours:  input.DurationInHours,
		DiskFormat:       input.DiskFormat,
		IsDiskGlued:      input.IsDiskGlued,
		Price:            input.Price,
		NumberOfCopies:   input.NumberOfCopies,
		Contact:          input.Contact,
	}

	if input.Roles != nil {
		roles, err := parseRoles(*input.Roles)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		serviceInput.Roles = &roles
		serviceInput.Fields = &RoleFields{
			PublishingTime: input.PublishingTime,
			Discount:       input.Discount,
			EndDate:        input.EndDate,
		}
	}

	offer, err := handler.service.UpdateListing(request.Context(), requestutil.ID(request, "id"), userID, serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, newOfferResponse(offer))
}

func (handler *Handler) deleteListing(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteListing(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) changePublishState(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeStateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePublishState(request.Context(), requestutil.ID(request, "id"), userID, input.State); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) banOffer(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.BanOffer(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) unbanOffer(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.UnbanOffer(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Image Handlers

func (handler *Handler) addImage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(request.Body, maxImageUploadBytes))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	preview := request.URL.Query().Get("preview") == "true"
	image, err := handler.service.AddListingImage(request.Context(), requestutil.ID(request, "id"), userID, data, preview)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ImageResponse{ID: image.ID(), Format: image.Format(), IsPreview: image.IsPreview()})
}

func (handler *Handler) getImage(writer http.ResponseWriter, request *http.Request) {
	image, err := handler.service.GetImage(request.Context(), requestutil.ID(request, "imageID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contentType := "image/jpeg"
	if image.Format() == ImageFormatPNG {
		contentType = "image/png"
	}
	writer.Header().Set("Content-Type", contentType)
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(image.Data())
}

func (handler *Handler) deleteImage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.DeleteListingImage(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "imageID"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
