// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"net/http"

	requestutil "github.com/taibuivan/litfair/internal/platform/request"
	"github.com/taibuivan/litfair/internal/platform/respond"
	"github.com/taibuivan/litfair/pkg/pagination"
)

// # Report Handlers

type reportOfferRequest struct {
	Reason string `json:"reason"`
}

func (handler *Handler) reportOffer(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reportOfferRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.ReportOffer(request.Context(), requestutil.ID(request, "id"), userID, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, newReportResponse(report))
}

func (handler *Handler) listReports(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	reports, total, err := handler.service.ListOfferReports(request.Context(),
		requestutil.ID(request, "id"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	responses := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, newReportResponse(report))
	}
	respond.Paginated(writer, responses, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) dismissReport(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DismissReport(request.Context(), requestutil.ID(request, "reportID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func newReportResponse(report *Report) ReportResponse {
	return ReportResponse{
		ID:       report.ID(),
		Reason:   report.Reason(),
		Reporter: newOwnerResponse(report.Reporter()),
	}
}

// # Favourite Handlers

type addFavouriteRequest struct {
	Note string `json:"note"`
}

func (handler *Handler) addFavourite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The note body is optional; an absent body means the default note.
	var input addFavouriteRequest
	_ = requestutil.DecodeJSON(request, &input)

	favourite, err := handler.service.AddFavourite(request.Context(), requestutil.ID(request, "id"), userID, input.Note)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, newFavouriteResponse(favourite, false))
}

func (handler *Handler) removeFavourite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveFavourite(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listFavourites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	favourites, total, err := handler.service.ListFavourites(request.Context(), userID,
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	responses := make([]FavouriteResponse, 0, len(favourites))
	for _, favourite := range favourites {
		responses = append(responses, newFavouriteResponse(favourite, true))
	}
	respond.Paginated(writer, responses, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func newFavouriteResponse(favourite *FavouriteOffer, withOffer bool) FavouriteResponse {
	response := FavouriteResponse{
		ID:   favourite.ID(),
		Note: favourite.Note(),
	}
	if withOffer && favourite.Offer() != nil {
		offerResponse := newOfferResponse(favourite.Offer())
		response.Offer = &offerResponse
	}
	return response
}

// # Category Handlers

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, newCategoryResponse(category))
	}
	respond.OK(writer, responses)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetCategoryBySlug(request.Context(), requestutil.ID(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, newCategoryResponse(category))
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, newCategoryResponse(category))
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCategory(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
