// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"log/slog"

	"github.com/taibuivan/litfair/internal/platform/validate"
)

// # Reports

/*
ReportOffer files a complaint against an offer.

Description: The report is wired into both the offer's and the
reporter's report sets before persistence, so the in-memory aggregate
handed back is already consistent.

Parameters:
  - context: context.Context
  - offerID: string (UUID)
  - reporterID: string (Authenticated customer UUID)
  - reason: string (Complaint text)

Returns:
  - *Report: The persisted report with its assigned ID
  - error: Validation or persistence errors
*/
func (service *Service) ReportOffer(context context.Context, offerID, reporterID, reason string) (*Report, error) {
	validator := &validate.Validator{}
	validator.Required(FieldDescription, reason).MaxLen(FieldDescription, reason, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	offer, err := service.offers.FindOfferByID(context, offerID)
	if err != nil {
		return nil, err
	}

	report, err := NewReport(reason, offer, customerRef(reporterID))
	if err != nil {
		return nil, err
	}

	if err := service.engagement.CreateReport(context, report); err != nil {
		return nil, err
	}

	service.logger.Info("offer_reported",
		slog.String("offer_id", offerID),
		slog.String("reporter_id", reporterID),
	)
	return report, nil
}

// ListOfferReports returns the complaints filed against an offer.
func (service *Service) ListOfferReports(context context.Context, offerID string, limit, offset int) ([]*Report, int, error) {
	return service.engagement.ListReportsForOffer(context, offerID, limit, offset)
}

// DismissReport removes a reviewed report.
func (service *Service) DismissReport(context context.Context, id string) error {
	if err := service.engagement.DeleteReport(context, id); err != nil {
		return err
	}
	service.logger.Info("report_dismissed", slog.String("report_id", id))
	return nil
}

// # Favourites

/*
AddFavourite links an offer into a customer's favourites.

Description: An empty note falls back to the default. Customers cannot
favourite their own offers; the owner loaded with the aggregate makes
that check an identity comparison.

Parameters:
  - context: context.Context
  - offerID: string (UUID)
  - customerID: string (Authenticated customer UUID)
  - note: string (Optional personal note)

Returns:
  - *FavouriteOffer: The persisted link
  - error: BusinessRule for self-favouriting
*/
func (service *Service) AddFavourite(context context.Context, offerID, customerID, note string) (*FavouriteOffer, error) {
	offer, err := service.offers.FindOfferByID(context, offerID)
	if err != nil {
		return nil, err
	}

	favourite, err := NewFavouriteOffer(note, offer, customerRef(customerID))
	if err != nil {
		return nil, err
	}

	if err := service.engagement.CreateFavourite(context, favourite); err != nil {
		return nil, err
	}

	service.logger.Info("offer_favourited",
		slog.String("offer_id", offerID),
		slog.String("customer_id", customerID),
	)
	return favourite, nil
}

// RemoveFavourite unlinks an offer from a customer's favourites.
func (service *Service) RemoveFavourite(context context.Context, offerID, customerID string) error {
	// Surface a 404 rather than silently deleting nothing.
	if _, err := service.engagement.FindFavourite(context, offerID, customerID); err != nil {
		return err
	}
	return service.engagement.DeleteFavourite(context, offerID, customerID)
}

// ListFavourites returns a customer's favourite links with their offers.
func (service *Service) ListFavourites(context context.Context, customerID string, limit, offset int) ([]*FavouriteOffer, int, error) {
	return service.engagement.ListFavouritesForCustomer(context, customerID, limit, offset)
}
