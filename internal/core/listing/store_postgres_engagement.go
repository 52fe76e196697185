// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"fmt"

	"github.com/taibuivan/litfair/internal/platform/database/schema"
	"github.com/taibuivan/litfair/internal/platform/dberr"
	"github.com/taibuivan/litfair/pkg/uuid"
)

// # Reports

// CreateReport persists a report and assigns its ID.
func (repository *PostgresRepository) CreateReport(context context.Context, report *Report) error {
	if report.id == "" {
		report.setID(uuid.New())
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
	`,
		schema.CatalogueReport.Table,
		schema.CatalogueReport.ID, schema.CatalogueReport.OfferID,
		schema.CatalogueReport.ReporterID, schema.CatalogueReport.Reason,
		schema.CatalogueReport.CreatedAt)
	_, err := repository.db.Exec(context, query,
		report.id, report.offer.ID(), report.reporter.ID(), report.reason,
	)
	return dberr.Wrap(err, "create_report")
}

// ListReportsForOffer returns the reports filed against an offer. The
// reporter is hydrated as a shallow customer carrying identity and name.
func (repository *PostgresRepository) ListReportsForOffer(context context.Context, offerID string, limit, offset int) ([]*Report, int, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, u.%s, u.%s, u.%s, u.%s,
		       COUNT(*) OVER() as total
		FROM %s r
		JOIN %s u ON r.%s = u.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.CatalogueReport.ID, schema.CatalogueReport.Reason,
		schema.UserAccount.ID, schema.UserAccount.Username,
		schema.UserAccount.FirstName, schema.UserAccount.LastName,
		schema.CatalogueReport.Table,
		schema.UserAccount.Table, schema.CatalogueReport.ReporterID, schema.UserAccount.ID,
		schema.CatalogueReport.OfferID,
		schema.CatalogueReport.CreatedAt)

	rows, err := repository.db.Query(context, query, offerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_offer_reports")
	}
	defer rows.Close()

	var reports []*Report
	var total int
	for rows.Next() {
		report := &Report{}
		reporter := &Customer{
			ownedOffers: make(map[*Offer]struct{}),
			reports:     make(map[*Report]struct{}),
			favourites:  make(map[*FavouriteOffer]struct{}),
		}
		err := rows.Scan(&report.id, &report.reason,
			&reporter.id, &reporter.username, &reporter.firstName, &reporter.lastName, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_report")
		}
		report.reporter = reporter
		reporter.reports[report] = struct{}{}
		reports = append(reports, report)
	}
	return reports, total, nil
}

// DeleteReport removes one report row.
func (repository *PostgresRepository) DeleteReport(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogueReport.Table, schema.CatalogueReport.ID)
	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_report")
}

// # Favourites

// CreateFavourite persists a favourite link and assigns its ID.
func (repository *PostgresRepository) CreateFavourite(context context.Context, favourite *FavouriteOffer) error {
	if favourite.id == "" {
		favourite.setID(uuid.New())
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
	`,
		schema.CatalogueFavouriteOffer.Table,
		schema.CatalogueFavouriteOffer.ID, schema.CatalogueFavouriteOffer.OfferID,
		schema.CatalogueFavouriteOffer.CustomerID, schema.CatalogueFavouriteOffer.Note,
		schema.CatalogueFavouriteOffer.CreatedAt,
		schema.CatalogueFavouriteOffer.OfferID, schema.CatalogueFavouriteOffer.CustomerID,
		schema.CatalogueFavouriteOffer.Note, schema.CatalogueFavouriteOffer.Note)
	_, err := repository.db.Exec(context, query,
		favourite.id, favourite.offer.ID(), favourite.customer.ID(), favourite.note,
	)
	return dberr.Wrap(err, "create_favourite")
}

// FindFavourite returns the link between an offer and a customer.
func (repository *PostgresRepository) FindFavourite(context context.Context, offerID, customerID string) (*FavouriteOffer, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.CatalogueFavouriteOffer.ID, schema.CatalogueFavouriteOffer.Note,
		schema.CatalogueFavouriteOffer.Table,
		schema.CatalogueFavouriteOffer.OfferID, schema.CatalogueFavouriteOffer.CustomerID)
	favourite := &FavouriteOffer{}
	err := repository.db.QueryRow(context, query, offerID, customerID).Scan(&favourite.id, &favourite.note)
	if err != nil {
		return nil, dberr.Wrap(err, "get_favourite")
	}
	return favourite, nil
}

// ListFavouritesForCustomer returns a customer's favourite links with
// their offers hydrated through the shared offer select.
func (repository *PostgresRepository) ListFavouritesForCustomer(context context.Context, customerID string, limit, offset int) ([]*FavouriteOffer, int, error) {
	query := fmt.Sprintf(`
		SELECT f.%s, f.%s, %s,
		       COUNT(*) OVER() as total
		FROM %s f
		JOIN %s o ON f.%s = o.%s
		JOIN %s b ON o.%s = b.%s
		LEFT JOIN %s pb ON pb.%s = b.%s
		LEFT JOIN %s db ON db.%s = b.%s
		LEFT JOIN %s pbd ON pbd.%s = b.%s
		JOIN %s u ON o.%s = u.%s
		JOIN %s c ON c.%s = u.%s
		WHERE f.%s = $1
		ORDER BY f.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.CatalogueFavouriteOffer.ID, schema.CatalogueFavouriteOffer.Note, offerColumnList,
		schema.CatalogueFavouriteOffer.Table,
		schema.CatalogueOffer.Table, schema.CatalogueFavouriteOffer.OfferID, schema.CatalogueOffer.ID,
		schema.CatalogueBook.Table, schema.CatalogueOffer.BookID, schema.CatalogueBook.ID,
		schema.CataloguePaperBook.Table, schema.CataloguePaperBook.BookID, schema.CatalogueBook.ID,
		schema.CatalogueDiskBook.Table, schema.CatalogueDiskBook.BookID, schema.CatalogueBook.ID,
		schema.CataloguePaperBookWithDisk.Table, schema.CataloguePaperBookWithDisk.BookID, schema.CatalogueBook.ID,
		schema.UserAccount.Table, schema.CatalogueOffer.OwnerID, schema.UserAccount.ID,
		schema.UserCustomer.Table, schema.UserCustomer.UserID, schema.UserAccount.ID,
		schema.CatalogueFavouriteOffer.CustomerID,
		schema.CatalogueFavouriteOffer.CreatedAt)

	rows, err := repository.db.Query(context, query, customerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_customer_favourites")
	}
	defer rows.Close()

	var favourites []*FavouriteOffer
	var total int
	for rows.Next() {
		favourite := &FavouriteOffer{}
		row := &offerRow{}

		targets := []any{&favourite.id, &favourite.note}
		targets = append(targets, row.scanTargets()...)
		targets = append(targets, &total)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_favourite")
		}

		offer, err := row.hydrate()
		if err != nil {
			return nil, 0, dberr.Wrap(err, "hydrate_offer")
		}
		favourite.offer = offer
		offer.favourites[favourite] = struct{}{}
		favourites = append(favourites, favourite)
	}
	return favourites, total, nil
}

// DeleteFavourite removes the link between an offer and a customer.
func (repository *PostgresRepository) DeleteFavourite(context context.Context, offerID, customerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CatalogueFavouriteOffer.Table,
		schema.CatalogueFavouriteOffer.OfferID, schema.CatalogueFavouriteOffer.CustomerID)
	_, err := repository.db.Exec(context, query, offerID, customerID)
	return dberr.Wrap(err, "delete_favourite")
}
