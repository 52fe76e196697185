// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/litfair/internal/platform/database/schema"
	"github.com/taibuivan/litfair/internal/platform/dberr"
	"github.com/taibuivan/litfair/pkg/uuid"
)

// PostgresRepository implements the listing data access contracts using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed listing store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// qualify prefixes column names with a table alias for multi-table selects.
func qualify(alias string, columns ...string) string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

// offerColumnList enumerates the offer aggregate columns in scan order:
// offer row, book row, the three variant side tables, then the owner.
// Every variant column is nullable; exactly one side table matches per row.
var offerColumnList = "\n\t\t" + strings.Join([]string{
	qualify("o",
		schema.CatalogueOffer.ID, schema.CatalogueOffer.Price, schema.CatalogueOffer.NumberOfCopies,
		schema.CatalogueOffer.PublishState, schema.CatalogueOffer.Roles,
		schema.CatalogueOffer.PublishingTime, schema.CatalogueOffer.Discount, schema.CatalogueOffer.EndDate),
	qualify("b",
		schema.CatalogueBook.ID, schema.CatalogueBook.Kind, schema.CatalogueBook.Name,
		schema.CatalogueBook.YearOfPublishing, schema.CatalogueBook.Description,
		schema.CatalogueBook.Author, schema.CatalogueBook.ISBN),
	qualify("pb", schema.CataloguePaperBook.NumberOfPages),
	qualify("db", schema.CatalogueDiskBook.DurationInHours, schema.CatalogueDiskBook.DiskFormat),
	qualify("pbd",
		schema.CataloguePaperBookWithDisk.NumberOfPages, schema.CataloguePaperBookWithDisk.DurationInHours,
		schema.CataloguePaperBookWithDisk.DiskFormat, schema.CataloguePaperBookWithDisk.IsDiskGlued),
	qualify("u",
		schema.UserAccount.ID, schema.UserAccount.Username,
		schema.UserAccount.FirstName, schema.UserAccount.LastName),
	qualify("c",
		schema.UserCustomer.DateOfBirth, schema.UserCustomer.TelephoneNumber,
		schema.UserCustomer.Country, schema.UserCustomer.City, schema.UserCustomer.Street,
		schema.UserCustomer.HouseNumber, schema.UserCustomer.PostalCode),
}, ",\n\t\t")

// offerJoins connects the aggregate tables behind [offerColumnList].
var offerJoins = fmt.Sprintf(`
	FROM %s o
	JOIN %s b ON o.%s = b.%s
	LEFT JOIN %s pb ON pb.%s = b.%s
	LEFT JOIN %s db ON db.%s = b.%s
	LEFT JOIN %s pbd ON pbd.%s = b.%s
	JOIN %s u ON o.%s = u.%s
	JOIN %s c ON c.%s = u.%s
`,
	schema.CatalogueOffer.Table,
	schema.CatalogueBook.Table, schema.CatalogueOffer.BookID, schema.CatalogueBook.ID,
	schema.CataloguePaperBook.Table, schema.CataloguePaperBook.BookID, schema.CatalogueBook.ID,
	schema.CatalogueDiskBook.Table, schema.CatalogueDiskBook.BookID, schema.CatalogueBook.ID,
	schema.CataloguePaperBookWithDisk.Table, schema.CataloguePaperBookWithDisk.BookID, schema.CatalogueBook.ID,
	schema.UserAccount.Table, schema.CatalogueOffer.OwnerID, schema.UserAccount.ID,
	schema.UserCustomer.Table, schema.UserCustomer.UserID, schema.UserAccount.ID,
)

var offerSelect = `SELECT` + offerColumnList + offerJoins

// offerListSelect appends the window total as the last column for
// paginated discovery queries.
var offerListSelect = `SELECT` + offerColumnList + `,
		COUNT(*) OVER() as total` + offerJoins

// offerRow carries one scanned row of [offerSelect] before hydration.
type offerRow struct {
	id             string
	price          float64
	copies         int
	state          string
	roles          string
	publishingTime *time.Time
	discount       *float64
	endDate        *time.Time

	bookID      string
	kind        string
	name        string
	year        int
	description string
	author      string
	isbn        string

	paperPages *int

	diskDuration *float64
	diskFormat   *string

	bundlePages    *int
	bundleDuration *float64
	bundleFormat   *string
	bundleGlued    *bool

	ownerID     string
	username    string
	firstName   string
	lastName    string
	birthDate   time.Time
	phone       string
	country     string
	city        string
	street      string
	houseNumber string
	postalCode  string
}

func (r *offerRow) scanTargets() []any {
	return []any{
		&r.id, &r.price, &r.copies, &r.state, &r.roles,
		&r.publishingTime, &r.discount, &r.endDate,
		&r.bookID, &r.kind, &r.name, &r.year, &r.description, &r.author, &r.isbn,
		&r.paperPages,
		&r.diskDuration, &r.diskFormat,
		&r.bundlePages, &r.bundleDuration, &r.bundleFormat, &r.bundleGlued,
		&r.ownerID, &r.username, &r.firstName, &r.lastName, &r.birthDate, &r.phone,
		&r.country, &r.city, &r.street, &r.houseNumber, &r.postalCode,
	}
}

// hydrate rebuilds the in-memory aggregate from a scanned row, wiring the
// book, the owner and the role fields through the same association code
// the rest of the domain uses.
func (r *offerRow) hydrate() (*Offer, error) {
	book, err := r.hydrateBook()
	if err != nil {
		return nil, err
	}

	roles, err := ParseRoleSet(r.roles)
	if err != nil {
		return nil, err
	}

	owner := NewCustomer(r.username, "", r.firstName, r.lastName, r.phone, r.birthDate, Address{
		Country:     r.country,
		City:        r.city,
		Street:      r.street,
		HouseNumber: r.houseNumber,
		PostalCode:  r.postalCode,
	})
	owner.setID(r.ownerID)

	offer := &Offer{
		id:             r.id,
		price:          r.price,
		copies:         r.copies,
		state:          PublishState(r.state),
		roles:          roles,
		publishingTime: r.publishingTime,
		discount:       r.discount,
		endDate:        r.endDate,
		reports:        make(map[*Report]struct{}),
		favourites:     make(map[*FavouriteOffer]struct{}),
	}

	offer.book = book
	book.core().offer = offer

	offer.owner = owner
	owner.ownedOffers[offer] = struct{}{}

	return offer, nil
}

func (r *offerRow) hydrateBook() (Book, error) {
	core := newBookCore(BookDetails{
		Name:             r.name,
		YearOfPublishing: r.year,
		Description:      r.description,
		Author:           r.author,
		ISBN:             r.isbn,
	})
	core.id = r.bookID

	switch BookKind(r.kind) {
	case BookKindPaper:
		book := &PaperBook{bookCore: core}
		if r.paperPages != nil {
			book.pages = *r.paperPages
		}
		book.self = book
		return book, nil

	case BookKindDisk:
		book := &DiskBook{bookCore: core}
		if r.diskDuration != nil {
			book.durationHours = *r.diskDuration
		}
		if r.diskFormat != nil {
			book.diskFormat = DiskFormat(*r.diskFormat)
		}
		book.self = book
		return book, nil

	case BookKindPaperWithDisk:
		book := &PaperBookWithDisk{bookCore: core}
		if r.bundlePages != nil {
			book.pages = *r.bundlePages
		}
		if r.bundleDuration != nil {
			book.durationHours = *r.bundleDuration
		}
		if r.bundleFormat != nil {
			book.diskFormat = DiskFormat(*r.bundleFormat)
		}
		if r.bundleGlued != nil {
			book.diskGlued = *r.bundleGlued
		}
		book.self = book
		return book, nil
	}

	return nil, fmt.Errorf("listing: unknown book kind %q for book %s", r.kind, r.bookID)
}

// # Offer Retrieval

/*
ListOffers returns a filtered and paginated list of offers.

Description: Uses ILIKE for book name/author search and COUNT(*) OVER()
for total metadata. Books are hydrated with their variant attributes;
categories, images and contact info are loaded only by FindOfferByID.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Offer: Slice of matching offers
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListOffers(context context.Context, filter Filter, limit, offset int) ([]*Offer, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(offerListSelect)
	queryBuilder.WriteString(" WHERE 1=1")

	args := []any{}
	argID := 1

	state := filter.State
	if state == "" {
		state = PublishStatePublished
	}
	queryBuilder.WriteString(fmt.Sprintf(" AND o.%s = $%d", schema.CatalogueOffer.PublishState, argID))
	args = append(args, string(state))
	argID++

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (b.%s ILIKE $%d OR b.%s ILIKE $%d)",
			schema.CatalogueBook.Name, argID, schema.CatalogueBook.Author, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Kind != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.CatalogueBook.Kind, argID))
		args = append(args, string(filter.Kind))
		argID++
	}

	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.%s = $%d", schema.CatalogueOffer.OwnerID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	if filter.MaxPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.%s <= $%d", schema.CatalogueOffer.Price, argID))
		args = append(args, *filter.MaxPrice)
		argID++
	}

	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s bc
			JOIN %s cat ON bc.%s = cat.%s
			WHERE bc.%s = b.%s AND cat.%s = $%d
		)`,
			schema.CatalogueBookCategory.Table, schema.CatalogueCategory.Table,
			schema.CatalogueBookCategory.CategoryID, schema.CatalogueCategory.ID,
			schema.CatalogueBookCategory.BookID, schema.CatalogueBook.ID,
			schema.CatalogueCategory.Slug, argID))
		args = append(args, filter.CategorySlug)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY o.%s DESC LIMIT $%d OFFSET $%d",
		schema.CatalogueOffer.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_offers")
	}
	defer rows.Close()

	var offers []*Offer
	var total int
	for rows.Next() {
		row := &offerRow{}
		targets := append(row.scanTargets(), &total)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_offer")
		}

		offer, err := row.hydrate()
		if err != nil {
			return nil, 0, dberr.Wrap(err, "hydrate_offer")
		}
		offers = append(offers, offer)
	}

	return offers, total, nil
}

/*
FindOfferByID retrieves a fully hydrated offer aggregate.

Description: Loads the offer row with its book, variant attributes and
owner, then attaches categories, image metadata and contact info. Image
payloads are intentionally left out; FindImageByID serves them.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Offer: Hydrated aggregate
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindOfferByID(context context.Context, id string) (*Offer, error) {
	row := &offerRow{}
	query := fmt.Sprintf("%s WHERE o.%s = $1", offerSelect, schema.CatalogueOffer.ID)
	err := repository.db.QueryRow(context, query, id).Scan(row.scanTargets()...)
	if err != nil {
		return nil, dberr.Wrap(err, "get_offer_by_id")
	}

	offer, err := row.hydrate()
	if err != nil {
		return nil, dberr.Wrap(err, "hydrate_offer")
	}

	if err := repository.attachCategories(context, offer); err != nil {
		return nil, err
	}
	if err := repository.attachImages(context, offer); err != nil {
		return nil, err
	}
	if err := repository.attachContactInfo(context, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (repository *PostgresRepository) attachCategories(context context.Context, offer *Offer) error {
	query := fmt.Sprintf(`
		SELECT cat.%s, cat.%s, cat.%s
		FROM %s bc
		JOIN %s cat ON bc.%s = cat.%s
		WHERE bc.%s = $1
		ORDER BY cat.%s ASC
	`,
		schema.CatalogueCategory.ID, schema.CatalogueCategory.Name, schema.CatalogueCategory.Slug,
		schema.CatalogueBookCategory.Table, schema.CatalogueCategory.Table,
		schema.CatalogueBookCategory.CategoryID, schema.CatalogueCategory.ID,
		schema.CatalogueBookCategory.BookID, schema.CatalogueCategory.Name)

	rows, err := repository.db.Query(context, query, offer.book.core().id)
	if err != nil {
		return dberr.Wrap(err, "list_book_categories")
	}
	defer rows.Close()

	for rows.Next() {
		category := &Category{books: make(map[*bookCore]struct{})}
		if err := rows.Scan(&category.id, &category.name, &category.slug); err != nil {
			return dberr.Wrap(err, "scan_category")
		}
		offer.book.core().AddCategory(category)
	}
	return nil
}

func (repository *PostgresRepository) attachImages(context context.Context, offer *Offer) error {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CatalogueImage.ID, schema.CatalogueImage.Format, schema.CatalogueImage.IsPreview,
		schema.CatalogueImage.Table, schema.CatalogueImage.BookID, schema.CatalogueImage.CreatedAt)

	rows, err := repository.db.Query(context, query, offer.book.core().id)
	if err != nil {
		return dberr.Wrap(err, "list_book_images")
	}
	defer rows.Close()

	for rows.Next() {
		image := &Image{book: offer.book}
		var format string
		if err := rows.Scan(&image.id, &format, &image.preview); err != nil {
			return dberr.Wrap(err, "scan_image")
		}
		image.format = ImageFormat(format)
		offer.book.core().images[image] = struct{}{}
	}
	return nil
}

func (repository *PostgresRepository) attachContactInfo(context context.Context, offer *Offer) error {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CatalogueContactInfo.ID, schema.CatalogueContactInfo.Email,
		schema.CatalogueContactInfo.TelephoneNumber, schema.CatalogueContactInfo.SocialMediaLink,
		schema.CatalogueContactInfo.Table, schema.CatalogueContactInfo.OfferID)

	contact := &ContactInfo{offer: offer}
	err := repository.db.QueryRow(context, query, offer.id).Scan(
		&contact.id, &contact.email, &contact.phone, &contact.socialLink,
	)
	if err != nil {
		// A listing without a contact sheet is legal.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return dberr.Wrap(err, "get_contact_info")
	}
	offer.contact = contact
	return nil
}

// # Offer Mutation

/*
CreateListing persists a new offer aggregate.

Description: Executes within one transaction so the aggregate is either
fully stored or not at all: book row, variant side row, category links,
image rows, offer row, contact row. Fresh UUIDv7 identities are assigned
to every entity that lacks one.

Parameters:
  - context: context.Context
  - offer: *Offer

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) CreateListing(context context.Context, offer *Offer) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_listing_tx")
	}
	defer transaction.Rollback(context)

	book := offer.book.core()
	if book.id == "" {
		book.setID(uuid.New())
	}

	bookQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`,
		schema.CatalogueBook.Table, strings.Join(schema.CatalogueBook.Columns(), ", "),
		schema.CatalogueBook.CreatedAt, schema.CatalogueBook.UpdatedAt)
	_, err = transaction.Exec(context, bookQuery,
		book.id, string(offer.book.Kind()), book.name, book.year, book.description, book.author, book.isbn,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_book")
	}

	if err := insertVariantRow(context, transaction, offer.book); err != nil {
		return err
	}

	linkQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CatalogueBookCategory.Table,
		schema.CatalogueBookCategory.BookID, schema.CatalogueBookCategory.CategoryID)
	for category := range book.categories {
		if _, err := transaction.Exec(context, linkQuery, book.id, category.id); err != nil {
			return dberr.Wrap(err, "insert_book_category")
		}
	}

	imageQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`,
		schema.CatalogueImage.Table,
		schema.CatalogueImage.ID, schema.CatalogueImage.BookID, schema.CatalogueImage.Data,
		schema.CatalogueImage.Format, schema.CatalogueImage.IsPreview, schema.CatalogueImage.CreatedAt)
	for image := range book.images {
		if image.id == "" {
			image.setID(uuid.New())
		}
		_, err := transaction.Exec(context, imageQuery,
			image.id, book.id, image.data, string(image.format), image.preview,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_image")
		}
	}

	if offer.id == "" {
		offer.setID(uuid.New())
	}
	offerQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`,
		schema.CatalogueOffer.Table, strings.Join(schema.CatalogueOffer.Columns(), ", "),
		schema.CatalogueOffer.CreatedAt, schema.CatalogueOffer.UpdatedAt)
	_, err = transaction.Exec(context, offerQuery,
		offer.id, book.id, offer.owner.ID(), offer.price, offer.copies,
		string(offer.state), offer.roles.String(),
		offer.publishingTime, offer.discount, offer.endDate,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_offer")
	}

	if offer.contact != nil {
		if offer.contact.id == "" {
			offer.contact.setID(uuid.New())
		}
		contactQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
		`,
			schema.CatalogueContactInfo.Table,
			schema.CatalogueContactInfo.ID, schema.CatalogueContactInfo.OfferID,
			schema.CatalogueContactInfo.Email, schema.CatalogueContactInfo.TelephoneNumber,
			schema.CatalogueContactInfo.SocialMediaLink)
		_, err := transaction.Exec(context, contactQuery,
			offer.contact.id, offer.id, offer.contact.email, offer.contact.phone, offer.contact.socialLink,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_contact_info")
		}
	}

	return transaction.Commit(context)
}

func insertVariantRow(context context.Context, transaction pgx.Tx, book Book) error {
	switch variant := book.(type) {
	case *PaperBook:
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.CataloguePaperBook.Table,
			schema.CataloguePaperBook.BookID, schema.CataloguePaperBook.NumberOfPages)
		_, err := transaction.Exec(context, query, variant.ID(), variant.pages)
		return dberr.Wrap(err, "insert_paper_book")

	case *DiskBook:
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
			schema.CatalogueDiskBook.Table,
			schema.CatalogueDiskBook.BookID, schema.CatalogueDiskBook.DurationInHours,
			schema.CatalogueDiskBook.DiskFormat)
		_, err := transaction.Exec(context, query, variant.ID(), variant.durationHours, string(variant.diskFormat))
		return dberr.Wrap(err, "insert_disk_book")

	case *PaperBookWithDisk:
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
		`,
			schema.CataloguePaperBookWithDisk.Table,
			schema.CataloguePaperBookWithDisk.BookID, schema.CataloguePaperBookWithDisk.NumberOfPages,
			schema.CataloguePaperBookWithDisk.DurationInHours, schema.CataloguePaperBookWithDisk.DiskFormat,
			schema.CataloguePaperBookWithDisk.IsDiskGlued)
		_, err := transaction.Exec(context, query,
			variant.ID(), variant.pages, variant.durationHours, string(variant.diskFormat), variant.diskGlued)
		return dberr.Wrap(err, "insert_paper_book_with_disk")
	}
	return fmt.Errorf("listing: unknown book variant %T", book)
}

func updateVariantRow(context context.Context, transaction pgx.Tx, book Book) error {
	switch variant := book.(type) {
	case *PaperBook:
		query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
			schema.CataloguePaperBook.Table,
			schema.CataloguePaperBook.NumberOfPages, schema.CataloguePaperBook.BookID)
		_, err := transaction.Exec(context, query, variant.ID(), variant.pages)
		return dberr.Wrap(err, "update_paper_book")

	case *DiskBook:
		query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
			schema.CatalogueDiskBook.Table,
			schema.CatalogueDiskBook.DurationInHours, schema.CatalogueDiskBook.DiskFormat,
			schema.CatalogueDiskBook.BookID)
		_, err := transaction.Exec(context, query, variant.ID(), variant.durationHours, string(variant.diskFormat))
		return dberr.Wrap(err, "update_disk_book")

	case *PaperBookWithDisk:
		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = $5
			WHERE %s = $1
		`,
			schema.CataloguePaperBookWithDisk.Table,
			schema.CataloguePaperBookWithDisk.NumberOfPages, schema.CataloguePaperBookWithDisk.DurationInHours,
			schema.CataloguePaperBookWithDisk.DiskFormat, schema.CataloguePaperBookWithDisk.IsDiskGlued,
			schema.CataloguePaperBookWithDisk.BookID)
		_, err := transaction.Exec(context, query,
			variant.ID(), variant.pages, variant.durationHours, string(variant.diskFormat), variant.diskGlued)
		return dberr.Wrap(err, "update_paper_book_with_disk")
	}
	return fmt.Errorf("listing: unknown book variant %T", book)
}

/*
UpdateListing persists the mutable fields of an existing aggregate.

Description: Updates the book and variant rows, replaces the category
links wholesale, and updates the offer and contact rows, all in one
transaction. Images are managed separately through AddImage/DeleteImage.

Parameters:
  - context: context.Context
  - offer: *Offer

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) UpdateListing(context context.Context, offer *Offer) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_listing_tx")
	}
	defer transaction.Rollback(context)

	book := offer.book.core()

	bookQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
	`,
		schema.CatalogueBook.Table,
		schema.CatalogueBook.Name, schema.CatalogueBook.YearOfPublishing,
		schema.CatalogueBook.Description, schema.CatalogueBook.Author, schema.CatalogueBook.ISBN,
		schema.CatalogueBook.UpdatedAt, schema.CatalogueBook.ID)
	_, err = transaction.Exec(context, bookQuery,
		book.id, book.name, book.year, book.description, book.author, book.isbn,
	)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}

	if err := updateVariantRow(context, transaction, offer.book); err != nil {
		return err
	}

	unlinkQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogueBookCategory.Table, schema.CatalogueBookCategory.BookID)
	if _, err := transaction.Exec(context, unlinkQuery, book.id); err != nil {
		return dberr.Wrap(err, "unlink_book_categories")
	}
	linkQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CatalogueBookCategory.Table,
		schema.CatalogueBookCategory.BookID, schema.CatalogueBookCategory.CategoryID)
	for category := range book.categories {
		if _, err := transaction.Exec(context, linkQuery, book.id, category.id); err != nil {
			return dberr.Wrap(err, "insert_book_category")
		}
	}

	offerQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5,
		    %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
	`,
		schema.CatalogueOffer.Table,
		schema.CatalogueOffer.Price, schema.CatalogueOffer.NumberOfCopies,
		schema.CatalogueOffer.PublishState, schema.CatalogueOffer.Roles,
		schema.CatalogueOffer.PublishingTime, schema.CatalogueOffer.Discount,
		schema.CatalogueOffer.EndDate, schema.CatalogueOffer.UpdatedAt,
		schema.CatalogueOffer.ID)
	_, err = transaction.Exec(context, offerQuery,
		offer.id, offer.price, offer.copies, string(offer.state), offer.roles.String(),
		offer.publishingTime, offer.discount, offer.endDate,
	)
	if err != nil {
		return dberr.Wrap(err, "update_offer")
	}

	if offer.contact != nil {
		if offer.contact.id == "" {
			offer.contact.setID(uuid.New())
		}
		contactQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (%s) DO UPDATE
			SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
		`,
			schema.CatalogueContactInfo.Table,
			schema.CatalogueContactInfo.ID, schema.CatalogueContactInfo.OfferID,
			schema.CatalogueContactInfo.Email, schema.CatalogueContactInfo.TelephoneNumber,
			schema.CatalogueContactInfo.SocialMediaLink,
			schema.CatalogueContactInfo.OfferID,
			schema.CatalogueContactInfo.Email, schema.CatalogueContactInfo.Email,
			schema.CatalogueContactInfo.TelephoneNumber, schema.CatalogueContactInfo.TelephoneNumber,
			schema.CatalogueContactInfo.SocialMediaLink, schema.CatalogueContactInfo.SocialMediaLink)
		_, err := transaction.Exec(context, contactQuery,
			offer.contact.id, offer.id, offer.contact.email, offer.contact.phone, offer.contact.socialLink,
		)
		if err != nil {
			return dberr.Wrap(err, "upsert_contact_info")
		}
	}

	return transaction.Commit(context)
}

/*
UpdatePublishState flips only the visibility state of an offer.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - state: PublishState

Returns:
  - error: ErrNotFound if the offer does not exist
*/
func (repository *PostgresRepository) UpdatePublishState(context context.Context, id string, state PublishState) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		schema.CatalogueOffer.Table, schema.CatalogueOffer.PublishState,
		schema.CatalogueOffer.UpdatedAt, schema.CatalogueOffer.ID, schema.CatalogueOffer.ID)
	var updated string
	err := repository.db.QueryRow(context, query, id, string(state)).Scan(&updated)
	return dberr.Wrap(err, "update_publish_state")
}

/*
DeleteOffer removes the offer aggregate and everything it owns.

Description: Deletes in dependency order inside one transaction: the
engagement rows, the contact row, the offer row, then the book with its
variant row, images and category links.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) DeleteOffer(context context.Context, id string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_offer_tx")
	}
	defer transaction.Rollback(context)

	var bookID string
	bookQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CatalogueOffer.BookID, schema.CatalogueOffer.Table, schema.CatalogueOffer.ID)
	err = transaction.QueryRow(context, bookQuery, id).Scan(&bookID)
	if err != nil {
		return dberr.Wrap(err, "get_offer_book")
	}

	deleteBy := func(table, column string) string {
		return fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, column)
	}
	steps := []struct {
		action string
		query  string
		arg    string
	}{
		{"delete_favourites", deleteBy(schema.CatalogueFavouriteOffer.Table, schema.CatalogueFavouriteOffer.OfferID), id},
		{"delete_reports", deleteBy(schema.CatalogueReport.Table, schema.CatalogueReport.OfferID), id},
		{"delete_contact_info", deleteBy(schema.CatalogueContactInfo.Table, schema.CatalogueContactInfo.OfferID), id},
		{"delete_offer", deleteBy(schema.CatalogueOffer.Table, schema.CatalogueOffer.ID), id},
		{"delete_images", deleteBy(schema.CatalogueImage.Table, schema.CatalogueImage.BookID), bookID},
		{"unlink_book_categories", deleteBy(schema.CatalogueBookCategory.Table, schema.CatalogueBookCategory.BookID), bookID},
		{"delete_paper_book", deleteBy(schema.CataloguePaperBook.Table, schema.CataloguePaperBook.BookID), bookID},
		{"delete_disk_book", deleteBy(schema.CatalogueDiskBook.Table, schema.CatalogueDiskBook.BookID), bookID},
		{"delete_paper_book_with_disk", deleteBy(schema.CataloguePaperBookWithDisk.Table, schema.CataloguePaperBookWithDisk.BookID), bookID},
		{"delete_book", deleteBy(schema.CatalogueBook.Table, schema.CatalogueBook.ID), bookID},
	}
	for _, step := range steps {
		if _, err := transaction.Exec(context, step.query, step.arg); err != nil {
			return dberr.Wrap(err, step.action)
		}
	}

	return transaction.Commit(context)
}

// # Image Rows

/*
AddImage persists one image row for an already stored book.

Parameters:
  - context: context.Context
  - image: *Image

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) AddImage(context context.Context, image *Image) error {
	if image.id == "" {
		image.setID(uuid.New())
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`,
		schema.CatalogueImage.Table,
		schema.CatalogueImage.ID, schema.CatalogueImage.BookID, schema.CatalogueImage.Data,
		schema.CatalogueImage.Format, schema.CatalogueImage.IsPreview, schema.CatalogueImage.CreatedAt)
	_, err := repository.db.Exec(context, query,
		image.id, image.book.core().id, image.data, string(image.format), image.preview,
	)
	return dberr.Wrap(err, "insert_image")
}

/*
FindImageByID returns a single image including its payload.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Image: Image with payload, detached from any in-memory book
  - error: ErrNotFound if missing
*/
func (repository *PostgresRepository) FindImageByID(context context.Context, id string) (*Image, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogueImage.ID, schema.CatalogueImage.Data,
		schema.CatalogueImage.Format, schema.CatalogueImage.IsPreview,
		schema.CatalogueImage.Table, schema.CatalogueImage.ID)
	image := &Image{}
	var format string
	err := repository.db.QueryRow(context, query, id).Scan(&image.id, &image.data, &format, &image.preview)
	if err != nil {
		return nil, dberr.Wrap(err, "get_image_by_id")
	}
	image.format = ImageFormat(format)
	return image, nil
}

/*
DeleteImage removes one image row.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) DeleteImage(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogueImage.Table, schema.CatalogueImage.ID)
	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_image")
}
