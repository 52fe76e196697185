// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// stubOfferStore serves one pre-built aggregate and records whether an
// update reached the persistence layer.
type stubOfferStore struct {
	offer   *Offer
	updated bool
}

func (s *stubOfferStore) ListOffers(_ context.Context, _ Filter, _, _ int) ([]*Offer, int, error) {
	return []*Offer{s.offer}, 1, nil
}

func (s *stubOfferStore) FindOfferByID(_ context.Context, id string) (*Offer, error) {
	if s.offer == nil || s.offer.ID() != id {
		return nil, apperr.NotFound("Offer")
	}
	return s.offer, nil
}

func (s *stubOfferStore) CreateListing(_ context.Context, _ *Offer) error { return nil }

func (s *stubOfferStore) UpdateListing(_ context.Context, _ *Offer) error {
	s.updated = true
	return nil
}

func (s *stubOfferStore) UpdatePublishState(_ context.Context, _ string, _ PublishState) error {
	return nil
}

func (s *stubOfferStore) DeleteOffer(_ context.Context, _ string) error    { return nil }
func (s *stubOfferStore) AddImage(_ context.Context, _ *Image) error       { return nil }
func (s *stubOfferStore) FindImageByID(_ context.Context, _ string) (*Image, error) {
	return nil, apperr.NotFound("Image")
}
func (s *stubOfferStore) DeleteImage(_ context.Context, _ string) error { return nil }

// storedOffer builds a persisted-looking aggregate owned by customer-1.
func storedOffer(t *testing.T) *Offer {
	t.Helper()

	seller := NewCustomer("seller", "hash", "Jane", "Doe", "+49 30 1234567",
		time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Address{Country: "Germany", City: "Berlin", Street: "Karl-Marx-Allee 1", PostalCode: "10178"},
	)
	seller.setID("customer-1")

	book := NewPaperBook(BookDetails{
		Name:             "The Master and Margarita",
		YearOfPublishing: 1967,
		Description:      "Hardcover, light shelf wear.",
		Author:           "Mikhail Bulgakov",
		ISBN:             "9780141180144",
	}, 384)

	publishing := time.Now().Add(24 * time.Hour)
	offer, err := NewOffer(book, seller, 100.0, 1,
		PublishStatePublished,
		NewRoleSet(RoleBasic),
		RoleFields{PublishingTime: &publishing},
	)
	require.NoError(t, err)

	book.setID("book-1")
	offer.setID("offer-1")
	return offer
}

func newListingService(store *stubOfferStore) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, nil, nil, logger)
}

/*
TestUpdateListing_AggregatesFieldViolations verifies that an update with
several broken attributes reports all of them in one validation error,
rather than stopping at the first invalid field.
*/
func TestUpdateListing_AggregatesFieldViolations(t *testing.T) {
	store := &stubOfferStore{offer: storedOffer(t)}
	service := newListingService(store)

	isbn := "not-an-isbn"
	price := -5.0
	_, err := service.UpdateListing(context.Background(), "offer-1", "customer-1", UpdateListingInput{
		ISBN:  &isbn,
		Price: &price,
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.Contains(t, fields, FieldISBN)
	assert.Contains(t, fields, FieldPrice)

	assert.False(t, store.updated, "an invalid aggregate must not be persisted")
}

/*
TestUpdateListing_PriceCapRejectsImmediately verifies that the relative
price cap still rejects before aggregated validation runs.
*/
func TestUpdateListing_PriceCapRejectsImmediately(t *testing.T) {
	store := &stubOfferStore{offer: storedOffer(t)}
	service := newListingService(store)

	price := 200.0
	_, err := service.UpdateListing(context.Background(), "offer-1", "customer-1", UpdateListingInput{
		Price: &price,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "BUSINESS_RULE_VIOLATION"))
	assert.False(t, store.updated)
}
