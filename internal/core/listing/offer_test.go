// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/litfair/internal/core/listing"
	"github.com/taibuivan/litfair/internal/platform/apperr"
)

func newCustomer(username string) *listing.Customer {
	return listing.NewCustomer(username, "hash", "Jane", "Doe", "+49 30 1234567",
		time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		listing.Address{Country: "Germany", City: "Berlin", Street: "Karl-Marx-Allee 1", PostalCode: "10178"},
	)
}

// newOffer builds a valid published offer with role BASIC for the given
// seller, on a fresh paper book.
func newOffer(t *testing.T, seller *listing.Customer) *listing.Offer {
	t.Helper()

	publishing := time.Now().Add(24 * time.Hour)
	offer, err := listing.NewOffer(
		listing.NewPaperBook(validDetails(), 200),
		seller, 100.0, 1,
		listing.PublishStatePublished,
		listing.NewRoleSet(listing.RoleBasic),
		listing.RoleFields{PublishingTime: &publishing},
	)
	require.NoError(t, err)
	return offer
}

/*
TestNewOffer_WiresGraph verifies that a constructed offer is reachable
from both its book and its owner.
*/
func TestNewOffer_WiresGraph(t *testing.T) {
	seller := newCustomer("seller")
	offer := newOffer(t, seller)

	book, ok := offer.Book().(*listing.PaperBook)
	require.True(t, ok)
	assert.Same(t, offer, book.Offer())
	assert.True(t, seller.HasOwnedOffer(offer))
	assert.Same(t, seller, offer.Owner())
}

/*
TestNewOffer_BookExclusivity verifies that a book already owned by an
offer cannot be sold twice.
*/
func TestNewOffer_BookExclusivity(t *testing.T) {
	seller := newCustomer("seller")
	offer := newOffer(t, seller)

	publishing := time.Now()
	_, err := listing.NewOffer(offer.Book(), seller, 50.0, 1,
		listing.PublishStateUnpublished,
		listing.NewRoleSet(listing.RoleBasic),
		listing.RoleFields{PublishingTime: &publishing},
	)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "STRUCTURAL_VIOLATION"))
}

/*
TestNewOffer_CollectsFieldErrors verifies that construction reports every
invalid attribute in one aggregated error and wires nothing on failure.
*/
func TestNewOffer_CollectsFieldErrors(t *testing.T) {
	seller := newCustomer("seller")
	book := listing.NewPaperBook(validDetails(), 200)

	_, err := listing.NewOffer(book, seller, -1.0, -2,
		listing.PublishState("hidden"),
		listing.RoleSet(0),
		listing.RoleFields{},
	)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 4)

	// Failed construction leaves no partial wiring behind.
	assert.Nil(t, book.Offer())
	assert.Empty(t, seller.OwnedOffers())
}

/*
TestOffer_SetPrice tests the single-step price increase cap. The cap is
the only check the setter enforces; it is relative to the previous price
and cannot wait for aggregated validation.
*/
func TestOffer_SetPrice(t *testing.T) {
	tests := []struct {
		name     string
		newPrice float64
		wantCap  bool
	}{
		{"decrease", 50.0, false},
		{"unchanged", 100.0, false},
		{"boundary_plus_twenty_percent", 120.0, false},
		{"above_cap", 120.01, true},
		{"doubled", 200.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := newOffer(t, newCustomer("seller"))
			err := offer.SetPrice(tt.newPrice)

			if !tt.wantCap {
				require.NoError(t, err)
				assert.Equal(t, tt.newPrice, offer.Price())
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "BUSINESS_RULE_VIOLATION"))
			assert.Equal(t, 100.0, offer.Price())
		})
	}
}

/*
TestOffer_NegativeValuesDeferred verifies that negative prices and copy
counts pass through the setters and are reported by Violations instead,
so a caller can aggregate them with other field problems.
*/
func TestOffer_NegativeValuesDeferred(t *testing.T) {
	offer := newOffer(t, newCustomer("seller"))

	require.NoError(t, offer.SetPrice(-5.0))
	offer.SetNumberOfCopies(-2)

	fields := make([]string, 0, 2)
	for _, violation := range offer.Violations() {
		fields = append(fields, violation.Field)
	}
	assert.Contains(t, fields, listing.FieldPrice)
	assert.Contains(t, fields, listing.FieldCopies)
}

/*
TestOffer_GatedAccessors verifies that role-gated accessors fail with a
capability violation when the role is absent and succeed when held.
*/
func TestOffer_GatedAccessors(t *testing.T) {
	offer := newOffer(t, newCustomer("seller")) // BASIC only

	_, err := offer.PublishingTime()
	assert.NoError(t, err)

	_, err = offer.PriceWithDiscount()
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CAPABILITY_VIOLATION"))

	_, err = offer.EndDate()
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CAPABILITY_VIOLATION"))

	_, err = offer.DaysRemaining()
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CAPABILITY_VIOLATION"))

	err = offer.SetDiscount(10)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CAPABILITY_VIOLATION"))

	// Grant DISCOUNT and the accessor pair starts working.
	publishing := time.Now()
	discount := 25.0
	require.NoError(t, offer.SetRoles(
		listing.NewRoleSet(listing.RoleBasic, listing.RoleDiscount),
		listing.RoleFields{PublishingTime: &publishing, Discount: &discount},
	))

	discounted, err := offer.PriceWithDiscount()
	require.NoError(t, err)
	assert.InDelta(t, 75.0, discounted, 1e-9)
}

/*
TestOffer_SetRoles_Atomic verifies that a rejected role change leaves the
previous role set and fields untouched.
*/
func TestOffer_SetRoles_Atomic(t *testing.T) {
	offer := newOffer(t, newCustomer("seller"))
	before := offer.Roles()

	// DISCOUNT without its field is inconsistent.
	err := offer.SetRoles(
		listing.NewRoleSet(listing.RoleDiscount),
		listing.RoleFields{},
	)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CAPABILITY_VIOLATION"))

	assert.Equal(t, before, offer.Roles())
	_, err = offer.PublishingTime()
	assert.NoError(t, err)
}

/*
TestOffer_DaysRemaining checks whole-day truncation in both directions.
*/
func TestOffer_DaysRemaining(t *testing.T) {
	offer := newOffer(t, newCustomer("seller"))

	publishing := time.Now()
	future := time.Now().Add(72 * time.Hour)
	require.NoError(t, offer.SetRoles(
		listing.NewRoleSet(listing.RoleBasic, listing.RoleLimitedTime),
		listing.RoleFields{PublishingTime: &publishing, EndDate: &future},
	))

	days, err := offer.DaysRemaining()
	require.NoError(t, err)
	assert.Equal(t, 2, days)

	// Expired offers yield a negative count rather than an error.
	require.NoError(t, offer.SetEndDate(time.Now().Add(-72*time.Hour)))
	days, err = offer.DaysRemaining()
	require.NoError(t, err)
	assert.Equal(t, -3, days)
}

/*
TestOffer_OwnerReassignment verifies that ownership transfer requires an
explicit detach step.
*/
func TestOffer_OwnerReassignment(t *testing.T) {
	seller := newCustomer("seller")
	buyer := newCustomer("buyer")
	offer := newOffer(t, seller)

	err := offer.SetOwner(buyer)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "STRUCTURAL_VIOLATION"))
	assert.Same(t, seller, offer.Owner())

	// Detach first, then the transfer succeeds and both sides agree.
	require.NoError(t, offer.SetOwner(nil))
	assert.Nil(t, offer.Owner())
	assert.False(t, seller.HasOwnedOffer(offer))

	require.NoError(t, offer.SetOwner(buyer))
	assert.Same(t, buyer, offer.Owner())
	assert.True(t, buyer.HasOwnedOffer(offer))
}

/*
TestReport_Symmetry verifies report wiring across offer and reporter.
*/
func TestReport_Symmetry(t *testing.T) {
	seller := newCustomer("seller")
	reporter := newCustomer("reporter")
	offer := newOffer(t, seller)

	report, err := listing.NewReport("Counterfeit edition", offer, reporter)
	require.NoError(t, err)

	assert.True(t, offer.HasReport(report))
	assert.True(t, reporter.HasReport(report))

	// Removing from the offer side clears only the offer association.
	offer.RemoveReport(report)
	assert.False(t, offer.HasReport(report))
	assert.Nil(t, report.Offer())
	assert.True(t, reporter.HasReport(report))
	assert.Same(t, reporter, report.Reporter())
}

/*
TestFavouriteOffer tests default notes, self-favourite rejection, and
symmetric link removal.
*/
func TestFavouriteOffer(t *testing.T) {
	seller := newCustomer("seller")
	fan := newCustomer("fan")
	offer := newOffer(t, seller)

	t.Run("self_favourite_rejected", func(t *testing.T) {
		_, err := listing.NewFavouriteOffer("mine!", offer, seller)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "BUSINESS_RULE_VIOLATION"))
	})

	t.Run("default_note", func(t *testing.T) {
		favourite, err := listing.NewFavouriteOffer("", offer, fan)
		require.NoError(t, err)
		assert.Equal(t, listing.DefaultFavouriteNote, favourite.Note())

		assert.True(t, offer.HasFavouriteOffer(favourite))
		assert.True(t, fan.HasFavouriteOffer(favourite))

		fan.RemoveFavouriteOffer(favourite)
		assert.False(t, fan.HasFavouriteOffer(favourite))
		assert.Nil(t, favourite.Customer())
	})
}

/*
TestImage_OwnerLocked verifies that an image can be detached and
re-attached but never transferred while owned.
*/
func TestImage_OwnerLocked(t *testing.T) {
	first := listing.NewPaperBook(validDetails(), 100)
	second := listing.NewDiskBook(validDetails(), 2.0, listing.DiskFormatCD)

	image, err := listing.NewImage([]byte{0xFF, 0xD8}, listing.ImageFormatJPEG, true, first)
	require.NoError(t, err)
	assert.True(t, first.HasImage(image))

	err = image.SetBook(second)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "STRUCTURAL_VIOLATION"))

	// Detaching first makes the move legal.
	require.NoError(t, image.SetBook(nil))
	assert.False(t, first.HasImage(image))
	assert.Nil(t, image.Book())

	require.NoError(t, image.SetBook(second))
	assert.True(t, second.HasImage(image))
}

/*
TestCustomer_Age checks completed-year arithmetic around the birthday.
*/
func TestCustomer_Age(t *testing.T) {
	now := time.Now()

	justTurned := newCustomer("a")
	justTurned.SetBirthDate(now.AddDate(-30, 0, -1))
	assert.Equal(t, 30, justTurned.Age())

	almostThere := newCustomer("b")
	almostThere.SetBirthDate(now.AddDate(-30, 0, 1))
	assert.Equal(t, 29, almostThere.Age())
}
