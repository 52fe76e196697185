// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"strings"
	"time"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// Address is a plain value: replacing it never touches the association
// graph. HouseNumber is kept separate from Street for addresses where the
// number is not part of the street line; it may be blank.
type Address struct {
	Country     string
	City        string
	Street      string
	HouseNumber string
	PostalCode  string
}

// Violations returns every invalid attribute of the address.
func (a Address) Violations() []apperr.FieldError {
	var violations []apperr.FieldError
	if strings.TrimSpace(a.Country) == "" {
		violations = append(violations, apperr.FieldError{Field: FieldCountry, Message: "Country can't be blank"})
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		violations = append(violations, apperr.FieldError{Field: FieldPostalCode, Message: "Postal code can't be blank"})
	}
	return violations
}

// Customer is a regular account: it owns offers it sells and keeps the
// reports it filed and the offers it favourited.
type Customer struct {
	userAccount
	birthDate time.Time
	phone     string
	address   Address

	ownedOffers map[*Offer]struct{}
	reports     map[*Report]struct{}
	favourites  map[*FavouriteOffer]struct{}
}

// NewCustomer constructs a customer account with empty association sets.
func NewCustomer(username, passwordHash, firstName, lastName, phone string, birthDate time.Time, address Address) *Customer {
	return &Customer{
		userAccount: userAccount{
			username:     username,
			passwordHash: passwordHash,
			firstName:    firstName,
			lastName:     lastName,
		},
		birthDate:   birthDate,
		phone:       phone,
		address:     address,
		ownedOffers: make(map[*Offer]struct{}),
		reports:     make(map[*Report]struct{}),
		favourites:  make(map[*FavouriteOffer]struct{}),
	}
}

// Role identifies the account as a customer.
func (c *Customer) Role() UserRole { return UserRoleCustomer }

// BirthDate returns the customer's date of birth.
func (c *Customer) BirthDate() time.Time { return c.birthDate }

// SetBirthDate replaces the date of birth.
func (c *Customer) SetBirthDate(t time.Time) { c.birthDate = t }

// Age returns the customer's age in completed years as of today.
func (c *Customer) Age() int {
	now := time.Now()
	years := now.Year() - c.birthDate.Year()
	anniversary := c.birthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// Phone returns the customer's telephone number; it may be blank.
func (c *Customer) Phone() string { return c.phone }

// SetPhone replaces the telephone number.
func (c *Customer) SetPhone(phone string) { c.phone = phone }

// Address returns the postal address.
func (c *Customer) Address() Address { return c.address }

// SetAddress replaces the postal address.
func (c *Customer) SetAddress(address Address) { c.address = address }

// # Customer ↔ Offer

// OwnedOffers returns a copy of the offers the customer is selling.
func (c *Customer) OwnedOffers() []*Offer {
	out := make([]*Offer, 0, len(c.ownedOffers))
	for offer := range c.ownedOffers {
		out = append(out, offer)
	}
	return out
}

// HasOwnedOffer reports whether the offer belongs to this customer.
func (c *Customer) HasOwnedOffer(offer *Offer) bool {
	_, ok := c.ownedOffers[offer]
	return ok
}

// AddOwnedOffer inserts an offer that must already designate this
// customer as its owner; a mismatch is a structural violation.
func (c *Customer) AddOwnedOffer(offer *Offer) error {
	if offer == nil {
		return apperr.Structural("Offer can't be nil")
	}
	if offer.owner != c {
		return apperr.Structural("Offer is owned by another customer")
	}
	c.ownedOffers[offer] = struct{}{}
	return nil
}

// RemoveOwnedOffer removes the offer and clears its owner reference.
func (c *Customer) RemoveOwnedOffer(offer *Offer) {
	if offer == nil || !c.HasOwnedOffer(offer) {
		return
	}
	delete(c.ownedOffers, offer)
	if offer.owner == c {
		offer.owner = nil
	}
}

// # Customer ↔ Report

// Reports returns a copy of the reports the customer filed.
func (c *Customer) Reports() []*Report {
	out := make([]*Report, 0, len(c.reports))
	for report := range c.reports {
		out = append(out, report)
	}
	return out
}

// HasReport reports whether the report was filed by this customer.
func (c *Customer) HasReport(report *Report) bool {
	_, ok := c.reports[report]
	return ok
}

// AddReport inserts a report that must already designate this customer as
// its reporter.
func (c *Customer) AddReport(report *Report) error {
	if report == nil {
		return apperr.Structural("Report can't be nil")
	}
	if report.reporter != c {
		return apperr.Structural("Report is attached to another customer")
	}
	c.reports[report] = struct{}{}
	return nil
}

// RemoveReport removes the report and clears its reporter reference.
func (c *Customer) RemoveReport(report *Report) {
	if report == nil || !c.HasReport(report) {
		return
	}
	delete(c.reports, report)
	if report.reporter == c {
		report.reporter = nil
	}
}

// # Customer ↔ FavouriteOffer

// FavouriteOffers returns a copy of the customer's favourite links.
func (c *Customer) FavouriteOffers() []*FavouriteOffer {
	out := make([]*FavouriteOffer, 0, len(c.favourites))
	for favourite := range c.favourites {
		out = append(out, favourite)
	}
	return out
}

// HasFavouriteOffer reports whether the link belongs to this customer.
func (c *Customer) HasFavouriteOffer(favourite *FavouriteOffer) bool {
	_, ok := c.favourites[favourite]
	return ok
}

// AddFavouriteOffer inserts a link that must already designate this
// customer.
func (c *Customer) AddFavouriteOffer(favourite *FavouriteOffer) error {
	if favourite == nil {
		return apperr.Structural("FavouriteOffer can't be nil")
	}
	if favourite.customer != c {
		return apperr.Structural("FavouriteOffer is attached to another customer")
	}
	c.favourites[favourite] = struct{}{}
	return nil
}

// RemoveFavouriteOffer removes the link and clears its customer reference.
func (c *Customer) RemoveFavouriteOffer(favourite *FavouriteOffer) {
	if favourite == nil || !c.HasFavouriteOffer(favourite) {
		return
	}
	delete(c.favourites, favourite)
	if favourite.customer == c {
		favourite.customer = nil
	}
}

// Violations returns every invalid attribute of the account.
func (c *Customer) Violations() []apperr.FieldError {
	violations := c.accountViolations()
	if c.birthDate.IsZero() || c.birthDate.After(time.Now()) {
		violations = append(violations, apperr.FieldError{Field: FieldBirthDate, Message: "Date of birth must be in the past"})
	}
	violations = append(violations, c.address.Violations()...)
	return violations
}
