// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"time"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// # Publish State

// PublishState governs the visibility of an offer. It is orthogonal to the
// offer's role set.
type PublishState string

const (
	// PublishStateArchived hides an offer retired by its owner.
	PublishStateArchived PublishState = "archived"

	// PublishStateUnpublished is the initial state before going live.
	PublishStateUnpublished PublishState = "unpublished"

	// PublishStatePublished makes the offer visible to everyone.
	PublishStatePublished PublishState = "published"

	// PublishStateBanned hides an offer removed by an administrator.
	PublishStateBanned PublishState = "banned"
)

// IsValid reports whether s is a recognised [PublishState] value.
func (s PublishState) IsValid() bool {
	switch s {
	case PublishStateArchived, PublishStateUnpublished, PublishStatePublished, PublishStateBanned:
		return true
	}
	return false
}

// maxPriceIncreaseFactor caps a single price update at +20% of the
// previous price.
const maxPriceIncreaseFactor = 1.2

// # Offer Aggregate

// Offer is the central aggregate of the marketplace: it exclusively owns
// one book, one contact record, and its reports and favourite links, and
// it composes the role set that gates the optional scheduling, discount,
// and expiry fields.
type Offer struct {
	id     string
	price  float64
	copies int
	state  PublishState

	book       Book
	contact    *ContactInfo
	owner      *Customer
	reports    map[*Report]struct{}
	favourites map[*FavouriteOffer]struct{}

	roles          RoleSet
	publishingTime *time.Time
	discount       *float64
	endDate        *time.Time
}

// NewOffer constructs an offer, taking ownership of the book and
// registering itself with the owning customer.
//
// # Validation
//
// Field problems (negative price or copies, empty role set, unknown
// publish state) are collected into one aggregated validation error; a
// role set inconsistent with the optional fields is a capability
// violation. Nothing is wired into the graph until every check passes,
// so a failed construction leaves no partial state behind.
func NewOffer(book Book, owner *Customer, price float64, copies int,
	state PublishState, roles RoleSet, fields RoleFields) (*Offer, error) {

	if book == nil {
		return nil, apperr.Structural("Offer requires a book")
	}
	if owner == nil {
		return nil, apperr.Structural("Offer requires an owning customer")
	}
	if book.core().offer != nil {
		return nil, apperr.Structural("Book is already attached to another offer")
	}

	var details []apperr.FieldError
	if price < 0 {
		details = append(details, apperr.FieldError{Field: FieldPrice, Message: "Price can't be negative"})
	}
	if copies < 0 {
		details = append(details, apperr.FieldError{Field: FieldCopies, Message: "Number of copies can't be negative"})
	}
	if roles.IsEmpty() {
		details = append(details, apperr.FieldError{Field: FieldRoles, Message: "At least one role is required"})
	}
	if !state.IsValid() {
		details = append(details, apperr.FieldError{Field: FieldPublishState, Message: "Publish state is not recognised"})
	}
	if fields.Discount != nil && (*fields.Discount < 0 || *fields.Discount > 100) {
		details = append(details, apperr.FieldError{Field: FieldDiscount, Message: "Discount must be between 0 and 100"})
	}
	if len(details) > 0 {
		return nil, apperr.ValidationError("Validation failed", details...)
	}

	if roleViolations := ValidateRoles(roles, fields); len(roleViolations) > 0 {
		return nil, apperr.Capability("Offer configuration violates its role set", roleViolations...)
	}

	offer := &Offer{
		price:          price,
		copies:         copies,
		state:          state,
		roles:          roles,
		publishingTime: fields.PublishingTime,
		discount:       fields.Discount,
		endDate:        fields.EndDate,
		reports:        make(map[*Report]struct{}),
		favourites:     make(map[*FavouriteOffer]struct{}),
	}

	offer.book = book
	if err := book.core().SetOffer(offer); err != nil {
		offer.book = nil
		return nil, err
	}

	offer.owner = owner
	if err := owner.AddOwnedOffer(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// ID returns the persistent identity, or "" before the first save.
func (o *Offer) ID() string { return o.id }

func (o *Offer) setID(id string) { o.id = id }

// Price returns the current asking price.
func (o *Offer) Price() float64 { return o.price }

// SetPrice replaces the price. A single update may not raise the price by
// more than 20% of the previous one; the boundary itself is allowed. A
// negative price is accepted here and surfaces through [Offer.Violations],
// so callers can report it together with other field problems.
func (o *Offer) SetPrice(price float64) error {
	if price > o.price*maxPriceIncreaseFactor {
		return apperr.BusinessRule("New price can't exceed the previous price by more than 20%")
	}
	o.price = price
	return nil
}

// NumberOfCopies returns how many copies are on offer.
func (o *Offer) NumberOfCopies() int { return o.copies }

// SetNumberOfCopies replaces the copy count. A negative count surfaces
// through [Offer.Violations].
func (o *Offer) SetNumberOfCopies(copies int) { o.copies = copies }

// Book returns the exclusively owned book.
func (o *Offer) Book() Book { return o.book }

// ContactInfo returns the contact record, or nil before one is attached.
func (o *Offer) ContactInfo() *ContactInfo { return o.contact }

// setContactInfo attaches a contact record that must already reference
// this offer. A previously attached record is detached first.
func (o *Offer) setContactInfo(contact *ContactInfo) error {
	if contact == nil || contact.offer != o {
		return apperr.Structural("Contact info is attached to another offer")
	}
	if o.contact != nil && o.contact != contact {
		o.contact.offer = nil
	}
	o.contact = contact
	return nil
}

// PublishState returns the visibility state.
func (o *Offer) PublishState() PublishState { return o.state }

// SetPublishState replaces the visibility state.
func (o *Offer) SetPublishState(state PublishState) error {
	if !state.IsValid() {
		return apperr.ValidationError("Publish state is not recognised")
	}
	o.state = state
	return nil
}

// # Ownership

// Owner returns the owning customer, or nil after detachment.
func (o *Offer) Owner() *Customer { return o.owner }

// SetOwner attaches or detaches the owning customer. A different owner
// while one is recorded is a structural violation; nil detaches the offer
// from the customer's owned set.
func (o *Offer) SetOwner(owner *Customer) error {
	current := o.owner

	if owner != nil && current != nil && owner != current {
		return apperr.Structural("Owner can't be changed on the offer")
	}

	if owner == nil {
		if current != nil {
			o.owner = nil
			current.RemoveOwnedOffer(o)
		}
		return nil
	}

	if current == nil {
		o.owner = owner
		if !owner.HasOwnedOffer(o) {
			return owner.AddOwnedOffer(o)
		}
	}
	return nil
}

// # Roles & Gated Fields

// Roles returns the role set. RoleSet is a value type, so the caller
// cannot mutate the offer through it.
func (o *Offer) Roles() RoleSet { return o.roles }

// RoleFields returns the current optional field values.
func (o *Offer) RoleFields() RoleFields {
	return RoleFields{
		PublishingTime: o.publishingTime,
		Discount:       o.discount,
		EndDate:        o.endDate,
	}
}

// SetRoles atomically replaces the role set together with the optional
// fields, so the two can never be observed inconsistent.
func (o *Offer) SetRoles(roles RoleSet, fields RoleFields) error {
	if roles.IsEmpty() {
		return apperr.ValidationError("At least one role is required")
	}
	if violations := ValidateRoles(roles, fields); len(violations) > 0 {
		return apperr.Capability("Offer configuration violates its role set", violations...)
	}
	o.roles = roles
	o.publishingTime = fields.PublishingTime
	o.discount = fields.Discount
	o.endDate = fields.EndDate
	return nil
}

// PublishingTime returns the scheduled publishing time. It fails with a
// capability violation unless role BASIC is held and the value is set.
func (o *Offer) PublishingTime() (time.Time, error) {
	if !o.roles.Has(RoleBasic) || o.publishingTime == nil {
		return time.Time{}, apperr.Capability("Role BASIC is not active on this offer")
	}
	return *o.publishingTime, nil
}

// SetPublishingTime replaces the scheduled publishing time. Role BASIC
// must be held.
func (o *Offer) SetPublishingTime(t time.Time) error {
	if !o.roles.Has(RoleBasic) {
		return apperr.Capability("Role BASIC is not active on this offer")
	}
	o.publishingTime = &t
	return nil
}

// PriceWithDiscount returns the discounted price. It fails with a
// capability violation unless role DISCOUNT is held and a discount is set.
func (o *Offer) PriceWithDiscount() (float64, error) {
	if !o.roles.Has(RoleDiscount) || o.discount == nil {
		return 0, apperr.Capability("Role DISCOUNT is not active on this offer")
	}
	return o.price - o.price*(*o.discount)/100, nil
}

// SetDiscount replaces the discount percentage. Role DISCOUNT must be held.
func (o *Offer) SetDiscount(discount float64) error {
	if !o.roles.Has(RoleDiscount) {
		return apperr.Capability("Role DISCOUNT is not active on this offer")
	}
	if discount < 0 || discount > 100 {
		return apperr.ValidationError("Discount must be between 0 and 100")
	}
	o.discount = &discount
	return nil
}

// EndDate returns the expiry date. It fails with a capability violation
// unless role LIMITED_TIME is held and the value is set.
func (o *Offer) EndDate() (time.Time, error) {
	if !o.roles.Has(RoleLimitedTime) || o.endDate == nil {
		return time.Time{}, apperr.Capability("Role LIMITED_TIME is not active on this offer")
	}
	return *o.endDate, nil
}

// DaysRemaining returns the whole days between now and the end date,
// negative once the offer has expired; the value is not clamped.
func (o *Offer) DaysRemaining() (int, error) {
	if !o.roles.Has(RoleLimitedTime) || o.endDate == nil {
		return 0, apperr.Capability("Role LIMITED_TIME is not active on this offer")
	}
	return int(time.Until(*o.endDate).Hours() / 24), nil
}

// SetEndDate replaces the expiry date. Role LIMITED_TIME must be held.
func (o *Offer) SetEndDate(t time.Time) error {
	if !o.roles.Has(RoleLimitedTime) {
		return apperr.Capability("Role LIMITED_TIME is not active on this offer")
	}
	o.endDate = &t
	return nil
}

// # Offer ↔ Report

// Reports returns a copy of the report set.
func (o *Offer) Reports() []*Report {
	out := make([]*Report, 0, len(o.reports))
	for report := range o.reports {
		out = append(out, report)
	}
	return out
}

// HasReport reports whether the report belongs to this offer.
func (o *Offer) HasReport(report *Report) bool {
	_, ok := o.reports[report]
	return ok
}

// AddReport inserts a report that must already designate this offer.
func (o *Offer) AddReport(report *Report) error {
	if report == nil {
		return apperr.Structural("Report can't be nil")
	}
	if report.offer != o {
		return apperr.Structural("Report is attached to another offer")
	}
	o.reports[report] = struct{}{}
	return nil
}

// RemoveReport removes the report and clears its offer reference.
func (o *Offer) RemoveReport(report *Report) {
	if report == nil || !o.HasReport(report) {
		return
	}
	delete(o.reports, report)
	if report.offer == o {
		report.offer = nil
	}
}

// # Offer ↔ FavouriteOffer

// FavouriteOffers returns a copy of the favourite-link set.
func (o *Offer) FavouriteOffers() []*FavouriteOffer {
	out := make([]*FavouriteOffer, 0, len(o.favourites))
	for favourite := range o.favourites {
		out = append(out, favourite)
	}
	return out
}

// HasFavouriteOffer reports whether the link belongs to this offer.
func (o *Offer) HasFavouriteOffer(favourite *FavouriteOffer) bool {
	_, ok := o.favourites[favourite]
	return ok
}

// AddFavouriteOffer inserts a link that must already designate this offer.
func (o *Offer) AddFavouriteOffer(favourite *FavouriteOffer) error {
	if favourite == nil {
		return apperr.Structural("FavouriteOffer can't be nil")
	}
	if favourite.offer != o {
		return apperr.Structural("FavouriteOffer is attached to another offer")
	}
	o.favourites[favourite] = struct{}{}
	return nil
}

// RemoveFavouriteOffer removes the link and clears its offer reference.
func (o *Offer) RemoveFavouriteOffer(favourite *FavouriteOffer) {
	if favourite == nil || !o.HasFavouriteOffer(favourite) {
		return
	}
	delete(o.favourites, favourite)
	if favourite.offer == o {
		favourite.offer = nil
	}
}

// Violations returns every invalid attribute of the offer, including
// role/field inconsistencies. The price-increase cap is relative to a
// previous value and is therefore checked by [Offer.SetPrice], not here.
func (o *Offer) Violations() []apperr.FieldError {
	var violations []apperr.FieldError
	if o.price < 0 {
		violations = append(violations, apperr.FieldError{Field: FieldPrice, Message: "Price can't be negative"})
	}
	if o.copies < 0 {
		violations = append(violations, apperr.FieldError{Field: FieldCopies, Message: "Number of copies can't be negative"})
	}
	if o.roles.IsEmpty() {
		violations = append(violations, apperr.FieldError{Field: FieldRoles, Message: "At least one role is required"})
	}
	if !o.state.IsValid() {
		violations = append(violations, apperr.FieldError{Field: FieldPublishState, Message: "Publish state is not recognised"})
	}
	violations = append(violations, ValidateRoles(o.roles, o.RoleFields())...)
	return violations
}
