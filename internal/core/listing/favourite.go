// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// DefaultFavouriteNote is the note stored when a customer favourites an
// offer without writing one.
const DefaultFavouriteNote = "No description"

// FavouriteOffer is the link created when a customer favourites an offer,
// carrying an optional personal note. Both ends keep a symmetric set of
// their links.
type FavouriteOffer struct {
	id       string
	note     string
	offer    *Offer
	customer *Customer
}

// NewFavouriteOffer constructs a favourite link wired into both the
// offer's and the customer's sets. An empty note defaults to
// [DefaultFavouriteNote]. Customers cannot favourite their own offers.
func NewFavouriteOffer(note string, offer *Offer, customer *Customer) (*FavouriteOffer, error) {
	if offer == nil {
		return nil, apperr.Structural("FavouriteOffer requires an offer")
	}
	if customer == nil {
		return nil, apperr.Structural("FavouriteOffer requires a customer")
	}
	if owner := offer.Owner(); owner != nil &&
		sameIdentity(owner == customer, owner.ID(), customer.ID()) {
		return nil, apperr.BusinessRule("Customers can't favourite their own offers")
	}
	if note == "" {
		note = DefaultFavouriteNote
	}
	favourite := &FavouriteOffer{note: note, offer: offer, customer: customer}
	if err := offer.AddFavouriteOffer(favourite); err != nil {
		return nil, err
	}
	if err := customer.AddFavouriteOffer(favourite); err != nil {
		offer.RemoveFavouriteOffer(favourite)
		return nil, err
	}
	return favourite, nil
}

// ID returns the persistent identity, or "" before the first save.
func (f *FavouriteOffer) ID() string { return f.id }

func (f *FavouriteOffer) setID(id string) { f.id = id }

// Note returns the personal note on the link.
func (f *FavouriteOffer) Note() string { return f.note }

// SetNote replaces the personal note; an empty note falls back to
// [DefaultFavouriteNote].
func (f *FavouriteOffer) SetNote(note string) {
	if note == "" {
		note = DefaultFavouriteNote
	}
	f.note = note
}

// Offer returns the favourited offer, or nil after detachment.
func (f *FavouriteOffer) Offer() *Offer { return f.offer }

// SetOffer attaches or detaches the favourited offer. A different offer
// while one is recorded is a structural violation; nil detaches the link
// from the offer's set.
func (f *FavouriteOffer) SetOffer(offer *Offer) error {
	current := f.offer

	if offer != nil && current != nil && offer != current {
		return apperr.Structural("FavouriteOffer is attached to another offer")
	}

	if offer == nil {
		if current != nil {
			f.offer = nil
			current.RemoveFavouriteOffer(f)
		}
		return nil
	}

	if current == nil {
		f.offer = offer
		if !offer.HasFavouriteOffer(f) {
			return offer.AddFavouriteOffer(f)
		}
	}
	return nil
}

// Customer returns the favouriting customer, or nil after detachment.
func (f *FavouriteOffer) Customer() *Customer { return f.customer }

// SetCustomer attaches or detaches the favouriting customer, with the
// same ownership rules as [FavouriteOffer.SetOffer].
func (f *FavouriteOffer) SetCustomer(customer *Customer) error {
	current := f.customer

	if customer != nil && current != nil && customer != current {
		return apperr.Structural("FavouriteOffer is attached to another customer")
	}

	if customer == nil {
		if current != nil {
			f.customer = nil
			current.RemoveFavouriteOffer(f)
		}
		return nil
	}

	if current == nil {
		f.customer = customer
		if !customer.HasFavouriteOffer(f) {
			return customer.AddFavouriteOffer(f)
		}
	}
	return nil
}
