// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing_test

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/taibuivan/litfair/internal/core/listing"
)

/*
TestBookCategory_SymmetryProperty drives a random sequence of add/remove
operations from randomly chosen sides and checks after every step that
each book/category pair agrees on membership.
*/
func TestBookCategory_SymmetryProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		books := make([]listing.Book, rapid.IntRange(1, 4).Draw(t, "books"))
		for i := range books {
			details := validDetails()
			details.Name = fmt.Sprintf("Book %d", i)
			books[i] = listing.NewPaperBook(details, 100+i)
		}

		categories := make([]*listing.Category, rapid.IntRange(1, 4).Draw(t, "categories"))
		for i := range categories {
			categories[i] = listing.NewCategory(fmt.Sprintf("Category %d", i))
		}

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for step := 0; step < steps; step++ {
			book := books[rapid.IntRange(0, len(books)-1).Draw(t, "book")]
			category := categories[rapid.IntRange(0, len(categories)-1).Draw(t, "category")]
			fromBookSide := rapid.Bool().Draw(t, "fromBookSide")

			paper := book.(*listing.PaperBook)
			switch {
			case rapid.Bool().Draw(t, "add") && fromBookSide:
				paper.AddCategory(category)
			case fromBookSide:
				paper.RemoveCategory(category)
			case rapid.Bool().Draw(t, "addFromCategory"):
				category.AddBook(book)
			default:
				category.RemoveBook(book)
			}

			for _, b := range books {
				for _, c := range categories {
					left := b.(*listing.PaperBook).HasCategory(c)
					right := c.HasBook(b)
					if left != right {
						t.Fatalf("asymmetric membership: book says %v, category says %v", left, right)
					}
				}
			}
		}
	})
}

/*
TestFavourite_SymmetryProperty drives random attach/detach cycles on a
favourite link and checks both ends stay consistent.
*/
func TestFavourite_SymmetryProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seller := newCustomer("seller")
		fans := []*listing.Customer{newCustomer("fan-a"), newCustomer("fan-b")}
		offer := newRapidOffer(t, seller)

		favourite, err := listing.NewFavouriteOffer("note", offer, fans[0])
		if err != nil {
			t.Fatalf("new favourite: %v", err)
		}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for step := 0; step < steps; step++ {
			if rapid.Bool().Draw(t, "detach") {
				if err := favourite.SetCustomer(nil); err != nil {
					t.Fatalf("detach: %v", err)
				}
			} else {
				fan := fans[rapid.IntRange(0, len(fans)-1).Draw(t, "fan")]
				err := favourite.SetCustomer(fan)
				if favourite.Customer() != nil && favourite.Customer() != fan {
					// Attaching over a different owner must have failed.
					if err == nil {
						t.Fatalf("silent re-parent of favourite link")
					}
				}
			}

			// Both ends agree after every operation.
			current := favourite.Customer()
			for _, fan := range fans {
				has := fan.HasFavouriteOffer(favourite)
				if has != (current == fan) {
					t.Fatalf("asymmetric favourite link for %s", fan.Username())
				}
			}
		}
	})
}

// newRapidOffer mirrors newOffer for property tests, which hold a
// *rapid.T rather than a *testing.T.
func newRapidOffer(t *rapid.T, seller *listing.Customer) *listing.Offer {
	publishing := time.Now().Add(24 * time.Hour)
	offer, err := listing.NewOffer(
		listing.NewPaperBook(validDetails(), 200),
		seller, 100.0, 1,
		listing.PublishStatePublished,
		listing.NewRoleSet(listing.RoleBasic),
		listing.RoleFields{PublishingTime: &publishing},
	)
	if err != nil {
		t.Fatalf("new offer: %v", err)
	}
	return offer
}
