// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"strings"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// ContactInfo is the seller contact sheet attached to exactly one offer.
type ContactInfo struct {
	id         string
	email      string
	phone      string
	socialLink string
	offer      *Offer
}

// NewContactInfo constructs a contact record and attaches it to the offer,
// replacing a previously attached one.
func NewContactInfo(email, phone, socialLink string, offer *Offer) (*ContactInfo, error) {
	if offer == nil {
		return nil, apperr.Structural("Contact info requires an offer")
	}
	contact := &ContactInfo{
		email:      email,
		phone:      phone,
		socialLink: socialLink,
		offer:      offer,
	}
	if err := offer.setContactInfo(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ID returns the persistent identity, or "" before the first save.
func (c *ContactInfo) ID() string { return c.id }

func (c *ContactInfo) setID(id string) { c.id = id }

// Email returns the contact email address.
func (c *ContactInfo) Email() string { return c.email }

// SetEmail replaces the contact email address.
func (c *ContactInfo) SetEmail(email string) { c.email = email }

// Phone returns the contact telephone number.
func (c *ContactInfo) Phone() string { return c.phone }

// SetPhone replaces the contact telephone number.
func (c *ContactInfo) SetPhone(phone string) { c.phone = phone }

// SocialLink returns the contact social media link.
func (c *ContactInfo) SocialLink() string { return c.socialLink }

// SetSocialLink replaces the contact social media link.
func (c *ContactInfo) SetSocialLink(link string) { c.socialLink = link }

// Offer returns the offer this contact sheet belongs to.
func (c *ContactInfo) Offer() *Offer { return c.offer }

// Violations returns every invalid attribute of the contact record. At
// least one way of reaching the seller must be present.
func (c *ContactInfo) Violations() []apperr.FieldError {
	var violations []apperr.FieldError
	email := strings.TrimSpace(c.email)
	phone := strings.TrimSpace(c.phone)
	link := strings.TrimSpace(c.socialLink)
	if email == "" && phone == "" && link == "" {
		violations = append(violations, apperr.FieldError{Field: FieldEmail, Message: "At least one contact channel is required"})
	}
	if email != "" && !strings.Contains(email, "@") {
		violations = append(violations, apperr.FieldError{Field: FieldEmail, Message: "Email address is not valid"})
	}
	return violations
}
