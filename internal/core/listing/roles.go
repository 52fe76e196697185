// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// # Offer Roles

// Role is an independent, combinable capability of an [Offer]. Each role
// unlocks exactly one optional field and one computed accessor.
type Role uint8

const (
	// RoleBasic carries a scheduled publishing time.
	RoleBasic Role = 1 << iota

	// RoleDiscount carries a discount percentage applied to the price.
	RoleDiscount

	// RoleLimitedTime carries an end date after which the offer expires.
	RoleLimitedTime
)

// roleNames maps each role to its wire/persistence name.
var roleNames = map[Role]string{
	RoleBasic:       "BASIC",
	RoleDiscount:    "DISCOUNT",
	RoleLimitedTime: "LIMITED_TIME",
}

// String returns the canonical name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
}

// # Role Sets

// RoleSet is a small fixed-size flag set of [Role] values.
//
// It is a value type: With and Without return modified copies, so a set
// handed out by an accessor can never mutate the offer it came from.
type RoleSet uint8

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	var set RoleSet
	for _, role := range roles {
		set |= RoleSet(role)
	}
	return set
}

// Has reports whether the set contains the role.
func (s RoleSet) Has(role Role) bool { return s&RoleSet(role) != 0 }

// With returns a copy of the set with the role added.
func (s RoleSet) With(role Role) RoleSet { return s | RoleSet(role) }

// Without returns a copy of the set with the role removed.
func (s RoleSet) Without(role Role) RoleSet { return s &^ RoleSet(role) }

// IsEmpty reports whether the set contains no roles.
func (s RoleSet) IsEmpty() bool { return s == 0 }

// Roles returns the contained roles in declaration order.
func (s RoleSet) Roles() []Role {
	roles := make([]Role, 0, 3)
	for _, role := range []Role{RoleBasic, RoleDiscount, RoleLimitedTime} {
		if s.Has(role) {
			roles = append(roles, role)
		}
	}
	return roles
}

// String encodes the set as a comma-delimited list ("BASIC,DISCOUNT").
// This is the compact multi-valued encoding used by the persistence layer.
func (s RoleSet) String() string {
	names := make([]string, 0, 3)
	for _, role := range s.Roles() {
		names = append(names, role.String())
	}
	return strings.Join(names, ",")
}

// ParseRoleSet decodes a comma-delimited role list produced by [RoleSet.String].
// Unknown role names are rejected.
func ParseRoleSet(encoded string) (RoleSet, error) {
	var set RoleSet
	if strings.TrimSpace(encoded) == "" {
		return set, nil
	}
	for _, name := range strings.Split(encoded, ",") {
		name = strings.TrimSpace(name)
		switch name {
		case "BASIC":
			set = set.With(RoleBasic)
		case "DISCOUNT":
			set = set.With(RoleDiscount)
		case "LIMITED_TIME":
			set = set.With(RoleLimitedTime)
		default:
			return 0, apperr.ValidationError(fmt.Sprintf("Unknown offer role %q", name))
		}
	}
	return set, nil
}

// # Capability Validation

// RoleFields groups the three optional role-gated fields of an [Offer].
// A nil pointer means the field is absent.
type RoleFields struct {
	// PublishingTime is legal iff [RoleBasic] is held.
	PublishingTime *time.Time
	// Discount is a percentage in [0, 100], legal iff [RoleDiscount] is held.
	Discount *float64
	// EndDate is legal iff [RoleLimitedTime] is held.
	EndDate *time.Time
}

// ValidateRoles checks that the optional fields are consistent with the
// declared role set and returns every violation found, never just the first.
//
// For each role the rule is symmetric: a held role requires its field,
// and a field without its role is stale. Role presence is decided by an
// explicit predicate on the set; the gated accessors are not probed.
func ValidateRoles(roles RoleSet, fields RoleFields) []apperr.FieldError {
	var violations []apperr.FieldError

	if roles.Has(RoleBasic) && fields.PublishingTime == nil {
		violations = append(violations, apperr.FieldError{
			Field:   FieldPublishingTime,
			Message: "Publishing time is required for role BASIC",
		})
	}
	if !roles.Has(RoleBasic) && fields.PublishingTime != nil {
		violations = append(violations, apperr.FieldError{
			Field:   FieldPublishingTime,
			Message: "Publishing time must not be set without role BASIC",
		})
	}

	if roles.Has(RoleDiscount) && fields.Discount == nil {
		violations = append(violations, apperr.FieldError{
			Field:   FieldDiscount,
			Message: "Discount is required for role DISCOUNT",
		})
	}
	if !roles.Has(RoleDiscount) && fields.Discount != nil {
		violations = append(violations, apperr.FieldError{
			Field:   FieldDiscount,
			Message: "Discount must not be set without role DISCOUNT",
		})
	}

	if roles.Has(RoleLimitedTime) && fields.EndDate == nil {
		violations = append(violations, apperr.FieldError{
			Field:   FieldEndDate,
			Message: "End date is required for role LIMITED_TIME",
		})
	}
	if !roles.Has(RoleLimitedTime) && fields.EndDate != nil {
		violations = append(violations, apperr.FieldError{
			Field:   FieldEndDate,
			Message: "End date must not be set without role LIMITED_TIME",
		})
	}

	return violations
}
