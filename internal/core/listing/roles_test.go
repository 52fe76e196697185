// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/litfair/internal/core/listing"
)

/*
TestRoleSet_String tests the comma-delimited encoding of role sets.
*/
func TestRoleSet_String(t *testing.T) {
	tests := []struct {
		name  string
		set   listing.RoleSet
		want  string
		roles int
	}{
		{"single", listing.NewRoleSet(listing.RoleBasic), "BASIC", 1},
		{"pair", listing.NewRoleSet(listing.RoleBasic, listing.RoleDiscount), "BASIC,DISCOUNT", 2},
		{"all", listing.NewRoleSet(listing.RoleBasic, listing.RoleDiscount, listing.RoleLimitedTime), "BASIC,DISCOUNT,LIMITED_TIME", 3},
		{"empty", listing.RoleSet(0), "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.String())
			assert.Len(t, tt.set.Roles(), tt.roles)
		})
	}
}

/*
TestParseRoleSet tests decoding role sets from their persisted form.
*/
func TestParseRoleSet(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    listing.RoleSet
		wantErr bool
	}{
		{"single", "BASIC", listing.NewRoleSet(listing.RoleBasic), false},
		{"pair", "DISCOUNT,LIMITED_TIME", listing.NewRoleSet(listing.RoleDiscount, listing.RoleLimitedTime), false},
		{"whitespace", " BASIC , DISCOUNT ", listing.NewRoleSet(listing.RoleBasic, listing.RoleDiscount), false},
		{"unknown", "PREMIUM", 0, true},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := listing.ParseRoleSet(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestValidateRoles tests the symmetric presence/absence rules between the
role set and the optional offer fields.
*/
func TestValidateRoles(t *testing.T) {
	now := time.Now()
	discount := 25.0

	tests := []struct {
		name       string
		roles      listing.RoleSet
		fields     listing.RoleFields
		violations int
	}{
		{
			"basic_complete",
			listing.NewRoleSet(listing.RoleBasic),
			listing.RoleFields{PublishingTime: &now},
			0,
		},
		{
			"basic_missing_field",
			listing.NewRoleSet(listing.RoleBasic),
			listing.RoleFields{},
			1,
		},
		{
			"field_without_basic",
			listing.NewRoleSet(listing.RoleDiscount),
			listing.RoleFields{PublishingTime: &now, Discount: &discount},
			1,
		},
		{
			"discount_missing_field",
			listing.NewRoleSet(listing.RoleDiscount),
			listing.RoleFields{},
			1,
		},
		{
			"limited_time_missing_field",
			listing.NewRoleSet(listing.RoleLimitedTime),
			listing.RoleFields{},
			1,
		},
		{
			"field_without_limited_time",
			listing.NewRoleSet(listing.RoleBasic),
			listing.RoleFields{PublishingTime: &now, EndDate: &now},
			1,
		},
		{
			"all_roles_complete",
			listing.NewRoleSet(listing.RoleBasic, listing.RoleDiscount, listing.RoleLimitedTime),
			listing.RoleFields{PublishingTime: &now, Discount: &discount, EndDate: &now},
			0,
		},
		{
			"all_roles_nothing_set",
			listing.NewRoleSet(listing.RoleBasic, listing.RoleDiscount, listing.RoleLimitedTime),
			listing.RoleFields{},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := listing.ValidateRoles(tt.roles, tt.fields)
			assert.Len(t, violations, tt.violations)
		})
	}
}
