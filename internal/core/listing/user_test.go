// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/litfair/internal/core/listing"
	"github.com/taibuivan/litfair/internal/platform/apperr"
)

/*
TestAdministrator_UniqueKey verifies that the staff key is assigned once
and can never be replaced afterwards.
*/
func TestAdministrator_UniqueKey(t *testing.T) {
	admin := listing.NewAdministrator("mod", "hash", "Alex", "Moder", "ADM-0042")
	assert.Equal(t, "ADM-0042", admin.UniqueKey())

	// Re-assigning the same key is idempotent.
	require.NoError(t, admin.SetUniqueKey("ADM-0042"))

	err := admin.SetUniqueKey("ADM-9999")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "STRUCTURAL_VIOLATION"))
	assert.Equal(t, "ADM-0042", admin.UniqueKey())
}

/*
TestAdministrator_Violations verifies that a blank staff key is reported
alongside the shared account checks.
*/
func TestAdministrator_Violations(t *testing.T) {
	admin := listing.NewAdministrator("mod", "hash", "Alex", "Moder", "")

	fields := make([]string, 0, 1)
	for _, violation := range admin.Violations() {
		fields = append(fields, violation.Field)
	}
	assert.Contains(t, fields, "unique_key")
}

/*
TestCustomer_ContactDetails covers the optional contact fields of the
trading profile: the telephone number and the separate house number.
*/
func TestCustomer_ContactDetails(t *testing.T) {
	customer := newCustomer("seller")
	assert.Equal(t, "+49 30 1234567", customer.Phone())

	customer.SetPhone("+49 40 7654321")
	assert.Equal(t, "+49 40 7654321", customer.Phone())

	address := customer.Address()
	address.HouseNumber = "12b"
	customer.SetAddress(address)
	assert.Equal(t, "12b", customer.Address().HouseNumber)

	// A blank house number is legal; the address checks stay unaffected.
	assert.Empty(t, listing.Address{Country: "Germany", PostalCode: "10178"}.Violations())
}
