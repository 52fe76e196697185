// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND"},
		{"wrapped_no_rows", errors.Join(errors.New("find_offer"), pgx.ErrNoRows), "NOT_FOUND"},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "book_isbn_idx"}, "CONFLICT"},
		{"other_constraint", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "INTERNAL_ERROR"},
		{"unknown", errors.New("connection reset"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, "test_action")
			require.Error(t, wrapped)
			assert.True(t, apperr.IsCode(wrapped, tt.wantCode))
		})
	}

	t.Run("nil_passthrough", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "test_action"))
	})
}
