// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/litfair/internal/platform/apperr"
	"github.com/taibuivan/litfair/internal/platform/sec"
	"github.com/taibuivan/litfair/internal/users/auth"
	"github.com/taibuivan/litfair/pkg/pointer"
)

// fakeAccountRepository keeps a single user in memory and records updates.
type fakeAccountRepository struct {
	user        *auth.User
	updated     *auth.User
	softDeleted []string
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, apperr.NotFound("Account")
	}
	clone := *f.user
	if f.user.Profile != nil {
		profile := *f.user.Profile
		clone.Profile = &profile
	}
	return &clone, nil
}

func (f *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	f.updated = user
	return nil
}

func (f *fakeAccountRepository) SoftDelete(_ context.Context, id string) error {
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

type fakeSessionRepository struct {
	revokedAll    []string
	revoked       [][2]string
	revokedOthers [][2]string
	active        []SessionInfo
}

func (f *fakeSessionRepository) FindActiveByUserID(_ context.Context, _ string) ([]SessionInfo, error) {
	return f.active, nil
}

func (f *fakeSessionRepository) Revoke(_ context.Context, userID, sessionID string) error {
	f.revoked = append(f.revoked, [2]string{userID, sessionID})
	return nil
}

func (f *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	f.revokedOthers = append(f.revokedOthers, [2]string{userID, currentSessionID})
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	f.revokedAll = append(f.revokedAll, userID)
	return nil
}

func newTestService(accountRepo *fakeAccountRepository, sessionRepo *fakeSessionRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(accountRepo, sessionRepo, logger)
}

func customerUser() *auth.User {
	return &auth.User{
		ID:        "user-1",
		Username:  "reader",
		Email:     "reader@litfair.com",
		FirstName: "Ada",
		LastName:  "Reader",
		Role:      sec.RoleCustomer,
		IsActive:  true,
		Profile: &auth.CustomerProfile{
			UserID:      "user-1",
			DateOfBirth: time.Date(1990, time.March, 12, 0, 0, 0, 0, time.UTC),
			Phone:       "+49 30 555001",
			Country:     "Germany",
			City:        "Berlin",
			Street:      "Bookstrasse",
			HouseNumber: "1",
			PostalCode:  "10115",
		},
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	accountRepo := &fakeAccountRepository{user: customerUser()}
	service := newTestService(accountRepo, &fakeSessionRepository{})

	updated, err := service.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{
		FirstName: pointer.To("Grace"),
		City:      pointer.To("Hamburg"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, "Reader", updated.LastName, "untouched fields must survive")
	assert.Equal(t, "Hamburg", updated.Profile.City)
	assert.Equal(t, "Germany", updated.Profile.Country)
	require.NotNil(t, accountRepo.updated, "change must be persisted")
}

func TestUpdateProfile_ContactFields(t *testing.T) {
	accountRepo := &fakeAccountRepository{user: customerUser()}
	service := newTestService(accountRepo, &fakeSessionRepository{})

	updated, err := service.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{
		Phone:       pointer.To("+49 40 777002"),
		HouseNumber: pointer.To("23a"),
	})
	require.NoError(t, err)

	assert.Equal(t, "+49 40 777002", updated.Profile.Phone)
	assert.Equal(t, "23a", updated.Profile.HouseNumber)
	assert.Equal(t, "Bookstrasse", updated.Profile.Street, "untouched fields must survive")
	require.NotNil(t, accountRepo.updated)
}

func TestUpdateProfile_RejectsFutureBirthDate(t *testing.T) {
	accountRepo := &fakeAccountRepository{user: customerUser()}
	service := newTestService(accountRepo, &fakeSessionRepository{})

	_, err := service.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{
		DateOfBirth: pointer.To(time.Now().Add(24 * time.Hour)),
	})
	require.Error(t, err)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Nil(t, accountRepo.updated)
}

func TestUpdateProfile_AddressRequiresTradingProfile(t *testing.T) {
	user := customerUser()
	user.Profile = nil
	accountRepo := &fakeAccountRepository{user: user}
	service := newTestService(accountRepo, &fakeSessionRepository{})

	_, err := service.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{
		Street: pointer.To("New Street 5"),
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "BUSINESS_RULE_VIOLATION", appError.Code)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	service := newTestService(&fakeAccountRepository{}, &fakeSessionRepository{})

	_, err := service.UpdateProfile(context.Background(), "ghost", UpdateProfileInput{
		FirstName: pointer.To("Nobody"),
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestDeleteAccount_RevokesAllSessions(t *testing.T) {
	accountRepo := &fakeAccountRepository{user: customerUser()}
	sessionRepo := &fakeSessionRepository{}
	service := newTestService(accountRepo, sessionRepo)

	require.NoError(t, service.DeleteAccount(context.Background(), "user-1"))

	assert.Equal(t, []string{"user-1"}, accountRepo.softDeleted)
	assert.Equal(t, []string{"user-1"}, sessionRepo.revokedAll)
}

func TestRevokeSession_PassesOwnership(t *testing.T) {
	sessionRepo := &fakeSessionRepository{}
	service := newTestService(&fakeAccountRepository{}, sessionRepo)

	require.NoError(t, service.RevokeSession(context.Background(), "user-1", "session-9"))
	require.Len(t, sessionRepo.revoked, 1)
	assert.Equal(t, [2]string{"user-1", "session-9"}, sessionRepo.revoked[0])
}
