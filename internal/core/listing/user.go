// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"strings"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// UserRole separates the two kinds of accounts on the platform.
type UserRole string

const (
	UserRoleCustomer      UserRole = "customer"
	UserRoleAdministrator UserRole = "administrator"
)

// User is an account on the platform, either a [Customer] or an
// [Administrator].
type User interface {
	Role() UserRole
	userCore() *userAccount
}

// userAccount holds the fields every account shares.
type userAccount struct {
	id           string
	username     string
	passwordHash string
	firstName    string
	lastName     string
}

func (u *userAccount) userCore() *userAccount { return u }

// ID returns the persistent identity, or "" before the first save.
func (u *userAccount) ID() string { return u.id }

func (u *userAccount) setID(id string) { u.id = id }

// Username returns the unique login name.
func (u *userAccount) Username() string { return u.username }

// SetUsername replaces the login name.
func (u *userAccount) SetUsername(username string) { u.username = username }

// PasswordHash returns the stored password hash.
func (u *userAccount) PasswordHash() string { return u.passwordHash }

// SetPasswordHash replaces the stored password hash.
func (u *userAccount) SetPasswordHash(hash string) { u.passwordHash = hash }

// FirstName returns the account holder's first name.
func (u *userAccount) FirstName() string { return u.firstName }

// SetFirstName replaces the first name.
func (u *userAccount) SetFirstName(name string) { u.firstName = name }

// LastName returns the account holder's last name.
func (u *userAccount) LastName() string { return u.lastName }

// SetLastName replaces the last name.
func (u *userAccount) SetLastName(name string) { u.lastName = name }

func (u *userAccount) accountViolations() []apperr.FieldError {
	var violations []apperr.FieldError
	if strings.TrimSpace(u.username) == "" {
		violations = append(violations, apperr.FieldError{Field: "username", Message: "Username can't be blank"})
	}
	if strings.TrimSpace(u.firstName) == "" {
		violations = append(violations, apperr.FieldError{Field: "first_name", Message: "First name can't be blank"})
	}
	if strings.TrimSpace(u.lastName) == "" {
		violations = append(violations, apperr.FieldError{Field: "last_name", Message: "Last name can't be blank"})
	}
	return violations
}

// Administrator is a staff account; it moderates offers but owns none.
// Every administrator carries a unique staff key assigned at creation.
type Administrator struct {
	userAccount
	uniqueKey string
}

// NewAdministrator constructs an administrator account with its staff key.
func NewAdministrator(username, passwordHash, firstName, lastName, uniqueKey string) *Administrator {
	return &Administrator{
		userAccount: userAccount{
			username:     username,
			passwordHash: passwordHash,
			firstName:    firstName,
			lastName:     lastName,
		},
		uniqueKey: uniqueKey,
	}
}

// Role identifies the account as an administrator.
func (a *Administrator) Role() UserRole { return UserRoleAdministrator }

// UniqueKey returns the staff key identifying the administrator.
func (a *Administrator) UniqueKey() string { return a.uniqueKey }

// SetUniqueKey assigns the staff key to an account that does not hold one
// yet. Replacing an assigned key is a structural violation.
func (a *Administrator) SetUniqueKey(key string) error {
	if a.uniqueKey != "" && a.uniqueKey != key {
		return apperr.Structural("Administrator key can't be changed")
	}
	a.uniqueKey = key
	return nil
}

// Violations returns every invalid attribute of the account.
func (a *Administrator) Violations() []apperr.FieldError {
	violations := a.accountViolations()
	if strings.TrimSpace(a.uniqueKey) == "" {
		violations = append(violations, apperr.FieldError{Field: "unique_key", Message: "Administrator key can't be blank"})
	}
	return violations
}
