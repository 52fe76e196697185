// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Postgres storage layer for user account meta-data.

It provides PostgreSQL implementations for managing user profiles, the
customer trading extension, and auditing active sessions.

# Schema Table Mapping
  - users.account: Master identity and profile data.
  - users.customer: 1:1 customer trading profile (birth date, address).
  - users.session: Active device sessions and security metadata.
*/
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/litfair/internal/platform/apperr"
	"github.com/taibuivan/litfair/internal/platform/database/schema"
	"github.com/taibuivan/litfair/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// # AccountRepository Methods

/*
FindByID retrieves a user record from the users.account table.

Description: Joins in the users.customer trading profile when the account
belongs to a customer.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s,
		       c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s
		FROM %s a
		LEFT JOIN %s c ON c.%s = a.%s
		WHERE a.%s = $1 AND a.%s IS NULL`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role, schema.UserAccount.FirstName,
		schema.UserAccount.LastName, schema.UserAccount.IsActive, schema.UserAccount.LastLoginAt,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserCustomer.DateOfBirth, schema.UserCustomer.TelephoneNumber, schema.UserCustomer.Country,
		schema.UserCustomer.City, schema.UserCustomer.Street, schema.UserCustomer.HouseNumber,
		schema.UserCustomer.PostalCode,
		schema.UserAccount.Table,
		schema.UserCustomer.Table, schema.UserCustomer.UserID, schema.UserAccount.ID,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	user := &auth.User{}
	var (
		dateOfBirth *time.Time
		phone       *string
		country     *string
		city        *string
		street      *string
		houseNumber *string
		postalCode  *string
	)

	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&dateOfBirth,
		&phone,
		&country,
		&city,
		&street,
		&houseNumber,
		&postalCode,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	if dateOfBirth != nil {
		user.Profile = &auth.CustomerProfile{UserID: user.ID, DateOfBirth: *dateOfBirth}
		if phone != nil {
			user.Profile.Phone = *phone
		}
		if country != nil {
			user.Profile.Country = *country
		}
		if city != nil {
			user.Profile.City = *city
		}
		if street != nil {
			user.Profile.Street = *street
		}
		if houseNumber != nil {
			user.Profile.HouseNumber = *houseNumber
		}
		if postalCode != nil {
			user.Profile.PostalCode = *postalCode
		}
	}

	return user, nil
}

/*
Update modifies the mutable profile metadata of a user.

Description: This method syncs the FirstName and LastName fields while
refreshing the updatedat timestamp, and upserts the users.customer
trading profile when the account carries one.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Update failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	accountQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	_, err = transaction.Exec(context, accountQuery,
		user.ID,
		user.FirstName,
		user.LastName,
		time.Now(),
	)

	// If the update fails, return an error
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	if user.Profile != nil {
		profileQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (%s) DO UPDATE SET
				%s = EXCLUDED.%s,
				%s = EXCLUDED.%s,
				%s = EXCLUDED.%s,
				%s = EXCLUDED.%s,
				%s = EXCLUDED.%s,
				%s = EXCLUDED.%s,
				%s = EXCLUDED.%s`,
			schema.UserCustomer.Table,
			schema.UserCustomer.UserID, schema.UserCustomer.DateOfBirth, schema.UserCustomer.TelephoneNumber,
			schema.UserCustomer.Country, schema.UserCustomer.City, schema.UserCustomer.Street,
			schema.UserCustomer.HouseNumber, schema.UserCustomer.PostalCode,
			schema.UserCustomer.UserID,
			schema.UserCustomer.DateOfBirth, schema.UserCustomer.DateOfBirth,
			schema.UserCustomer.TelephoneNumber, schema.UserCustomer.TelephoneNumber,
			schema.UserCustomer.Country, schema.UserCustomer.Country,
			schema.UserCustomer.City, schema.UserCustomer.City,
			schema.UserCustomer.Street, schema.UserCustomer.Street,
			schema.UserCustomer.HouseNumber, schema.UserCustomer.HouseNumber,
			schema.UserCustomer.PostalCode, schema.UserCustomer.PostalCode,
		)

		_, err = transaction.Exec(context, profileQuery,
			user.ID,
			user.Profile.DateOfBirth,
			user.Profile.Phone,
			user.Profile.Country,
			user.Profile.City,
			user.Profile.Street,
			user.Profile.HouseNumber,
			user.Profile.PostalCode,
		)
		if err != nil {
			return fmt.Errorf("postgres_account_repo_update_profile_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_account_repo_update_commit_failed: %w", err)
	}

	return nil
}

/*
SoftDelete flags a user account as logically destroyed.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.DeletedAt, schema.UserAccount.ID)
	_, err := repository.pool.Exec(context, query, id)
	return err
}

// # SessionRepository Methods

/*
FindActiveByUserID retrieves all valid device sessions for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []SessionInfo: Collection of active devices
  - error: Database retrieval failures
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()
		ORDER BY %s DESC`,
		schema.UserSession.ID, schema.UserSession.UserAgent, schema.UserSession.IPAddress,
		schema.UserSession.CreatedAt, schema.UserSession.ExpiresAt,
		schema.UserSession.Table,
		schema.UserSession.UserID, schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt,
		schema.UserSession.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_active_failed: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var sess SessionInfo
		var ip interface{}
		if err := rows.Scan(&sess.ID, &sess.DeviceName, &ip, &sess.CreatedAt, &sess.ExpiresAt); err != nil {
			return nil, err
		}
		if ip != nil {
			sess.IPAddress = fmt.Sprintf("%v", ip)
		}
		sessions = append(sessions, sess)
	}

	return sessions, nil
}

/*
Revoke marks a single session as permanently revoked.

Parameters:
  - context: context.Context
  - userID: string (Security: validation of ownership)
  - sessionID: string

Returns:
  - error: Update failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = $2`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.ID, schema.UserSession.UserID)
	_, err := repository.pool.Exec(context, query, sessionID, userID)
	return err
}

/*
RevokeOthers marks all sessions except the current one as revoked.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string

Returns:
  - error: Batch update failures
*/
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s != $2 AND %s = FALSE`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.UserID, schema.UserSession.ID, schema.UserSession.IsRevoked)
	_, err := repository.pool.Exec(context, query, userID, currentSessionID)
	return err
}

/*
RevokeAll terminates every session for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch update failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = FALSE`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.UserID, schema.UserSession.IsRevoked)
	_, err := repository.pool.Exec(context, query, userID)
	return err
}
