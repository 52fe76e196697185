// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"fmt"

	"github.com/taibuivan/litfair/internal/platform/database/schema"
	"github.com/taibuivan/litfair/internal/platform/dberr"
	"github.com/taibuivan/litfair/pkg/uuid"
)

// ListCategories returns all categories ordered by name.
func (repository *PostgresRepository) ListCategories(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogueCategory.ID, schema.CatalogueCategory.Name, schema.CatalogueCategory.Slug,
		schema.CatalogueCategory.Table, schema.CatalogueCategory.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{books: make(map[*bookCore]struct{})}
		if err := rows.Scan(&category.id, &category.name, &category.slug); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// FindCategoryBySlug returns the category with the given slug.
func (repository *PostgresRepository) FindCategoryBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogueCategory.ID, schema.CatalogueCategory.Name, schema.CatalogueCategory.Slug,
		schema.CatalogueCategory.Table, schema.CatalogueCategory.Slug)

	category := &Category{books: make(map[*bookCore]struct{})}
	err := repository.db.QueryRow(context, query, slug).Scan(&category.id, &category.name, &category.slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}
	return category, nil
}

// FindCategoriesByIDs returns the categories matching the given IDs.
func (repository *PostgresRepository) FindCategoriesByIDs(context context.Context, ids []string) ([]*Category, error) {
	if len(ids) == 0 {
		return []*Category{}, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.CatalogueCategory.ID, schema.CatalogueCategory.Name, schema.CatalogueCategory.Slug,
		schema.CatalogueCategory.Table, schema.CatalogueCategory.ID)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories_by_ids")
	}
	defer rows.Close()

	categories := make([]*Category, 0, len(ids))
	for rows.Next() {
		category := &Category{books: make(map[*bookCore]struct{})}
		if err := rows.Scan(&category.id, &category.name, &category.slug); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// CreateCategory persists a new category and assigns its ID.
func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	if category.id == "" {
		category.setID(uuid.New())
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.CatalogueCategory.Table,
		schema.CatalogueCategory.ID, schema.CatalogueCategory.Name, schema.CatalogueCategory.Slug)

	_, err := repository.db.Exec(context, query, category.id, category.name, category.slug)
	return dberr.Wrap(err, "create_category")
}

// DeleteCategory removes a category and its membership links.
func (repository *PostgresRepository) DeleteCategory(context context.Context, id string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_category_tx")
	}
	defer transaction.Rollback(context)

	unlinkQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogueBookCategory.Table, schema.CatalogueBookCategory.CategoryID)
	if _, err := transaction.Exec(context, unlinkQuery, id); err != nil {
		return dberr.Wrap(err, "unlink_category_books")
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogueCategory.Table, schema.CatalogueCategory.ID)
	if _, err := transaction.Exec(context, deleteQuery, id); err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	return transaction.Commit(context)
}
