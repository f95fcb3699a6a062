package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"inkwell/internal/resource/validation"
)

// allowedColumns whitelists the (table, column) pairs uniqueness rules may
// reference. Rule expressions are authored in code, but identifiers still
// never reach SQL unchecked.
var allowedColumns = map[string]map[string]bool{
	"posts":      {"slug": true, "title": true},
	"pages":      {"slug": true},
	"webpages":   {"path": true},
	"categories": {"name": true, "slug": true},
	"tags":       {"name": true, "slug": true},
	"users":      {"email": true},
}

var allowedScopeColumns = map[string]map[string]bool{
	"pages": {"type": true},
}

// GormUniquenessChecker answers uniqueness-rule lookups against the live
// database.
type GormUniquenessChecker struct {
	db *gorm.DB
}

func NewUniquenessChecker(db *gorm.DB) validation.UniquenessChecker {
	return &GormUniquenessChecker{db: db}
}

func (c *GormUniquenessChecker) Exists(ctx context.Context, table, column, value string) (bool, error) {
	if !allowedColumns[table][column] {
		return false, fmt.Errorf("uniqueness lookup not allowed for %s.%s", table, column)
	}

	var count int64
	err := c.db.WithContext(ctx).Table(table).
		Where(fmt.Sprintf("%s = ?", column), value).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check uniqueness of %s.%s: %w", table, column, err)
	}

	return count > 0, nil
}

func (c *GormUniquenessChecker) ExistsWithin(ctx context.Context, table, column, value, scopeColumn, scopeValue string) (bool, error) {
	if !allowedColumns[table][column] || !allowedScopeColumns[table][scopeColumn] {
		return false, fmt.Errorf("uniqueness lookup not allowed for %s.%s within %s", table, column, scopeColumn)
	}

	var count int64
	err := c.db.WithContext(ctx).Table(table).
		Where(fmt.Sprintf("%s = ?", column), value).
		Where(fmt.Sprintf("%s = ?", scopeColumn), scopeValue).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check uniqueness of %s.%s: %w", table, column, err)
	}

	return count > 0, nil
}
