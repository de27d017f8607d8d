// Package schema probes the database catalog at startup for optional
// columns. Deployments migrated at different times may lack the newer
// review-tracking columns; feature code consults the cached descriptor
// instead of failing mid-request.
package schema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Column identifies a table column.
type Column struct {
	Table  string
	Column string
}

// Optional lists the columns whose absence the application tolerates.
var Optional = []Column{
	{Table: "applications", Column: "reviewed_by"},
	{Table: "applications", Column: "reviewed_at"},
	{Table: "applications", Column: "review_note"},
	{Table: "reviews", Column: "approved"},
}

// Capabilities is an immutable snapshot of which optional columns exist.
type Capabilities struct {
	present map[Column]bool
}

// Has reports whether the column existed when the snapshot was taken.
func (c *Capabilities) Has(table, column string) bool {
	return c.present[Column{Table: table, Column: column}]
}

// HasApplicationReviewTracking reports whether the full set of
// application review-audit columns is available.
func (c *Capabilities) HasApplicationReviewTracking() bool {
	return c.Has("applications", "reviewed_by") &&
		c.Has("applications", "reviewed_at") &&
		c.Has("applications", "review_note")
}

// HasReviewApproval reports whether review moderation is available.
func (c *Capabilities) HasReviewApproval() bool {
	return c.Has("reviews", "approved")
}

// FromColumns builds a descriptor from a fixed column list. Intended for
// tests and for drivers without an information_schema.
func FromColumns(cols []Column) *Capabilities {
	present := make(map[Column]bool, len(cols))
	for _, col := range cols {
		present[col] = true
	}
	return &Capabilities{present: present}
}

// Discover probes information_schema for every optional column once.
func Discover(ctx context.Context, db *sqlx.DB, logger *slog.Logger) (*Capabilities, error) {
	present := make(map[Column]bool, len(Optional))

	for _, col := range Optional {
		var count int
		query := db.Rebind(`
			SELECT COUNT(*) FROM information_schema.columns
			WHERE table_name = ? AND column_name = ?`)
		if err := db.GetContext(ctx, &count, query, col.Table, col.Column); err != nil {
			return nil, fmt.Errorf("probe column %s.%s: %w", col.Table, col.Column, err)
		}
		present[col] = count > 0
		if count == 0 {
			logger.Warn("optional column missing, related feature degraded",
				"table", col.Table, "column", col.Column)
		}
	}

	return &Capabilities{present: present}, nil
}
