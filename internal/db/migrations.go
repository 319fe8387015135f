package db

import (
	"context"
	"fmt"
)

// NormalizeDates rewrites rental dates stored with a time component
// ("2011-01-01 00:00:00 +0000 UTC", "2011-01-01T00:00:00Z") to plain
// YYYY-MM-DD so that range comparisons on the text column stay correct.
func (db *DB) NormalizeDates() error {
	queries := []string{
		`UPDATE rentals
		 SET date = SUBSTR(date, 1, 10)
		 WHERE length(date) > 10`,

		`UPDATE imports
		 SET imported_at = SUBSTR(imported_at, 1, 19)
		 WHERE length(imported_at) > 19 AND imported_at LIKE '% UTC'`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			return fmt.Errorf("failed to normalize dates: %w", err)
		}
	}

	return nil
}
