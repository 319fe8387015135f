package models

import "time"

// ImportInfo describes one load of a CSV file into the SQLite cache.
type ImportInfo struct {
	ImportedAt time.Time `json:"imported_at"`
	Source     string    `json:"source"`
	ID         int64     `json:"id"`
	Rows       int       `json:"rows"`
}
