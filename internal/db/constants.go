package db

// SQL query fragments used across multiple functions
const (
	// sqlDateRangeClause filters rentals to an inclusive day range.
	sqlDateRangeClause = "date >= ? AND date <= ?"

	// sqlDateFormat is the storage format of rentals.date.
	sqlDateFormat = "2006-01-02"

	// sqlTimestampFormat is the storage format of imports.imported_at.
	sqlTimestampFormat = "2006-01-02 15:04:05"
)
