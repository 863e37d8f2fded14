// Package sqlite keeps the ingestion ledger in a SQLite database using the
// pure-Go modernc.org/sqlite driver. Schema changes are embedded SQL
// migrations applied on open.
package sqlite
