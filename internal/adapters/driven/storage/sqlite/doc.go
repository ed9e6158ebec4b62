// Package sqlite stores the dashboard snapshot in a SQLite database.
//
// modernc.org/sqlite is pure Go, so the binary builds without CGO. Rows are
// scanned into structs with jmoiron/sqlx.
//
// Documents, insights and alerts each get a table. Relevance roles are kept
// as a JSON array column. Save replaces every row of every table in one
// transaction, which keeps the get-all/put-all contract of driven.DataStore.
//
// The schema lives in migrations/ and applied versions are recorded in
// schema_migrations. The database file is compass.db inside the data
// directory (./data unless store.data_dir or --data-dir says otherwise).
package sqlite
