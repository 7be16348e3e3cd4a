// Package postgres implements the store contracts on a PostgreSQL
// database, accessed through database/sql with the pgx stdlib driver.
// Schema migrations are embedded and applied with goose.
package postgres
