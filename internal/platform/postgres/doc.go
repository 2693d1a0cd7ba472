// Package postgres implements the catalog store interfaces against a
// PostgreSQL database, using raw SQL over database/sql with the pgx
// stdlib driver.
package postgres
