// Package postgres provides a hosted Postgres CVStore backed by pgx.
//
// The schema is created on construction with CREATE TABLE IF NOT EXISTS;
// there is no separate migration step.
package postgres
