// Package db embeds the database schema and the default seed data.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// SeedProducts is the default catalog in the seed file format.
//
//go:embed seed/products.json
var SeedProducts []byte
