// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema is an internal helper for the integration test
// suites, verifying the database schema (tables and their columns)
// and its initial contents after a database initialization operation.
// Verifications consider the expected rows presence and can be used
// after a direct database initialization because only then, the
// inserted contents can be guessed unambiguously.
package schema

import (
	"context"
	"testing"

	"github.com/momeni/bookshelf/pkg/core/repo"
	"github.com/stretchr/testify/assert"
)

// Verifier wraps a database connection in order to verify the books
// schema and its contents.
type Verifier struct {
	c repo.Conn
}

// New creates a Verifier instance wrapping the `c` connection.
func New(c repo.Conn) Verifier {
	return Verifier{c: c}
}

// bookRow represents one books table row, ignoring the id column.
type bookRow struct {
	Title, Author, ISBN string
	PublicationYear     int
	Available           bool
}

// VerifySchema verifies the books table and its columns using the
// wrapped database connection.
// The `t` argument is marked as failed if the schema was invalid.
// The schema contents (i.e., existing rows) are not checked.
func (v Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	rows, err := v.c.Query(
		ctx, `SELECT column_name, data_type
FROM information_schema.columns
WHERE table_schema='bsweb' AND table_name='books'`,
	)
	if !assert.NoError(t, err, "cannot query books columns") {
		return
	}
	defer rows.Close()
	colTypes := make(map[string]string)
	for rows.Next() {
		var column, dataType string
		err = rows.Scan(&column, &dataType)
		if !assert.NoError(t, err, "cannot scan a columns row") {
			return
		}
		colTypes[column] = dataType
	}
	if !assert.NoError(t, rows.Err(), "iterating over columns rows") {
		return
	}
	assert.Equal(
		t,
		map[string]string{
			"id":               "bigint",
			"title":            "character varying",
			"author":           "character varying",
			"isbn":             "character varying",
			"publication_year": "integer",
			"available":        "boolean",
		},
		colTypes,
		"unexpected books table columns",
	)
}

// VerifyDevData verifies the schema contents assuming that the
// development suitable data items were inserted there. Only presence
// of development data and not the absence of extra data rows will be
// checked.
func (v Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	books := v.fetchBooks(ctx, t)
	for _, want := range []bookRow{
		{
			Title:           "The Hobbit",
			Author:          "J. R. R. Tolkien",
			ISBN:            "9780547928227",
			PublicationYear: 1937,
			Available:       true,
		},
		{
			Title:           "Foundation",
			Author:          "Isaac Asimov",
			ISBN:            "9780553293357",
			PublicationYear: 1951,
			Available:       true,
		},
		{
			Title:           "Neuromancer",
			Author:          "William Gibson",
			ISBN:            "9780441569595",
			PublicationYear: 1984,
			Available:       false,
		},
	} {
		assert.Contains(t, books, want, "missing dev books row")
	}
}

// VerifyProdData verifies the schema contents assuming that a
// production suitable initialization was performed, that is, the
// books table must be present with no initial data rows.
func (v Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	books := v.fetchBooks(ctx, t)
	assert.Empty(t, books, "unexpected initial books rows")
}

func (v Verifier) fetchBooks(
	ctx context.Context, t *testing.T,
) []bookRow {
	rows, err := v.c.Query(
		ctx, `SELECT title, author, isbn, publication_year, available
FROM bsweb.books`,
	)
	if !assert.NoError(t, err, "cannot query books table") {
		return nil
	}
	defer rows.Close()
	var books []bookRow
	for rows.Next() {
		var b bookRow
		err = rows.Scan(
			&b.Title, &b.Author, &b.ISBN,
			&b.PublicationYear, &b.Available,
		)
		if !assert.NoError(t, err, "cannot scan a books row") {
			return nil
		}
		books = append(books, b)
	}
	assert.NoError(t, rows.Err(), "iterating over books rows")
	return books
}
