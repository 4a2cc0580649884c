// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package booksrp

import (
	"context"
	"fmt"

	"github.com/momeni/bookshelf/pkg/adapter/db/postgres"
	"github.com/momeni/bookshelf/pkg/core/repo"
)

// Initializer creates the books table in the target database schema
// and optionally fills it with the development suitable initial data
// rows. It implements the repo.SchemaInitializer interface, wrapping
// a database transaction, so all of its operations either persist or
// roll back together.
type Initializer struct {
	tx *postgres.Tx
}

// NewInitializer creates an Initializer instance, wrapping the given
// `tx` transaction. The tx must belong to a connection which was
// established by a role having the CREATE privilege on the target
// schema, with its search_path set to that schema alone.
func NewInitializer(tx repo.Tx) *Initializer {
	tt := tx.(*postgres.Tx)
	return &Initializer{tx: tt}
}

// InitDevSchema creates the books table and fills it with a small
// number of well-known books, so a development deployment may serve
// non-trivial responses right away.
func (ini *Initializer) InitDevSchema(ctx context.Context) error {
	if err := ini.createTables(ctx); err != nil {
		return err
	}
	_, err := ini.tx.Exec(ctx, `
INSERT INTO books (title, author, isbn, publication_year, available)
    VALUES ('The Hobbit', 'J. R. R. Tolkien',
            '9780547928227', 1937, TRUE),
           ('Foundation', 'Isaac Asimov',
            '9780553293357', 1951, TRUE),
           ('Neuromancer', 'William Gibson',
            '9780441569595', 1984, FALSE)`,
	)
	if err != nil {
		return fmt.Errorf("inserting dev books: %w", err)
	}
	return nil
}

// InitProdSchema creates the books table without any initial data
// rows, as a production catalog starts empty.
func (ini *Initializer) InitProdSchema(ctx context.Context) error {
	return ini.createTables(ctx)
}

func (ini *Initializer) createTables(ctx context.Context) error {
	_, err := ini.tx.Exec(ctx, `
CREATE TABLE books (
    id BIGSERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    author VARCHAR(100) NOT NULL,
    isbn VARCHAR(17) NOT NULL,
    publication_year INTEGER NOT NULL,
    available BOOLEAN NOT NULL DEFAULT TRUE
)`,
	)
	if err != nil {
		return fmt.Errorf("creating books table: %w", err)
	}
	return nil
}
