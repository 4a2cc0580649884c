// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksuc contains the books UseCase which supports the
// book catalog use cases. Currently, five use cases are supported:
//  1. Adding a book to the catalog,
//  2. Listing all books of the catalog,
//  3. Fetching one book by its identifier,
//  4. Updating a book, either completely or partially,
//  5. Deleting a book.
package booksuc

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/momeni/bookshelf/pkg/core/cerr"
	"github.com/momeni/bookshelf/pkg/core/model"
	"github.com/momeni/bookshelf/pkg/core/repo"
)

// UseCase represents a books use case. It holds a database connection
// pool, the books repository instance (to be guided with the DB pool),
// and the books use case specific settings.
type UseCase struct {
	pool    repo.Pool
	booksrp repo.Books

	now func() time.Time
}

// New instantiates a books use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(p repo.Pool, b repo.Books, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, booksrp: b}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Create use case validates the d draft and adds it to the catalog as
// a new book, taking a fresh identifier. A draft which does not
// address the availability explicitly describes an available book.
// The created book model and possible errors are returned.
func (books *UseCase) Create(ctx context.Context, d model.BookDraft) (book *model.Book, err error) {
	if err = books.validate(d); err != nil {
		return nil, err
	}
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := books.booksrp.Conn(c)
		book, err = q.Save(ctx, d.Book(0))
		return err
	})
	if err != nil {
		book = nil
	}
	return
}

// List use case fetches all books of the catalog in the ascending
// order of their identifiers. In absence of books, an empty non-nil
// slice will be returned.
func (books *UseCase) List(ctx context.Context) (bl []model.Book, err error) {
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := books.booksrp.Conn(c)
		bl, err = q.FindAll(ctx)
		return err
	})
	if err != nil {
		bl = nil
	}
	return
}

// GetByID use case fetches the id book. If no book is identified by
// the id argument, an error reporting that absence is returned.
func (books *UseCase) GetByID(ctx context.Context, id int64) (book *model.Book, err error) {
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := books.booksrp.Conn(c)
		book, err = q.FindByID(ctx, id)
		if cerr.IsNotFound(err) {
			err = notExistErr("fetched", id)
		}
		return err
	})
	if err != nil {
		book = nil
	}
	return
}

// Update use case validates the d draft and overwrites all fields of
// the id book with it, including its availability which is taken as
// true when the draft leaves it absent. The existence check and the
// overwriting update are run in one transaction. The updated book
// model and possible errors are returned.
func (books *UseCase) Update(ctx context.Context, id int64, d model.BookDraft) (book *model.Book, err error) {
	if err = books.validate(d); err != nil {
		return nil, err
	}
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := books.booksrp.Tx(tx)
			ok, err := q.ExistsByID(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return notExistErr("updated", id)
			}
			book, err = q.Save(ctx, d.Book(id))
			return err
		})
	})
	if err != nil {
		book = nil
	}
	return
}

// Patch use case overwrites fields of the id book with the present
// fields of the p patch, keeping absent fields and the availability
// flag unchanged. Only the publication year, when it is present, is
// checked against the business-level rules; other present fields are
// stored as they are given. The fetching and overwriting steps are
// run in one transaction. The patched book model and possible errors
// are returned.
func (books *UseCase) Patch(ctx context.Context, id int64, p model.BookPatch) (book *model.Book, err error) {
	if y := p.PublicationYear; y != nil {
		if err = books.checkPublicationYear(y); err != nil {
			return nil, err
		}
	}
	err = books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := books.booksrp.Tx(tx)
			book, err = q.FindByID(ctx, id)
			if err != nil {
				if cerr.IsNotFound(err) {
					err = notExistErr("patched", id)
				}
				return err
			}
			p.Apply(book)
			book, err = q.Save(ctx, *book)
			return err
		})
	})
	if err != nil {
		book = nil
	}
	return
}

// Delete use case removes the id book from the catalog. The existence
// check and the removal are run in one transaction, so a book which
// exists at the checking time is deleted certainly. Books may be
// deleted independently of their availability.
func (books *UseCase) Delete(ctx context.Context, id int64) error {
	return books.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := books.booksrp.Tx(tx)
			ok, err := q.ExistsByID(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return notExistErr("deleted", id)
			}
			return q.DeleteByID(ctx, id)
		})
	})
}

// validate checks the field-level constraints of the d draft at first
// and its business-level rules thereafter, so a draft with malformed
// fields is reported based on its fields problems even if it breaks
// some business-level rule too.
func (books *UseCase) validate(d model.BookDraft) error {
	if vs := d.Validate(); vs != nil {
		return cerr.BadRequest(vs)
	}
	return books.checkPublicationYear(d.PublicationYear)
}

// checkPublicationYear enforces the publication year business rule,
// that is, a book must have a publication year and it may not fall
// after the current year.
func (books *UseCase) checkPublicationYear(year *int) error {
	if year == nil || *year > books.now().Year() {
		y := "null"
		if year != nil {
			y = strconv.Itoa(*year)
		}
		return cerr.BadRequest(fmt.Errorf(
			"publication year (%s) cannot be null or in the future", y,
		))
	}
	return nil
}

// notExistErr creates a not-found error which names the requested
// book identifier and the operation which may not be applied to it.
func notExistErr(op string, id int64) error {
	return cerr.NotFound(fmt.Errorf(
		"book %d cannot be %s since it does not exist", id, op,
	))
}
