// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length limits which are enforced when validating a BookDraft.
// The ISBN length range admits the plain 10 and 13 digits forms in
// addition to the hyphenated forms.
const (
	MaxTitleLen  = 255
	MaxAuthorLen = 100
	MinISBNLen   = 10
	MaxISBNLen   = 17
)

// Book models one book of the catalog which may be persisted in a
// database. The JSON tags specify how it is serialized in the API
// layer responses. For the corresponding struct which is stored in
// the database, see the unexported gBook struct in the
// pkg/adapter/db/postgres/booksrp/query.go file.
type Book struct {
	ID              int64  `json:"id"`              // catalog-assigned identifier
	Title           string `json:"title"`           // title of the book
	Author          string `json:"author"`          // author full name
	ISBN            string `json:"isbn"`            // with or without hyphens
	PublicationYear int    `json:"publicationYear"` // Gregorian year
	Available       bool   `json:"available"`       // false while on loan
}

// BookDraft carries the user provided fields of a book which is going
// to be created or which should overwrite an existing book completely.
// Fields which may be absent in a request are declared as pointers,
// so their absence can be distinguished from their zero values.
// The Validate method checks the field-level constraints alone, while
// the business-level rules (such as the publication year recency)
// belong to the use cases layer.
type BookDraft struct {
	Title           string
	Author          string
	ISBN            string
	PublicationYear *int
	Available       *bool
}

// Validate checks the field-level constraints of this draft and
// returns all detected violations instead of reporting only the first
// detectable problem. A nil Violations instance indicates that the
// draft is well-formed. The publication year is only checked for
// positiveness when it is present because its presence requirement
// is a business-level rule.
func (d BookDraft) Validate() Violations {
	var vs Violations
	switch n := utf8.RuneCountInString(d.Title); {
	case strings.TrimSpace(d.Title) == "":
		vs.add("title", "Title must not be blank.")
	case n > MaxTitleLen:
		vs.add("title", fmt.Sprintf(
			"Title must not exceed %d characters.", MaxTitleLen,
		))
	}
	switch n := utf8.RuneCountInString(d.Author); {
	case strings.TrimSpace(d.Author) == "":
		vs.add("author", "Author must not be blank.")
	case n > MaxAuthorLen:
		vs.add("author", fmt.Sprintf(
			"Author must not exceed %d characters.", MaxAuthorLen,
		))
	}
	switch n := utf8.RuneCountInString(d.ISBN); {
	case strings.TrimSpace(d.ISBN) == "":
		vs.add("isbn", "ISBN must not be blank.")
	case n < MinISBNLen || n > MaxISBNLen:
		vs.add("isbn", fmt.Sprintf(
			"ISBN must have between %d and %d characters.",
			MinISBNLen, MaxISBNLen,
		))
	}
	if y := d.PublicationYear; y != nil && *y <= 0 {
		vs.add("publicationYear", "Publication year must be positive.")
	}
	if len(vs) == 0 {
		return nil
	}
	return vs
}

// Book materializes this draft as a complete Book model, taking the
// id argument as the book identifier. A draft which does not address
// the availability explicitly describes an available book.
func (d BookDraft) Book(id int64) Book {
	b := Book{
		ID:     id,
		Title:  d.Title,
		Author: d.Author,
		ISBN:   d.ISBN,
	}
	if y := d.PublicationYear; y != nil {
		b.PublicationYear = *y
	}
	b.Available = d.Available == nil || *d.Available
	return b
}
