// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// BookPatch carries the fields which a partial book update may change.
// Absent (nil) fields keep their current values. The availability flag
// is missing intentionally as a partial update may not change it; a
// complete update must be used for that purpose.
type BookPatch struct {
	Title           *string
	Author          *string
	ISBN            *string
	PublicationYear *int
}

// Apply overwrites fields of the b book with the present fields of
// this patch, keeping all absent fields unchanged.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.PublicationYear != nil {
		b.PublicationYear = *p.PublicationYear
	}
}
