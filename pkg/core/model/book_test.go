// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"strings"
	"testing"

	"github.com/momeni/bookshelf/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func intAddr(i int) *int {
	return &i
}

func boolAddr(b bool) *bool {
	return &b
}

func stringAddr(s string) *string {
	return &s
}

func validDraft() model.BookDraft {
	return model.BookDraft{
		Title:           "The Left Hand of Darkness",
		Author:          "Ursula K. Le Guin",
		ISBN:            "978-0-441-47812-5",
		PublicationYear: intAddr(1969),
		Available:       boolAddr(true),
	}
}

func TestBookDraftValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(d *model.BookDraft)
		fields []string
	}{
		{
			name:   "valid complete draft",
			mutate: func(d *model.BookDraft) {},
		},
		{
			name: "valid minimal draft",
			mutate: func(d *model.BookDraft) {
				d.PublicationYear = nil
				d.Available = nil
			},
		},
		{
			name: "empty title",
			mutate: func(d *model.BookDraft) {
				d.Title = ""
			},
			fields: []string{"title"},
		},
		{
			name: "blank title",
			mutate: func(d *model.BookDraft) {
				d.Title = " \t "
			},
			fields: []string{"title"},
		},
		{
			name: "too long title",
			mutate: func(d *model.BookDraft) {
				d.Title = strings.Repeat("x", model.MaxTitleLen+1)
			},
			fields: []string{"title"},
		},
		{
			name: "longest title",
			mutate: func(d *model.BookDraft) {
				d.Title = strings.Repeat("x", model.MaxTitleLen)
			},
		},
		{
			name: "blank author",
			mutate: func(d *model.BookDraft) {
				d.Author = "  "
			},
			fields: []string{"author"},
		},
		{
			name: "too long author",
			mutate: func(d *model.BookDraft) {
				d.Author = strings.Repeat("y", model.MaxAuthorLen+1)
			},
			fields: []string{"author"},
		},
		{
			name: "blank isbn",
			mutate: func(d *model.BookDraft) {
				d.ISBN = ""
			},
			fields: []string{"isbn"},
		},
		{
			name: "too short isbn",
			mutate: func(d *model.BookDraft) {
				d.ISBN = "044101359"
			},
			fields: []string{"isbn"},
		},
		{
			name: "too long isbn",
			mutate: func(d *model.BookDraft) {
				d.ISBN = "978-0-441-47812-55"
			},
			fields: []string{"isbn"},
		},
		{
			name: "shortest isbn",
			mutate: func(d *model.BookDraft) {
				d.ISBN = "0441013597"
			},
		},
		{
			name: "zero publication year",
			mutate: func(d *model.BookDraft) {
				d.PublicationYear = intAddr(0)
			},
			fields: []string{"publicationYear"},
		},
		{
			name: "negative publication year",
			mutate: func(d *model.BookDraft) {
				d.PublicationYear = intAddr(-5)
			},
			fields: []string{"publicationYear"},
		},
		{
			name: "multiple violations",
			mutate: func(d *model.BookDraft) {
				d.Title = ""
				d.Author = ""
				d.ISBN = "123"
				d.PublicationYear = intAddr(-1)
			},
			fields: []string{
				"title", "author", "isbn", "publicationYear",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			vs := d.Validate()
			if len(tc.fields) == 0 {
				assert.Nil(t, vs, "expected a well-formed draft")
				return
			}
			fields := make([]string, len(vs))
			for i, v := range vs {
				fields[i] = v.Field
				assert.NotEmpty(t, v.Message, "empty violation message")
			}
			assert.Equal(t, tc.fields, fields, "wrong violated fields")
		})
	}
}

func TestBookDraftBook(t *testing.T) {
	t.Run("explicit fields", func(t *testing.T) {
		b := validDraft().Book(42)
		assert.Equal(t, model.Book{
			ID:              42,
			Title:           "The Left Hand of Darkness",
			Author:          "Ursula K. Le Guin",
			ISBN:            "978-0-441-47812-5",
			PublicationYear: 1969,
			Available:       true,
		}, b, "unexpected materialized book")
	})
	t.Run("absent availability means available", func(t *testing.T) {
		d := validDraft()
		d.Available = nil
		assert.True(t, d.Book(1).Available)
	})
	t.Run("explicit unavailability", func(t *testing.T) {
		d := validDraft()
		d.Available = boolAddr(false)
		assert.False(t, d.Book(1).Available)
	})
	t.Run("absent publication year", func(t *testing.T) {
		d := validDraft()
		d.PublicationYear = nil
		assert.Zero(t, d.Book(1).PublicationYear)
	})
}

func TestBookPatchApply(t *testing.T) {
	base := func() model.Book {
		return model.Book{
			ID:              7,
			Title:           "Dune",
			Author:          "Frank Herbert",
			ISBN:            "9780441013593",
			PublicationYear: 1965,
			Available:       true,
		}
	}
	t.Run("empty patch keeps all fields", func(t *testing.T) {
		b := base()
		model.BookPatch{}.Apply(&b)
		assert.Equal(t, base(), b)
	})
	t.Run("partial patch updates present fields", func(t *testing.T) {
		b := base()
		model.BookPatch{
			Title:           stringAddr("Dune Messiah"),
			PublicationYear: intAddr(1969),
		}.Apply(&b)
		want := base()
		want.Title = "Dune Messiah"
		want.PublicationYear = 1969
		assert.Equal(t, want, b)
	})
	t.Run("complete patch updates all fields", func(t *testing.T) {
		b := base()
		model.BookPatch{
			Title:           stringAddr("Children of Dune"),
			Author:          stringAddr("F. Herbert"),
			ISBN:            stringAddr("9780441104024"),
			PublicationYear: intAddr(1976),
		}.Apply(&b)
		assert.Equal(t, model.Book{
			ID:              7,
			Title:           "Children of Dune",
			Author:          "F. Herbert",
			ISBN:            "9780441104024",
			PublicationYear: 1976,
			Available:       true,
		}, b)
	})
}

func TestViolationsError(t *testing.T) {
	d := model.BookDraft{ISBN: "0441013597"}
	vs := d.Validate()
	assert.EqualError(
		t, vs,
		"title: Title must not be blank.; "+
			"author: Author must not be blank.",
	)
}
