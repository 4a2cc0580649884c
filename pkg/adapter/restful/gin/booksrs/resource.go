// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksrs realizes the books resource, allowing the book
// catalog REST APIs to be accepted and delegated to the
// books use cases respectively.
package booksrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bookshelf/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookshelf/pkg/core/usecase/booksuc"
)

type resource struct {
	books *booksuc.UseCase
}

// Register instantiates a resource adapting the books use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/bsweb/v1/books
//     in order to register a new book,
//  2. GET request to /api/bsweb/v1/books
//     in order to list all registered books,
//  3. GET request to /api/bsweb/v1/books/:id
//     in order to fetch a single book by its identifier,
//  4. PUT request to /api/bsweb/v1/books/:id
//     in order to replace all details of a book,
//  5. PATCH request to /api/bsweb/v1/books/:id
//     in order to update a subset of details of a book, and
//  6. DELETE request to /api/bsweb/v1/books/:id
//     in order to remove a book.
func Register(r *gin.RouterGroup, books *booksuc.UseCase) {
	rs := &resource{books: books}
	r.POST("books", rs.CreateBook)
	r.GET("books", rs.ListBooks)
	r.GET("books/:id", rs.GetBook)
	r.PUT("books/:id", rs.ReplaceBook)
	r.PATCH("books/:id", rs.PatchBook)
	r.DELETE("books/:id", rs.DeleteBook)
}

func (rs *resource) CreateBook(c *gin.Context) {
	draft := rs.DserBookDraftReq(c)
	if draft == nil {
		return
	}
	book, err := rs.books.Create(c, *draft)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (rs *resource) ListBooks(c *gin.Context) {
	books, err := rs.books.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (rs *resource) GetBook(c *gin.Context) {
	id, ok := rs.DserBookIDReq(c)
	if !ok {
		return
	}
	book, err := rs.books.GetByID(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (rs *resource) ReplaceBook(c *gin.Context) {
	id, ok := rs.DserBookIDReq(c)
	if !ok {
		return
	}
	draft := rs.DserBookDraftReq(c)
	if draft == nil {
		return
	}
	book, err := rs.books.Update(c, id, *draft)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (rs *resource) PatchBook(c *gin.Context) {
	id, ok := rs.DserBookIDReq(c)
	if !ok {
		return
	}
	patch := rs.DserBookPatchReq(c)
	if patch == nil {
		return
	}
	book, err := rs.books.Patch(c, id, *patch)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (rs *resource) DeleteBook(c *gin.Context) {
	id, ok := rs.DserBookIDReq(c)
	if !ok {
		return
	}
	if err := rs.books.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
