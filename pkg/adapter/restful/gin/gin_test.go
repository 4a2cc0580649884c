// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/momeni/bookshelf/internal/test/dbcontainer"
	"github.com/momeni/bookshelf/pkg/adapter/db/postgres"
	"github.com/momeni/bookshelf/pkg/adapter/restful/gin"
	"github.com/momeni/bookshelf/pkg/adapter/restful/gin/routes"
	"github.com/momeni/bookshelf/pkg/core/model"
	"github.com/momeni/bookshelf/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	sql, err := os.ReadFile("testdata/schema.sql")
	igts.Require().NoError(err, "failed to read schema.sql file")
	err = igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			_, err := c.Exec(ctx, string(sql))
			return err
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Gin, igts.Pool)
	igts.Require().NoError(err, "failed to register Gin routes")
}

func stringAddr(s string) *string {
	return &s
}

func (igts *IntegrationGinTestSuite) jsonBody(
	m map[string]any,
) io.Reader {
	b, err := json.Marshal(m)
	igts.Require().NoError(err, "cannot marshal request body")
	return bytes.NewReader(b)
}

// bookPayload returns a request body mapping for a well-formed book,
// applying the given overrides. A nil override value drops its key, so
// the effect of an absent field can be examined too.
func bookPayload(overrides map[string]any) map[string]any {
	m := map[string]any{
		"title":           "The Dispossessed",
		"author":          "Ursula K. Le Guin",
		"isbn":            "9780061054884",
		"publicationYear": 1974,
	}
	for k, v := range overrides {
		if v == nil {
			delete(m, k)
		} else {
			m[k] = v
		}
	}
	return m
}

func (igts *IntegrationGinTestSuite) TestBadRequest() {
	for _, tc := range []struct {
		name         string
		method, path string
		body         io.Reader
		detail       *string
		title        *string
		author       *string
		isbn         *string
		year         *string
		id           *string
	}{
		{
			name:   "no body",
			method: http.MethodPost,
			path:   "books",
			detail: stringAddr("invalid request"),
		},
		{
			name:   "malformed json",
			method: http.MethodPost,
			path:   "books",
			body:   strings.NewReader("{"),
			detail: stringAddr("unexpected EOF"),
		},
		{
			name:   "empty object",
			method: http.MethodPost,
			path:   "books",
			body:   igts.jsonBody(map[string]any{}),
			title:  stringAddr("Title must not be blank."),
			author: stringAddr("Author must not be blank."),
			isbn:   stringAddr("ISBN must not be blank."),
		},
		{
			name:   "blank title",
			method: http.MethodPost,
			path:   "books",
			body: igts.jsonBody(bookPayload(map[string]any{
				"title": "   ",
			})),
			title: stringAddr("Title must not be blank."),
		},
		{
			name:   "overlong title",
			method: http.MethodPost,
			path:   "books",
			body: igts.jsonBody(bookPayload(map[string]any{
				"title": strings.Repeat("t", 256),
			})),
			title: stringAddr("Title must not exceed 255 characters."),
		},
		{
			name:   "blank author",
			method: http.MethodPost,
			path:   "books",
			body: igts.jsonBody(bookPayload(map[string]any{
				"author": "",
			})),
			author: stringAddr("Author must not be blank."),
		},
		{
			name:   "short isbn",
			method: http.MethodPost,
			path:   "books",
			body: igts.jsonBody(bookPayload(map[string]any{
				"isbn": "12345",
			})),
			isbn: stringAddr(
				"ISBN must have between 10 and 17 characters.",
			),
		},
		{
			name:   "non-positive publication year",
			method: http.MethodPost,
			path:   "books",
			body: igts.jsonBody(bookPayload(map[string]any{
				"publicationYear": -5,
			})),
			year: stringAddr("Publication year must be positive."),
		},
		{
			name:   "missing publication year",
			method: http.MethodPost,
			path:   "books",
			body: igts.jsonBody(bookPayload(map[string]any{
				"publicationYear": nil,
			})),
			detail: stringAddr(
				"publication year (null) cannot be null or in the future",
			),
		},
		{
			name:   "future publication year",
			method: http.MethodPost,
			path:   "books",
			body: igts.jsonBody(bookPayload(map[string]any{
				"publicationYear": 2987,
			})),
			detail: stringAddr(
				"publication year (2987) cannot be null or in the future",
			),
		},
		{
			name:   "patched future publication year",
			method: http.MethodPatch,
			path:   "books/987654",
			body: igts.jsonBody(map[string]any{
				"publicationYear": 2987,
			}),
			detail: stringAddr(
				"publication year (2987) cannot be null or in the future",
			),
		},
		{
			name:   "zero id",
			method: http.MethodPut,
			path:   "books/0",
			id:     stringAddr("failed on the 'required' tag"),
		},
		{
			name:   "negative id",
			method: http.MethodDelete,
			path:   "books/-7",
			id:     stringAddr("failed on the 'min' tag"),
		},
		{
			name:   "non-integer id",
			method: http.MethodGet,
			path:   "books/dune",
			detail: stringAddr("invalid syntax"),
		},
	} {
		igts.Run(tc.name, func() {
			w := httptest.NewRecorder()
			req, err := http.NewRequest(
				tc.method, "/api/bsweb/v1/"+tc.path, tc.body,
			)
			igts.Require().NoError(
				err, "cannot create "+tc.method+" request",
			)

			res := &struct {
				Detail          string
				Title           []string
				Author          []string
				ISBN            []string
				PublicationYear []string
				ID              []string
			}{}
			igts.sendReqRecvResp(w, req, res)

			igts.Equal(400, w.Code)
			if tc.detail != nil {
				igts.Contains(res.Detail, *tc.detail, "wrong detail")
			}
			igts.assertOptContains(tc.title, res.Title, "wrong title")
			igts.assertOptContains(tc.author, res.Author, "wrong author")
			igts.assertOptContains(tc.isbn, res.ISBN, "wrong isbn")
			igts.assertOptContains(
				tc.year, res.PublicationYear, "wrong publicationYear",
			)
			igts.assertOptContains(tc.id, res.ID, "wrong id")
		})
	}
}

func (igts *IntegrationGinTestSuite) sendReqRecvResp(
	w *httptest.ResponseRecorder, req *http.Request, res any,
) {
	req.Header.Add("Content-Type", "application/json")
	igts.Gin.ServeHTTP(w, req)
	b := w.Body.Bytes()
	igts.NoError(json.Unmarshal(b, res), "body is not json")
}

func (igts *IntegrationGinTestSuite) assertOptContains(
	expectedPart *string, seen []string, msgAndArgs ...any,
) bool {
	if expectedPart == nil {
		return true
	}
	if !igts.Equal(1, len(seen), msgAndArgs...) {
		return false
	}
	return igts.Contains(seen[0], *expectedPart, msgAndArgs...)
}

func (igts *IntegrationGinTestSuite) sendBookReq(
	method, path string, body io.Reader,
) (*httptest.ResponseRecorder, *model.Book) {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, body)
	igts.Require().NoError(err, "cannot create "+method+" request")
	res := &model.Book{}
	igts.sendReqRecvResp(w, req, res)
	return w, res
}

func (igts *IntegrationGinTestSuite) TestBookLifecycle() {
	w, book := igts.sendBookReq(
		http.MethodPost, "/api/bsweb/v1/books",
		igts.jsonBody(map[string]any{
			"title":           "Dune",
			"author":          "Frank Herbert",
			"isbn":            "9780441013593",
			"publicationYear": 1965,
		}),
	)
	igts.Require().Equal(201, w.Code, "cannot register a book")
	igts.Require().NotZero(book.ID, "a fresh id must be assigned")
	igts.Equal(model.Book{
		ID:              book.ID,
		Title:           "Dune",
		Author:          "Frank Herbert",
		ISBN:            "9780441013593",
		PublicationYear: 1965,
		Available:       true,
	}, *book, "unexpected created book")
	path := fmt.Sprintf("/api/bsweb/v1/books/%d", book.ID)

	w, fetched := igts.sendBookReq(http.MethodGet, path, nil)
	igts.Equal(200, w.Code)
	igts.Equal(book, fetched, "fetched book must match the created one")

	w, patched := igts.sendBookReq(
		http.MethodPatch, path,
		igts.jsonBody(map[string]any{"available": false}),
	)
	igts.Equal(200, w.Code)
	igts.True(patched.Available, "patch must not affect availability")

	w, replaced := igts.sendBookReq(
		http.MethodPut, path,
		igts.jsonBody(map[string]any{
			"title":           "Dune",
			"author":          "Frank Herbert",
			"isbn":            "9780441013593",
			"publicationYear": 1965,
			"available":       false,
		}),
	)
	igts.Equal(200, w.Code)
	igts.False(replaced.Available, "put must replace availability")

	w, patched = igts.sendBookReq(
		http.MethodPatch, path,
		igts.jsonBody(map[string]any{
			"title":           "Dune Messiah",
			"publicationYear": 1969,
		}),
	)
	igts.Equal(200, w.Code)
	igts.Equal(model.Book{
		ID:              book.ID,
		Title:           "Dune Messiah",
		Author:          "Frank Herbert",
		ISBN:            "9780441013593",
		PublicationYear: 1969,
		Available:       false,
	}, *patched, "unexpected patched book")

	w, replaced = igts.sendBookReq(
		http.MethodPut, path,
		igts.jsonBody(map[string]any{
			"title":           "Dune",
			"author":          "Frank Herbert",
			"isbn":            "9780441013593",
			"publicationYear": 1965,
		}),
	)
	igts.Equal(200, w.Code)
	igts.True(
		replaced.Available,
		"an absent availability must reset to available",
	)

	w = httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodDelete, path, nil)
	igts.Require().NoError(err, "cannot create DELETE request")
	igts.Gin.ServeHTTP(w, req)
	igts.Equal(204, w.Code)
	igts.Empty(w.Body.Bytes(), "deletion reports no body")

	w, _ = igts.sendBookReq(http.MethodGet, path, nil)
	igts.Equal(404, w.Code, "deleted book must not be fetchable")
}

func (igts *IntegrationGinTestSuite) TestEmptyCatalog() {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodGet, "/api/bsweb/v1/books", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	igts.Gin.ServeHTTP(w, req)

	igts.Equal(200, w.Code)
	igts.Equal(
		"[]", w.Body.String(),
		"an empty catalog must serialize as an empty array",
	)
}

func (igts *IntegrationGinTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodGet, "/api/bsweb/v1/health", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")

	res := &struct {
		Status string
	}{}
	igts.sendReqRecvResp(w, req, res)

	igts.Equal(200, w.Code)
	igts.Equal("ok", res.Status, "wrong health status")
}

func (igts *IntegrationGinTestSuite) createBook(b *model.Book) (
	int64, error,
) {
	var id int64
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			rows, err := c.Query(
				ctx,
				`INSERT INTO books(
    title, author, isbn, publication_year, available
) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				b.Title, b.Author, b.ISBN,
				b.PublicationYear, b.Available,
			)
			if err != nil {
				return err
			}
			defer rows.Close()
			if !rows.Next() {
				return rows.Err()
			}
			if err := rows.Scan(&id); err != nil {
				return err
			}
			return rows.Err()
		},
	)
	if err == nil && id == 0 {
		err = fmt.Errorf("tried to INSERT one book")
	}
	return id, err
}

func (igts *IntegrationGinTestSuite) TestListBooks() {
	first, err := igts.createBook(&model.Book{
		Title:           "The Left Hand of Darkness",
		Author:          "Ursula K. Le Guin",
		ISBN:            "9780441478125",
		PublicationYear: 1969,
		Available:       true,
	})
	igts.Require().NoError(err, "failed to create first book in DB")
	second, err := igts.createBook(&model.Book{
		Title:           "The Lathe of Heaven",
		Author:          "Ursula K. Le Guin",
		ISBN:            "9781416556961",
		PublicationYear: 1971,
		Available:       false,
	})
	igts.Require().NoError(err, "failed to create second book in DB")

	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodGet, "/api/bsweb/v1/books", nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	res := &[]model.Book{}
	igts.sendReqRecvResp(w, req, res)

	igts.Equal(200, w.Code)
	ids := make([]int64, len(*res))
	for i, b := range *res {
		ids[i] = b.ID
	}
	igts.True(slices.IsSorted(ids), "books must be listed in id order")
	igts.Contains(*res, model.Book{
		ID:              first,
		Title:           "The Left Hand of Darkness",
		Author:          "Ursula K. Le Guin",
		ISBN:            "9780441478125",
		PublicationYear: 1969,
		Available:       true,
	}, "the first book must be listed")
	igts.Contains(*res, model.Book{
		ID:              second,
		Title:           "The Lathe of Heaven",
		Author:          "Ursula K. Le Guin",
		ISBN:            "9781416556961",
		PublicationYear: 1971,
		Available:       false,
	}, "the second book must be listed")
}

func (igts *IntegrationGinTestSuite) TestNotFound() {
	for _, tc := range []struct {
		name   string
		method string
		body   io.Reader
		detail string
	}{
		{
			name:   "fetch",
			method: http.MethodGet,
			detail: "book 987654 cannot be fetched" +
				" since it does not exist",
		},
		{
			name:   "replace",
			method: http.MethodPut,
			body:   igts.jsonBody(bookPayload(nil)),
			detail: "book 987654 cannot be updated" +
				" since it does not exist",
		},
		{
			name:   "patch",
			method: http.MethodPatch,
			body: igts.jsonBody(map[string]any{
				"title": "Stranger in a Strange Land",
			}),
			detail: "book 987654 cannot be patched" +
				" since it does not exist",
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			detail: "book 987654 cannot be deleted" +
				" since it does not exist",
		},
	} {
		igts.Run(tc.name, func() {
			w := httptest.NewRecorder()
			req, err := http.NewRequest(
				tc.method, "/api/bsweb/v1/books/987654", tc.body,
			)
			igts.Require().NoError(
				err, "cannot create "+tc.method+" request",
			)

			res := &struct {
				Detail string
			}{}
			igts.sendReqRecvResp(w, req, res)

			igts.Equal(404, w.Code)
			igts.Equal(tc.detail, res.Detail, "wrong detail")
		})
	}
}
