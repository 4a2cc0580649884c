// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bookshelf/pkg/adapter/db/postgres/booksrp"
	"github.com/momeni/bookshelf/pkg/adapter/restful/gin/booksrs"
	"github.com/momeni/bookshelf/pkg/adapter/restful/gin/healthrs"
	"github.com/momeni/bookshelf/pkg/core/repo"
	"github.com/momeni/bookshelf/pkg/core/usecase/booksuc"
)

// Register instantiates relevant repositories and use cases. The p
// connections pool is passed to the use case instances, so they may
// acquire/release connections and transactions on demand. These
// connections/transactions will be passed to the repositories later
// in order to run relevant queries on them and accomplish those use
// cases. Each use case package is named like booksuc and each
// repository package is named like booksrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like booksrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool) error {
	booksRepo := booksrp.New()

	booksUseCase, err := booksuc.New(p, booksRepo)
	if err != nil {
		return fmt.Errorf("creating books use case: %w", err)
	}
	r := e.Group("/api/bsweb/v1")
	booksrs.Register(r, booksUseCase)
	healthrs.Register(r, p)
	return nil
}
