// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package healthrs realizes the health resource, reporting liveness
// of the web server process and its database connectivity.
package healthrs

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bookshelf/pkg/core/log"
	"github.com/momeni/bookshelf/pkg/core/repo"
)

type resource struct {
	pool repo.Pool
}

// Register instantiates a resource exposing the health REST API:
//  1. GET request to /api/bsweb/v1/health
//     in order to check the server and database availability.
func Register(r *gin.RouterGroup, p repo.Pool) {
	rs := &resource{pool: p}
	r.GET("health", rs.CheckHealth)
}

func (rs *resource) CheckHealth(c *gin.Context) {
	err := rs.pool.Conn(
		c, func(ctx context.Context, conn repo.Conn) error {
			_, err := conn.Exec(ctx, "SELECT 1")
			return err
		},
	)
	if err != nil {
		log.Error(
			c.Request.Context(), "health check failed",
			log.Err("error", err),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
