// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the bookshelf
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization actions.
// The init-dev and init-prod actions initialize the database with the
// development or production suitable data records respectively.
//
//	./bsweb [-c /path/of/main/config.yaml]           # start web server
//	./bsweb db init-dev [-c /path/of/main/config.yaml]
//	./bsweb db init-prod [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/momeni/bookshelf/pkg/adapter/config"
	"github.com/momeni/bookshelf/pkg/adapter/restful/gin"
	"github.com/momeni/bookshelf/pkg/adapter/restful/gin/routes"
	"github.com/momeni/bookshelf/pkg/core/log"
	"github.com/momeni/bookshelf/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "bsweb",
	Short: "A clean-architecture book catalog web service",
	Long: `A clean-architecture book catalog web service which keeps
the core use cases and models layers independent of the third-party
dependent adapters layer while interacting with them through a series
of interfaces.
It serves a books REST API for registration, retrieval, replacement,
partial update, and removal of book records.
It uses GORM and Pgx for database interactions, the Gin Gonic web
framework for the REST API implementation, performs the common
requests/responses (de)serialization in dedicated serdser files,
instantiates each use case object distinguishing between the mandatory
parameters and optional ones (with help of the functional options),
and tests database repositories using temporary PostgreSQL DBMS
servers (created as podman containers).`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	log.Info(ctx, "configs loaded", slog.String("path", cfgPath))
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
// By the way, default value is not necessarily a single path and may
// check several paths sequentially and take the highest priority one
// among the existing paths. For example, a user-specific path may take
// precedence over a file in /etc which is selected over a file in /usr.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
