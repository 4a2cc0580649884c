// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/bookshelf/pkg/adapter/config"
	"github.com/momeni/bookshelf/pkg/core/usecase/dbinituc"
	"github.com/spf13/cobra"
)

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data.
The database connection information are read from the config file.
No changes will be made to the config file itself.
` + credsRenewalMessage + `

The books table will be created in the bsweb schema and filled with a
small number of well-known book records, so the web server may serve
non-trivial responses right away. If the bsweb schema exists, it will
be dropped and created from scratch.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

func initDev(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	uc := dbinituc.NewInitDB(c)
	if err := uc.InitDev(ctx); err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
}
