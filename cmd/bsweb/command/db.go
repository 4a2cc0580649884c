// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import "github.com/spf13/cobra"

// credsRenewalMessage describes the passwords renewal side-effect of
// the database initialization sub-commands, as included in their long
// usage messages.
const credsRenewalMessage = `
The passwords of the database roles are renewed by this operation.
New passwords are recorded in the .pgpass.new file, in the pass-dir
directory which is specified in the config file, before being applied
to the database. After a successful initialization, the .pgpass.new
file is moved over the .pgpass file atomically. An incomplete
operation may leave a .pgpass.new file behind which will be examined
and fixed up by the subsequent connection attempts.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used.`,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
