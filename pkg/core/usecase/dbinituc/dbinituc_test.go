// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dbinituc_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/momeni/bookshelf/internal/test/dbcontainer"
	"github.com/momeni/bookshelf/internal/test/schema"
	"github.com/momeni/bookshelf/pkg/adapter/config"
	"github.com/momeni/bookshelf/pkg/adapter/db/postgres"
	"github.com/momeni/bookshelf/pkg/adapter/hash/scram"
	"github.com/momeni/bookshelf/pkg/core/repo"
	"github.com/momeni/bookshelf/pkg/core/usecase/dbinituc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type InitDBUseCaseTestSuite struct {
	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Port int

	dbDir  string
	hasher *scram.Mechanism
}

func TestInitDBUseCaseTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	u, err := url.Parse(pg.ConnectionString())
	if ok := assert.NoError(t, err, "parsing DB container URL"); !ok {
		return
	}
	p, err := strconv.Atoi(u.Port())
	if ok := assert.NoError(t, err, "parsing DB container port"); !ok {
		return
	}
	dbDir, err := os.MkdirTemp("", "inituc-db")
	if ok := assert.NoError(t, err, "creating temp db dir"); !ok {
		return
	}
	defer func() {
		err := os.RemoveAll(dbDir)
		assert.NoError(t, err, "removing temp db dir")
	}()
	idts := &InitDBUseCaseTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
		Port: p,

		dbDir:  dbDir,
		hasher: scram.SHA256(),
	}
	t.Run("database initialization", idts.TestInitDB)
}

func (idts *InitDBUseCaseTestSuite) TestInitDB(t *testing.T) {
	a := assert.New(t)
	for _, mode := range []string{"dev", "prod"} {
		dev := mode == "dev"
		c, name := idts.createEmptyDB(a, mode)
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			iduc := dbinituc.NewInitDB(c)
			if dev {
				err := iduc.InitDev(idts.Ctx)
				r.NoError(err, "initializing DB with dev data")
			} else {
				err := iduc.InitProd(idts.Ctx)
				r.NoError(err, "initializing DB with prod data")
			}
			idts.verifySchema(t, r, c, dev)

			// repeating the initialization must drop and recreate
			// the schema, with the renewed passwords in use
			err := iduc.InitProd(idts.Ctx)
			r.NoError(err, "reinitializing DB with prod data")
			idts.verifySchema(t, r, c, false)
		})
	}
}

func (idts *InitDBUseCaseTestSuite) verifySchema(
	t *testing.T, r *require.Assertions, c *config.Config, dev bool,
) {
	p, err := c.ConnectionPool(idts.Ctx, repo.NormalRole)
	r.NoError(err, "creating connection pool")
	defer p.Close()
	err = p.Conn(
		idts.Ctx, func(ctx context.Context, conn repo.Conn) error {
			v := schema.New(conn)
			v.VerifySchema(ctx, t)
			if dev {
				v.VerifyDevData(ctx, t)
			} else {
				v.VerifyProdData(ctx, t)
			}
			return nil
		},
	)
	r.NoError(err, "verifying database schema")
}

func (idts *InitDBUseCaseTestSuite) createEmptyDB(
	a *assert.Assertions, suffix string,
) (c *config.Config, dbName string) {
	name := "initdb_" + suffix
	roleSuffix := repo.Role("_" + name)
	u := repo.AdminRole + roleSuffix
	p := idts.randPass(a)
	err := idts.Pool.Conn(
		idts.Ctx, func(ctx context.Context, c repo.Conn) error {
			// The database and role creation DDL statements do not
			// support parameterized queries, nevertheless, the `name`
			// and `u` variables are trusted.
			if _, err := c.Exec(
				ctx, "CREATE DATABASE "+name,
			); err != nil {
				return fmt.Errorf("creating %q database: %w", name, err)
			}
			// The `p` password is hashed before being sent to DBMS, so
			// it may not leak even if it is recorded in some log file.
			hp, err := idts.hasher.Hash(p, "", 15000)
			if err != nil {
				return fmt.Errorf(
					"computing scram hash of password: %w", err,
				)
			}
			// SUPERUSER is required for dropping and creating schemas
			// and roles unconditionally.
			if _, err := c.Exec(
				ctx,
				fmt.Sprintf(
					`CREATE ROLE %s
WITH SUPERUSER LOGIN PASSWORD '%s';
GRANT ALL PRIVILEGES ON DATABASE %s TO %[1]s`,
					u, hp, name,
				),
			); err != nil {
				return fmt.Errorf("creating %q role: %w", u, err)
			}
			return nil
		},
	)
	if !a.NoError(err, "main connection error") {
		a.FailNow("failed to get a connection with superuser role")
	}
	d := filepath.Join(idts.dbDir, name)
	err = os.Mkdir(d, 0o700)
	if !a.NoError(err, "creating %q dir", d) {
		a.FailNow("cannot create top database dir")
	}
	line := fmt.Sprintf(
		"127.0.0.1:%d:%s:%s:%s\n", idts.Port, name, u, p,
	)
	pgpass := filepath.Join(d, ".pgpass")
	err = os.WriteFile(pgpass, []byte(line), 0o600)
	if !a.NoError(err, "writing %q file", pgpass) {
		a.FailNow("cannot write .pgpass file")
	}
	c = &config.Config{
		Database: config.Database{
			Host:       "127.0.0.1",
			Port:       idts.Port,
			Name:       name,
			PassDir:    d,
			RoleSuffix: roleSuffix,
		},
	}
	err = c.ValidateAndNormalize()
	a.NoError(err, "validating *config.Config instance")
	return c, name
}

func (idts *InitDBUseCaseTestSuite) randPass(
	a *assert.Assertions,
) string {
	b := make([]byte, 8)
	_, err := rand.Read(b)
	if !a.NoError(err, "generating a random password") {
		a.FailNow("cannot read random bytes")
	}
	return fmt.Sprintf("%x", b)
}
