// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"

	"github.com/momeni/bookshelf/pkg/adapter/db/postgres"
	"github.com/momeni/bookshelf/pkg/core/repo"
	"github.com/momeni/bookshelf/pkg/core/scram"
)

// passwordIters is the iterations count of the SCRAM password hashing
// operations, matching the default PostgreSQL iterations count for
// its natively computed scram-sha-256 verifiers.
const passwordIters = 4096

// DropCascade drops the `schema` schema with cascading if it exists,
// dropping all dependent objects recursively. That is, if `schema`
// does not exist, a nil error will be returned without any change.
// Otherwise, the schema and its contained tables will be dropped.
//
// Caller is responsible to pass a trusted schema name string.
func DropCascade[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"DROP SCHEMA IF EXISTS %s CASCADE", schema,
	))
	if err != nil {
		return fmt.Errorf("dropping schema: %w", err)
	}
	return nil
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
//
// Caller is responsible to pass a trusted schema name string.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema))
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// CreateRoleIfNotExists creates the `role` role if it does not exist
// right now. Although the login option is enabled for the created
// role, but no specific password will be set for it. The
// ChangePasswords function may be used for setting a password if
// desired. Otherwise, that user may not login effectively (but using
// the trust or local identity methods).
// An unconditional CREATE ROLE statement fails if the role exists,
// hence, the expected duplicate_object error is absorbed in a DO
// statement instead of checking the pg_roles catalog in a separate
// statement (which is prone to a time of check to time of use race).
//
// Caller is responsible to pass a suffixed role name, if a role name
// suffix is applicable.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(`DO $$
BEGIN
    CREATE ROLE %s WITH LOGIN;
EXCEPTION WHEN duplicate_object THEN
    NULL;
END
$$`, role))
	if err != nil {
		return fmt.Errorf("creating role: %w", err)
	}
	return nil
}

// GrantPrivileges grants ALL privileges on the `schema` schema to the
// `role` role, so it may create or access tables in that schema and
// run relevant queries.
//
// Caller is responsible to pass a trusted schema name string and a
// suffixed role name, if a role name suffix is applicable.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context, q Q, schema string, role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"GRANT ALL PRIVILEGES ON SCHEMA %s TO %s", schema, role,
	))
	if err != nil {
		return fmt.Errorf("granting privileges: %w", err)
	}
	return nil
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone. Updated search_path
// will be used by default in all future sessions of that role.
//
// Caller is responsible to pass a trusted schema name string and a
// suffixed role name, if a role name suffix is applicable.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context, q Q, schema string, role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s", role, schema,
	))
	if err != nil {
		return fmt.Errorf("altering role search_path: %w", err)
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles in the
// given transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// Each password is hashed by the h hasher at first, then its SCRAM
// verifier is sent to the DBMS server, hence, no plaintext password
// appears in the executed statements (and their possible logs).
//
// Caller is responsible to pass suffixed role names, if a role name
// suffix is applicable.
func ChangePasswords(
	ctx context.Context, tx *postgres.Tx, h scram.Hasher,
	roles []repo.Role, passwords []string,
) error {
	if nr, np := len(roles), len(passwords); nr != np {
		return fmt.Errorf(
			"mismatching roles (%d) and passwords (%d) counts", nr, np,
		)
	}
	for i, role := range roles {
		hash, err := h.Hash(passwords[i], "", passwordIters)
		if err != nil {
			return fmt.Errorf(
				"hashing password of %q role: %w", role, err,
			)
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD '%s'", role, hash,
		))
		if err != nil {
			return fmt.Errorf(
				"altering password of %q role: %w", role, err,
			)
		}
	}
	return nil
}
