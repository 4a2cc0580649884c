// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create or drop different schema or manage
// database user roles and their passwords.
package schemarp

import (
	"context"

	"github.com/momeni/bookshelf/pkg/adapter/db/postgres"
	"github.com/momeni/bookshelf/pkg/core/repo"
	"github.com/momeni/bookshelf/pkg/core/scram"
)

// Repo represents a schema management repository. It holds an
// optional role name suffix, so multiple deployments can share one
// DBMS cluster with independent role names, and a SCRAM hasher for
// computing the password verifiers of the managed roles.
type Repo struct {
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// New instantiates a schema management Repo struct with the given
// role name suffix and SCRAM hasher. An empty roleSuffix keeps the
// role names unchanged.
func New(roleSuffix repo.Role, hasher scram.Hasher) *Repo {
	return &Repo{roleSuffix: roleSuffix, hasher: hasher}
}

type connQueryer struct {
	*postgres.Conn
	roleSuffix repo.Role
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic. Unwrapped connection will be wrapped and
// returned as an instance of repo.SchemaConnQueryer interface, so
// it can be used in the use cases layer without requiring to type
// assert again and again.
// All schema management operations can run with an auto-committed
// transaction, hence, the returned querier exposes the common
// operations alone.
func (schema *Repo) Conn(c repo.Conn) repo.SchemaConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc, roleSuffix: schema.roleSuffix}
}

// DropCascade drops the `schema` schema with cascading if it exists,
// dropping all dependent objects recursively. That is, if `schema`
// does not exist, a nil error will be returned without any change.
// Otherwise, the schema and its contained tables will be dropped.
//
// Caller is responsible to pass a trusted schema name string.
func (cq connQueryer) DropCascade(
	ctx context.Context, schema string,
) error {
	return DropCascade(ctx, cq.Conn, schema)
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
//
// Caller is responsible to pass a trusted schema name string.
func (cq connQueryer) CreateSchema(
	ctx context.Context, schema string,
) error {
	return CreateSchema(ctx, cq.Conn, schema)
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
// The ChangePasswords method may be used for setting a password if
// desired. Otherwise, that user may not login effectively (but
// using the trust or local identity methods).
// The `role` role name will be suffixed automatically based on this
// schema queryer settings.
func (cq connQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, cq.Conn, role+cq.roleSuffix)
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role, so it may create or access tables in that schema
// and run relevant queries.
// The `role` role name will be suffixed automatically based on this
// schema queryer settings.
func (cq connQueryer) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return GrantPrivileges(ctx, cq.Conn, schema, role+cq.roleSuffix)
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
// The `role` role name will be suffixed automatically based on this
// schema queryer settings.
func (cq connQueryer) SetSearchPath(
	ctx context.Context, schema string, role repo.Role,
) error {
	return SetSearchPath(ctx, cq.Conn, schema, role+cq.roleSuffix)
}

type txQueryer struct {
	*postgres.Tx
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer. Otherwise, it will
// panic. Unwrapped transaction will be wrapped and returned as an
// instance of repo.SchemaTxQueryer interface, so it can be used in
// the use cases layer without requiring to type assert again and again.
// Returned querier instance can be used to run the transaction-specific
// queries in addition to queries which support connections and
// transactions.
//
// Currently, one operation mandates a transaction.
// ChangePasswords updates passwords of some roles. When creating roles
// for the first time, it is desired to change/set their passwords
// before making them visible by committing the transaction. Also, it
// may be desired to call this method multiple times if all roles and
// passwords may not be identified at the same time. So, a transaction
// is required since there are scenarios that other operation must be
// performed in the same transaction and caller must specify the proper
// point of commitment.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{
		Tx:         tt,
		roleSuffix: schema.roleSuffix,
		hasher:     schema.hasher,
	}
}

// DropCascade drops the `schema` schema with cascading if it exists,
// dropping all dependent objects recursively. That is, if `schema`
// does not exist, a nil error will be returned without any change.
// Otherwise, the schema and its contained tables will be dropped.
//
// Caller is responsible to pass a trusted schema name string.
func (tq txQueryer) DropCascade(
	ctx context.Context, schema string,
) error {
	return DropCascade(ctx, tq.Tx, schema)
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
//
// Caller is responsible to pass a trusted schema name string.
func (tq txQueryer) CreateSchema(
	ctx context.Context, schema string,
) error {
	return CreateSchema(ctx, tq.Tx, schema)
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
// The ChangePasswords method may be used for setting a password if
// desired. Otherwise, that user may not login effectively (but
// using the trust or local identity methods).
// The `role` role name will be suffixed automatically based on this
// schema queryer settings.
func (tq txQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, tq.Tx, role+tq.roleSuffix)
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role, so it may create or access tables in that schema
// and run relevant queries.
// The `role` role name will be suffixed automatically based on this
// schema queryer settings.
func (tq txQueryer) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return GrantPrivileges(ctx, tq.Tx, schema, role+tq.roleSuffix)
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
// The `role` role name will be suffixed automatically based on this
// schema queryer settings.
func (tq txQueryer) SetSearchPath(
	ctx context.Context, schema string, role repo.Role,
) error {
	return SetSearchPath(ctx, tq.Tx, schema, role+tq.roleSuffix)
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// These fields are not combined as a struct with two role and
// password fields because passing items separately ensures that
// all items are initialized explicitly in constrast to a struct
// which its fields can be zero-initialized and are more suitable
// to pass a set of optional fields.
// The given role names will be suffixed automatically based on this
// transaction queryer settings.
func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	suffixed := make([]repo.Role, len(roles))
	for i, role := range roles {
		suffixed[i] = role + tq.roleSuffix
	}
	return ChangePasswords(ctx, tq.Tx, tq.hasher, suffixed, passwords)
}
