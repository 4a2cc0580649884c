// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts the core repo layer interfaces to a
// PostgreSQL DBMS which is accessed using the GORM library. The
// Pool, Conn, and Tx types wrap a *gorm.DB instance each, allowing
// the entity specific repository packages (which may depend on
// frameworks) to use GORM directly, while the use cases layer sees
// the database-agnostic interfaces alone.
package postgres

import "time"

// DefaultSlowQueryThreshold is the query execution duration threshold
// beyond which queries are logged as slow queries, unless it is
// overridden by the WithSlowQueryThreshold option of NewPool.
const DefaultSlowQueryThreshold = 200 * time.Millisecond
