// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package booksuc

import (
	"errors"
	"time"
)

// Option is a functional option for the books use case.
type Option func(uc *UseCase) error

// WithClock option configures a books UseCase instance in order to
// read the current time from the given now function whenever the
// publication year business rule has to be enforced. This option may
// be passed to the New() function. In its absence, the system wall
// clock will be used. Tests may pass a fixed clock, so the current
// year does not depend on the test execution time.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("now function is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
