// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

// fillPointer sets *dst to a copy of *src if *dst is unset.
func fillPointer[T any](dst **T, src *T) {
	if *dst == nil && src != nil {
		value := *src
		*dst = &value
	}
}

// overridePointer sets *dst to a copy of *src if src is set.
func overridePointer[T any](dst **T, src *T) {
	if src != nil {
		value := *src
		*dst = &value
	}
}

// defaultPointer sets *dst to point to value if *dst is unset.
func defaultPointer[T any](dst **T, value T) {
	if *dst == nil {
		*dst = &value
	}
}
