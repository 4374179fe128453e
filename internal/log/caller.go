// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// callerSettings selects which parts of the logging call site
// are printed. Unset fields inherit from the parent logger.
type callerSettings struct {
	file *bool
	line *bool
	funC *bool
}

func (c *callerSettings) mergeWith(other callerSettings) {
	fillPointer(&c.file, other.file)
	fillPointer(&c.line, other.line)
	fillPointer(&c.funC, other.funC)
}

func (c *callerSettings) overrideWith(other callerSettings) {
	overridePointer(&c.file, other.file)
	overridePointer(&c.line, other.line)
	overridePointer(&c.funC, other.funC)
}

func (c *callerSettings) setDefaults() {
	defaultPointer(&c.file, false)
	defaultPointer(&c.line, false)
	defaultPointer(&c.funC, false)
}

func (c callerSettings) enabled() bool {
	return *c.file || *c.line || *c.funC
}

// callerSkip is the number of frames between runtime.Caller
// and the caller of the exported logging method.
const callerSkip = 3

// callSite formats the call site of the exported logging method as
// file:Lline:func, keeping only the parts enabled. It must be called
// from Logger.log.
func callSite(c callerSettings) string {
	if !c.enabled() {
		return ""
	}

	pc, file, line, ok := runtime.Caller(callerSkip)
	if !ok {
		return "error"
	}

	parts := make([]string, 0, 3)
	if *c.file {
		parts = append(parts, filepath.Base(file))
	}
	if *c.line {
		parts = append(parts, "L"+strconv.Itoa(line))
	}
	if *c.funC {
		if function := runtime.FuncForPC(pc); function != nil {
			// keep the name after the package path, such as Type.Method or func1
			name := function.Name()
			if i := strings.LastIndexByte(name, '/'); i >= 0 {
				name = name[i+1:]
			}
			if i := strings.IndexByte(name, '.'); i >= 0 {
				name = name[i+1:]
			}
			parts = append(parts, name)
		}
	}

	return strings.Join(parts, ":")
}
