// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Level is the level of the logger.
type Level uint8

const (
	// Trace is the most verbose level.
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	// Critical only logs failures the program cannot recover from.
	Critical
)

type levelDefinition struct {
	name string
	// alias is the four letter name of older configuration files.
	alias  string
	colour color.Attribute
}

var levelDefinitions = [...]levelDefinition{
	Trace:    {name: "TRACE", alias: "TRCE", colour: color.FgHiCyan},
	Debug:    {name: "DEBUG", alias: "DBUG", colour: color.FgHiBlue},
	Info:     {name: "INFO", colour: color.FgCyan},
	Warn:     {name: "WARN", colour: color.FgYellow},
	Error:    {name: "ERROR", alias: "EROR", colour: color.FgHiRed},
	Critical: {name: "CRITICAL", alias: "CRIT", colour: color.FgRed},
}

func (level Level) String() string {
	if int(level) >= len(levelDefinitions) {
		return "???"
	}
	return levelDefinitions[level].name
}

// ColouredString returns the level string coloured for terminals.
func (level Level) ColouredString() string {
	attribute := color.Reset
	if int(level) < len(levelDefinitions) {
		attribute = levelDefinitions[level].colour
	}
	return color.New(attribute).Sprint(level.String())
}

// ErrLevelNotRecognised is returned by ParseLevel for unknown levels.
var ErrLevelNotRecognised = errors.New("level is not recognised")

// ParseLevel parses a level name, its four letter alias or its
// number from 0 (trace) to 5 (critical), ignoring case and spaces.
func ParseLevel(s string) (level Level, err error) {
	normalised := strings.ToUpper(strings.TrimSpace(s))

	for i, definition := range levelDefinitions {
		if normalised == definition.name ||
			(definition.alias != "" && normalised == definition.alias) ||
			normalised == strconv.Itoa(i) {
			return Level(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrLevelNotRecognised, s)
}
