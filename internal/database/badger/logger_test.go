// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"bytes"
	"testing"

	"github.com/ChainSafe/headertree/internal/log"
	"github.com/stretchr/testify/assert"
)

func Test_badgerLogger(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	leveled := log.New(log.SetWriter(buffer), log.SetFormat(log.FormatText), log.SetLevel(log.Trace))
	logger := newBadgerLogger(leveled)

	logger.Errorf("failed %d times\n", 2)
	logger.Warningf("slow")
	logger.Infof("compaction done\n")
	logger.Debugf("value log %s", "rotated")

	lines := bytes.Split(bytes.TrimSpace(buffer.Bytes()), []byte("\n"))
	expectedSuffixes := []string{
		"ERROR    failed 2 times",
		"WARN     slow",
		"DEBUG    compaction done",
		"TRACE    value log rotated",
	}
	if assert.Len(t, lines, len(expectedSuffixes)) {
		for i, suffix := range expectedSuffixes {
			assert.Truef(t, bytes.HasSuffix(lines[i], []byte(suffix)),
				"line %q does not end with %q", lines[i], suffix)
		}
	}
}
