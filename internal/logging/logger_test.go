// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level  string
		logged bool
	}{
		{level: "", logged: false},
		{level: "off", logged: false},
		{level: "verbose", logged: false},
		{level: "debug", logged: true},
		{level: " Trace ", logged: true},
		{level: "error", logged: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			New(tt.level, &buf).Debug("dispatch", "calls", 1)
			if tt.logged {
				assert.Contains(t, buf.String(), "dispatch")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{"", "off", "OFF", "trace", "debug", "info", "warn", "error"} {
		assert.True(t, ValidLevel(lvl), lvl)
	}
	for _, lvl := range []string{"verbose", "warning", "all"} {
		assert.False(t, ValidLevel(lvl), lvl)
	}
}
