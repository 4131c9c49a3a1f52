// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainModeRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, PlainMode())
}

func TestPlainModeRespectsSmartcasePlain(t *testing.T) {
	t.Setenv("SMARTCASE_PLAIN", "true")
	assert.True(t, PlainMode())
}

func TestIconRender(t *testing.T) {
	// Styled or not, the glyph itself must survive rendering.
	assert.Contains(t, IconSuccess.Render(), "✓")
	assert.Contains(t, IconWarning.Render(), "⚠")
	assert.Contains(t, IconError.Render(), "✗")
	assert.Equal(t, "→", IconArrow.Render())
}
