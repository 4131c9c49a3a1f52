// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrNonInteractive is returned when a prompt is requested but stdin is
// not a terminal, so no form can be shown.
var ErrNonInteractive = errors.New("cannot prompt: stdin is not a terminal")

// Interactive reports whether stdin is attached to a terminal.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PromptStory asks the user for a user story in a multi-line form. Used
// by the CLI when no story was passed as an argument or file.
func PromptStory() (string, error) {
	if !Interactive() {
		return "", ErrNonInteractive
	}

	var story string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("User story").
				Description("Describe the feature under test, e.g. \"As a user, I want to reset my password so that I can regain access.\"").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("story must not be empty")
					}
					return nil
				}).
				Value(&story),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(story), nil
}

// ConfirmOverwrite asks before replacing an existing export file.
func ConfirmOverwrite(path string) (bool, error) {
	if !Interactive() {
		return false, ErrNonInteractive
	}

	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite " + path + "?").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
