package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrGateAborted is returned when the user quits the access prompt.
var ErrGateAborted = errors.New("access prompt aborted")

// RunGate prompts for the access password before the dashboard starts.
// Wrong entries show an inline error and clear the field for another try;
// a successful unlock lasts for the life of the process. An empty expected
// password disables the gate.
func RunGate(expected string) error {
	if expected == "" {
		return nil
	}

	description := "Enter the investigation password"
	for {
		// A fresh form per attempt keeps the field cleared after a miss.
		var entered string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Access required").
					Description(description).
					EchoMode(huh.EchoModePassword).
					Value(&entered),
			),
		)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return ErrGateAborted
			}
			return fmt.Errorf("access prompt: %w", err)
		}
		if entered == expected {
			return nil
		}
		description = "Incorrect password, try again"
	}
}
