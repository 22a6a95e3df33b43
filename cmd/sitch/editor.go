package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// editAsJSON writes v to a temp file as pretty JSON, opens the user's
// preferred editor on it, and decodes the saved contents into dst. The
// EDITOR environment variable names the editor; without it editing is
// refused.
func editAsJSON(v any, dst any) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.New("Could not find your preferred editor. Please set your EDITOR environment variable when editing text.")
	}

	contents, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal object for editing: %w", err)
	}
	contents = append(contents, '\n')

	path := filepath.Join(os.TempDir(), "sitch.json")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		return errors.New("Could not make a temporary file. Please make sure that the current user has edit access to the system's temp directory.")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("An error occurred while editing the JSON object: %v", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return errors.New("Could not read temp file after editing. Did it get deleted?")
	}
	if err := json.Unmarshal(edited, dst); err != nil {
		return errors.New("The edited object could not be parsed as JSON. Please try again.")
	}
	return nil
}
