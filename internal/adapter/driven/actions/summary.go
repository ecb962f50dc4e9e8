package actions

import (
	"errors"
	"fmt"
	"os"
)

// AppendStepSummary appends markdown to the job's step summary file so the
// run summary page mirrors the comment body. A blank path (the variable is
// unset outside Actions) is a no-op.
func AppendStepSummary(path, markdown string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening step summary: %w", err)
	}
	_, werr := f.WriteString(markdown + "\n")
	return errors.Join(werr, f.Close())
}
