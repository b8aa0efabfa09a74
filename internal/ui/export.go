package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/olivier-w/coilsim/internal/process"
)

// exportSamples is the row count of a timeline export from the UI.
const exportSamples = 200

var invalidFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// exportFilename strips characters invalid in filenames.
// Falls back to "spring" if the result is empty.
func exportFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "spring"
	}
	return name + "-timeline.csv"
}

// exportTimeline samples p at n points and writes the CSV table into dir.
// Returns the destination path.
func exportTimeline(p *process.CompressionSpringProcess, name, dir string, n int) (string, error) {
	dest := filepath.Join(dir, exportFilename(name))
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("file %q already exists", dest)
	}
	if err != nil {
		return "", fmt.Errorf("creating export: %w", err)
	}
	if err := process.WriteExport(f, process.Export(p, n)); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("writing export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dest, nil
}
