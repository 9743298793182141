package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"profilecut/internal"
)

// WriteProfileCSV serializes the profile as comma-separated text with no
// header row, the layout the machine controller imports.
func WriteProfileCSV(w io.Writer, profile internal.Profile) error {
	cw := csv.NewWriter(w)
	for _, row := range profile.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write profile csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write profile csv: %w", err)
	}
	return nil
}

// WriteProfileFile writes the profile to outputPath, creating parent
// directories as needed.
func WriteProfileFile(profile internal.Profile, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteProfileCSV(f, profile)
}
