package content

import (
	"artistsite/internal/models"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed default.json
var defaultFile []byte

// Default returns the bundled content document.
func Default() []byte {
	return defaultFile
}

// Load reads the content document at path, or the bundled one when path is
// empty.
func Load(path string) (*models.ContentFile, error) {
	if path == "" {
		return Decode(defaultFile)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open content file %q: %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %q: %w", path, err)
	}

	return Decode(data)
}

func Decode(data []byte) (*models.ContentFile, error) {
	var file models.ContentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode content file: %w", err)
	}

	if file.Releases == nil {
		file.Releases = []models.FileRelease{}
	}
	if file.Shows == nil {
		file.Shows = []models.FileShow{}
	}

	return &file, nil
}

// Write stores file as indented JSON at path, replacing it atomically.
func Write(path string, file *models.ContentFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode content file: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write content file %q: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move content file into place: %w", err)
	}

	return nil
}
