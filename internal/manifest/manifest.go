// Package manifest reads the declared version out of a library manifest.
//
// The version is located by text pattern rather than by decoding the JSON, so
// a manifest that is not valid JSON still yields a version as long as the
// "version" field is present. Validate performs the structured check when one
// is wanted.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// DefaultPath is where the library manifest lives relative to the repo root.
const DefaultPath = "./lib/AVRIO/library.json"

var versionPattern = regexp.MustCompile(`"version"\s*:\s*"([0-9.]+)`)

// ErrNoVersion is returned when the manifest has no "version" field with a
// dotted numeric value.
var ErrNoVersion = errors.New("no version field found")

// ExtractVersion returns the first "version": "<digits and dots>" value in text.
func ExtractVersion(text string) (string, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", ErrNoVersion
	}
	return m[1], nil
}

// ReadVersion reads the manifest at path and extracts its version.
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- manifest path is operator supplied
	if err != nil {
		return "", fmt.Errorf("read manifest %s: %w", path, err)
	}
	v, err := ExtractVersion(string(data))
	if err != nil {
		return "", fmt.Errorf("manifest %s: %w", path, err)
	}
	return v, nil
}
