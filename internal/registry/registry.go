// Package registry asks a package registry which version of a library is
// currently published.
package registry

import (
	"context"
	"errors"
	"regexp"
)

// DefaultPackage is the library name queried when none is configured.
const DefaultPackage = "AVRIO"

// Prober returns the registry's free-form description of pkg.
type Prober interface {
	Probe(ctx context.Context, pkg string) (string, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, pkg string) (string, error)

func (f ProberFunc) Probe(ctx context.Context, pkg string) (string, error) {
	return f(ctx, pkg)
}

// ErrNoPublishedVersion is returned when registry output carries no version.
var ErrNoPublishedVersion = errors.New("no published version found in registry output")

var publishedPattern = regexp.MustCompile(`(?is)version.*?(\d+\.\d+\.\d+)`)

// ExtractPublishedVersion returns the first MAJOR.MINOR.PATCH appearing after
// the word "version" (any case, possibly on a later line).
func ExtractPublishedVersion(text string) (string, error) {
	m := publishedPattern.FindStringSubmatch(text)
	if m == nil {
		return "", ErrNoPublishedVersion
	}
	return m[1], nil
}
