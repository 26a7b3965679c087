package check

import (
	"fmt"
	"strings"
)

// Kind classifies a failed check.
type Kind int

const (
	KindNotBumped          Kind = iota + 1 // reference equals the local version
	KindRegressed                          // reference orders above the local version
	KindIO                                 // manifest or cache could not be read or written
	KindProbeFailed                        // registry query failed
	KindNoPublishedVersion                 // registry output had no version
	KindCacheMissing                       // no cached version recorded
	KindInvalidManifest                    // schema, signature or comparator rejected the manifest
)

func (k Kind) String() string {
	switch k {
	case KindNotBumped:
		return "not-bumped"
	case KindRegressed:
		return "regressed"
	case KindIO:
		return "io"
	case KindProbeFailed:
		return "probe-failed"
	case KindNoPublishedVersion:
		return "no-published-version"
	case KindCacheMissing:
		return "cache-missing"
	case KindInvalidManifest:
		return "invalid-manifest"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is; an *Error matches the sentinel of its Kind.
var (
	ErrNotBumped          = &Error{Kind: KindNotBumped}
	ErrRegressed          = &Error{Kind: KindRegressed}
	ErrIO                 = &Error{Kind: KindIO}
	ErrProbeFailed        = &Error{Kind: KindProbeFailed}
	ErrNoPublishedVersion = &Error{Kind: KindNoPublishedVersion}
	ErrCacheMissing       = &Error{Kind: KindCacheMissing}
	ErrInvalidManifest    = &Error{Kind: KindInvalidManifest}
)

// Error describes why a version check failed.
type Error struct {
	Kind Kind

	// Path is the manifest the local version came from.
	Path string

	// Local is the manifest version; Other is the cached or published one.
	Local, Other string

	// Source names where Other came from ("previous" or "published").
	Source string

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindNotBumped:
		fmt.Fprintf(&b, "library version %s is the same as the %s version, please update the version in %s", e.Local, e.Source, e.Path)
	case KindRegressed:
		fmt.Fprintf(&b, "%s version %s is higher than library version %s, please update the version in %s", e.Source, e.Other, e.Local, e.Path)
	case KindCacheMissing:
		fmt.Fprintf(&b, "no cached version recorded (library version %s in %s); rerun with --init to seed the cache", e.Local, e.Path)
	case KindNoPublishedVersion:
		fmt.Fprintf(&b, "could not determine published version for library version %s in %s", e.Local, e.Path)
	default:
		b.WriteString(e.Kind.String())
		if e.Path != "" {
			fmt.Fprintf(&b, " (%s)", e.Path)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
