package bump

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeVersion trims whitespace and a leading "v" and reports whether the
// result is comparable as MAJOR.MINOR[.PATCH] with optional prerelease and
// build metadata.
func NormalizeVersion(v string) (string, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(v), "v")
	if trimmed == "" {
		return "", false
	}
	if _, err := parseSemver(trimmed); err != nil {
		return "", false
	}
	return trimmed, true
}

// FormatVersionDisplay adds a "v" prefix for display unless one is present.
func FormatVersionDisplay(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

type semver struct {
	major, minor, patch int
	prerelease          []string
}

func parseSemver(normalized string) (semver, error) {
	base := normalized
	if idx := strings.IndexByte(base, '+'); idx >= 0 {
		base = base[:idx]
	}

	var out semver
	if idx := strings.IndexByte(base, '-'); idx >= 0 {
		if pre := base[idx+1:]; pre != "" {
			out.prerelease = strings.Split(pre, ".")
		}
		base = base[:idx]
	}

	parts := strings.Split(base, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return semver{}, fmt.Errorf("invalid version %q: want MAJOR.MINOR[.PATCH]", normalized)
	}

	fields := []*int{&out.major, &out.minor, &out.patch}
	names := []string{"major", "minor", "patch"}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return semver{}, fmt.Errorf("parse %s %q in %q", names[i], p, normalized)
		}
		*fields[i] = n
	}
	return out, nil
}

func (a semver) compare(b semver) int {
	for _, pair := range [][2]int{{a.major, b.major}, {a.minor, b.minor}, {a.patch, b.patch}} {
		switch {
		case pair[0] < pair[1]:
			return -1
		case pair[0] > pair[1]:
			return 1
		}
	}
	return comparePrerelease(a.prerelease, b.prerelease)
}

// comparePrerelease follows SemVer 2.0.0 section 11: a version without a
// prerelease has higher precedence, numeric identifiers sort below
// alphanumeric ones.
func comparePrerelease(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		aNum, aErr := strconv.Atoi(a[i])
		bNum, bErr := strconv.Atoi(b[i])
		switch {
		case aErr == nil && bErr == nil:
			if aNum != bNum {
				return sign(aNum - bNum)
			}
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		default:
			if c := strings.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
	}
	return sign(len(a) - len(b))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// CompareSemver compares two semver-like strings (a leading "v" is accepted).
// Returns -1 if a < b, 0 if a == b, 1 if a > b, or an error if either side
// cannot be parsed.
func CompareSemver(a, b string) (int, error) {
	av, err := parseSemver(strings.TrimPrefix(strings.TrimSpace(a), "v"))
	if err != nil {
		return 0, err
	}
	bv, err := parseSemver(strings.TrimPrefix(strings.TrimSpace(b), "v"))
	if err != nil {
		return 0, err
	}
	return av.compare(bv), nil
}
