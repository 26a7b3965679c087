package bump

import (
	"fmt"
	"strings"
)

// Comparator selects how two version strings are ordered.
type Comparator string

const (
	Lexical Comparator = "lexical" // byte-wise string ordering
	Semver  Comparator = "semver"  // numeric MAJOR.MINOR.PATCH precedence
)

// ParseComparator maps a user-supplied name to a Comparator. The empty string
// selects Lexical.
func ParseComparator(name string) (Comparator, error) {
	switch Comparator(strings.ToLower(strings.TrimSpace(name))) {
	case "", Lexical:
		return Lexical, nil
	case Semver:
		return Semver, nil
	default:
		return "", fmt.Errorf("unknown comparator %q (supported: %s, %s)", name, Lexical, Semver)
	}
}

// Compare returns -1, 0 or 1 ordering a against b.
func (c Comparator) Compare(a, b string) (int, error) {
	switch c {
	case Semver:
		return CompareSemver(a, b)
	case Lexical, "":
		return strings.Compare(a, b), nil
	default:
		return 0, fmt.Errorf("unknown comparator %q", string(c))
	}
}

type Decision string

const (
	DecisionBumped Decision = "bumped" // local is ahead of the reference
	DecisionSame   Decision = "same"   // local equals the reference
	DecisionBehind Decision = "behind" // reference is ahead of local
)

// Decide classifies local against a reference version. Raw string equality
// is checked first; the comparator then orders the two, so under Semver
// "1.0" and "1.0.0" are also the same.
func Decide(local, reference string, cmp Comparator) (Decision, error) {
	if local == reference {
		return DecisionSame, nil
	}
	c, err := cmp.Compare(local, reference)
	if err != nil {
		return "", fmt.Errorf("compare %q with %q: %w", local, reference, err)
	}
	switch {
	case c < 0:
		return DecisionBehind, nil
	case c == 0:
		return DecisionSame, nil
	}
	return DecisionBumped, nil
}

// DescribeDecision returns a human-readable summary.
func DescribeDecision(d Decision) string {
	switch d {
	case DecisionBumped:
		return "Version was bumped"
	case DecisionSame:
		return "Version was not bumped"
	case DecisionBehind:
		return "Version is behind the reference"
	default:
		return string(d)
	}
}
