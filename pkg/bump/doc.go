// Package bump decides whether a locally declared version has advanced past a
// reference version (a cached value or a published release).
//
// Two comparators are provided:
//   - Lexical compares the raw strings byte by byte. This is the default and
//     matches the historical build-step behavior, including its known defect:
//     "10.0.0" sorts before "9.0.0".
//   - Semver compares MAJOR.MINOR[.PATCH] numerically with SemVer prerelease
//     precedence ("0.2.5-rc1" < "0.2.5"). Build metadata is ignored.
//
// The package performs no I/O.
package bump
