// Package check implements the two build-time version gates: the local
// manifest version against the last cached value, and against the version a
// package registry reports as published.
package check

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/3leaps/verbump/internal/cache"
	"github.com/3leaps/verbump/internal/manifest"
	"github.com/3leaps/verbump/internal/registry"
	"github.com/3leaps/verbump/pkg/bump"
)

// Options tune both checks. The zero value reproduces the plain behavior.
type Options struct {
	// Validate checks the manifest against the library schema before reading
	// its version.
	Validate bool

	// PublicKey, when set, is a minisign public key file; the manifest must
	// carry a valid detached signature.
	PublicKey string

	// InitMissing seeds an absent cache instead of failing (cached check only).
	InitMissing bool

	// DryRun skips the cache write (cached check only).
	DryRun bool

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Result describes a passing check.
type Result struct {
	Local    string
	Other    string // cached or published version; empty when the cache was seeded
	Decision bump.Decision
	Wrote    bool // cache updated
}

func localVersion(path string, opts Options) (string, error) {
	v, err := manifest.ReadVersion(path)
	if err != nil {
		kind := KindIO
		if errors.Is(err, manifest.ErrNoVersion) {
			kind = KindInvalidManifest
		}
		return "", &Error{Kind: kind, Path: path, Err: err}
	}
	if opts.PublicKey != "" {
		if err := manifest.VerifySignature(path, opts.PublicKey); err != nil {
			return "", &Error{Kind: KindInvalidManifest, Path: path, Local: v, Err: err}
		}
	}
	if opts.Validate {
		if err := manifest.Validate(path); err != nil {
			return "", &Error{Kind: KindInvalidManifest, Path: path, Local: v, Err: err}
		}
	}
	return v, nil
}

// Cached fails when the manifest version equals the cached one; otherwise it
// records the manifest version in store. Surrounding whitespace in the cached
// value is ignored, so a cache file ending in a newline still matches.
func Cached(manifestPath string, store cache.Store, opts Options) (Result, error) {
	log := opts.logger().With("check", "cached", "manifest", manifestPath)

	local, err := localVersion(manifestPath, opts)
	if err != nil {
		return Result{}, err
	}
	log.Debug("read local version", "version", local)

	raw, ok, err := store.Read()
	if err != nil {
		return Result{}, &Error{Kind: KindIO, Path: manifestPath, Local: local, Err: err}
	}
	res := Result{Local: local, Decision: bump.DecisionBumped}
	if !ok {
		if !opts.InitMissing {
			return Result{}, &Error{Kind: KindCacheMissing, Path: manifestPath, Local: local}
		}
		log.Info("seeding empty cache", "version", local)
	} else {
		res.Other = strings.TrimSpace(raw)
		log.Debug("read cached version", "version", res.Other, "raw", raw)
		if res.Other == local {
			return Result{}, &Error{Kind: KindNotBumped, Path: manifestPath, Local: local, Other: res.Other, Source: "previous"}
		}
	}

	if opts.DryRun {
		log.Info("dry run, cache left unchanged", "version", local)
		return res, nil
	}
	if err := store.Write(local); err != nil {
		return Result{}, &Error{Kind: KindIO, Path: manifestPath, Local: local, Err: err}
	}
	res.Wrote = true
	log.Debug("cache updated", "version", local)
	return res, nil
}

// Published fails when the registry reports the same version as the manifest,
// or one that cmp orders above it.
func Published(ctx context.Context, manifestPath, pkg string, prober registry.Prober, cmp bump.Comparator, opts Options) (Result, error) {
	log := opts.logger().With("check", "published", "manifest", manifestPath, "package", pkg)

	local, err := localVersion(manifestPath, opts)
	if err != nil {
		return Result{}, err
	}
	log.Debug("read local version", "version", local)

	out, err := prober.Probe(ctx, pkg)
	if err != nil {
		return Result{}, &Error{Kind: KindProbeFailed, Path: manifestPath, Local: local, Source: "published", Err: err}
	}
	published, err := registry.ExtractPublishedVersion(out)
	if err != nil {
		log.Debug("registry output without version", "output", out)
		return Result{}, &Error{Kind: KindNoPublishedVersion, Path: manifestPath, Local: local, Source: "published", Err: err}
	}
	log.Debug("read published version", "version", published, "comparator", string(cmp))

	d, err := bump.Decide(local, published, cmp)
	if err != nil {
		return Result{}, &Error{Kind: KindInvalidManifest, Path: manifestPath, Local: local, Other: published, Source: "published", Err: err}
	}
	switch d {
	case bump.DecisionSame:
		return Result{}, &Error{Kind: KindNotBumped, Path: manifestPath, Local: local, Other: published, Source: "published"}
	case bump.DecisionBehind:
		return Result{}, &Error{Kind: KindRegressed, Path: manifestPath, Local: local, Other: published, Source: "published"}
	}
	return Result{Local: local, Other: published, Decision: d}, nil
}
