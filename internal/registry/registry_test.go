package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/3leaps/verbump/internal/host/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pioShowOutput = `AVRIO
=====
Arduino fast pin IO library

Version: 1.2.3 | Released: 2 months ago

Library • Arduino • atmelavr
`

func TestExtractPublishedVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "pio show", text: pioShowOutput, want: "1.2.3"},
		{name: "lowercase", text: "version 1.2.3", want: "1.2.3"},
		{name: "across lines", text: "Latest VERSION\n\n  4.5.6\n", want: "4.5.6"},
		{name: "first after keyword", text: "build 9.9.9\nversion: 1.0.0 (was 0.9.0)", want: "1.0.0"},
		{name: "two part ignored", text: "version 1.2 then 3.4.5", want: "3.4.5"},
		{name: "no keyword", text: "AVRIO 1.2.3", wantErr: true},
		{name: "keyword without number", text: "version unknown", wantErr: true},
		{name: "empty", text: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractPublishedVersion(tc.text)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrNoPublishedVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestHelperProcess is re-executed by the command prober tests in place of a
// real registry CLI.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("VERBUMP_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	switch args[0] {
	case "show":
		fmt.Fprintf(os.Stdout, "%s\nVersion: 2.0.1\n", args[1])
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "package not found")
		os.Exit(3)
	case "hang":
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	os.Exit(2)
}

func helperProber(t *testing.T, args ...string) *CommandProber {
	t.Helper()
	t.Setenv("VERBUMP_HELPER_PROCESS", "1")
	argv := append([]string{os.Args[0], "-test.run=TestHelperProcess", "--"}, args...)
	p, err := NewCommandProber(argv)
	require.NoError(t, err)
	return p
}

func TestCommandProberSuccess(t *testing.T) {
	p := helperProber(t, "show", PackagePlaceholder)

	out, err := p.Probe(context.Background(), "AVRIO")
	require.NoError(t, err)
	assert.Contains(t, out, "AVRIO")

	v, err := ExtractPublishedVersion(out)
	require.NoError(t, err)
	assert.Equal(t, "2.0.1", v)
}

func TestCommandProberFailureCarriesOutput(t *testing.T) {
	p := helperProber(t, "fail", PackagePlaceholder)

	_, err := p.Probe(context.Background(), "AVRIO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package not found")
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestCommandProberContextTimeout(t *testing.T) {
	p := helperProber(t, "hang", PackagePlaceholder)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Probe(ctx, "AVRIO")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestCommandProberSpawnFailure(t *testing.T) {
	t.Parallel()
	p, err := NewCommandProber([]string{"verbump-definitely-not-a-command"})
	require.NoError(t, err)

	_, err = p.Probe(context.Background(), "AVRIO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbump-definitely-not-a-command")
}

func TestNewCommandProber(t *testing.T) {
	t.Parallel()

	p, err := NewCommandProber(nil)
	require.NoError(t, err)
	assert.Equal(t, "pio", p.Bin)
	assert.Equal(t, []string{"pkg", "show", PackagePlaceholder}, p.Args)

	p, err = NewCommandProber([]string{"npm", "view"})
	require.NoError(t, err)
	assert.Equal(t, []string{"view", PackagePlaceholder}, p.Args, "package appended when no placeholder")
	assert.Equal(t, "npm view {{package}}", p.String())

	_, err = NewCommandProber([]string{" "})
	require.Error(t, err)
}

func TestTrimCommandOutput(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "command failed", trimCommandOutput("  \n"))
	long := trimCommandOutput(strings.Repeat("x", maxCommandError+10))
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.Len(t, long, maxCommandError+3)
}

func TestProberFunc(t *testing.T) {
	t.Parallel()
	var got string
	p := ProberFunc(func(_ context.Context, pkg string) (string, error) {
		got = pkg
		return "version 0.0.1", nil
	})
	out, err := p.Probe(context.Background(), "AVRIO")
	require.NoError(t, err)
	assert.Equal(t, "AVRIO", got)
	assert.Equal(t, "version 0.0.1", out)
}

func TestGitHubProber(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/avrio/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"v1.3.0"}`))
	}))
	defer ts.Close()

	p := &GitHubProber{Client: github.NewClient(ts.URL, "verbump/test")}
	out, err := p.Probe(context.Background(), "acme/avrio")
	require.NoError(t, err)

	v, err := ExtractPublishedVersion(out)
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", v)

	_, err = p.Probe(context.Background(), "acme/other")
	require.Error(t, err)
}
