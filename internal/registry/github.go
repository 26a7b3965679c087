package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/3leaps/verbump/internal/host/github"
)

// GitHubProber reports the latest GitHub release of an owner/name package.
// The tag is rendered as "version <tag>" so ExtractPublishedVersion applies
// unchanged.
type GitHubProber struct {
	Client *github.Client
}

func (p *GitHubProber) Probe(ctx context.Context, pkg string) (string, error) {
	rel, err := p.Client.LatestRelease(ctx, pkg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("version %s\n", strings.TrimPrefix(rel.TagName, "v")), nil
}

func (p *GitHubProber) String() string { return "github " + p.Client.APIBase }
