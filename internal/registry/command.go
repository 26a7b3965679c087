package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// PackagePlaceholder in command arguments is replaced by the package name.
	PackagePlaceholder = "{{package}}"

	maxCommandError = 512
)

// DefaultCommand queries the PlatformIO registry.
var DefaultCommand = []string{"pio", "pkg", "show", PackagePlaceholder}

// CommandProber runs an external registry CLI and returns its stdout.
type CommandProber struct {
	Bin  string
	Args []string
}

// NewCommandProber builds a prober from a command line. An empty argv selects
// DefaultCommand. If no argument contains PackagePlaceholder the package name
// is appended.
func NewCommandProber(argv []string) (*CommandProber, error) {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	if strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("registry command is empty")
	}
	args := append([]string(nil), argv[1:]...)
	if !hasPlaceholder(args) {
		args = append(args, PackagePlaceholder)
	}
	return &CommandProber{Bin: argv[0], Args: args}, nil
}

func hasPlaceholder(args []string) bool {
	for _, a := range args {
		if strings.Contains(a, PackagePlaceholder) {
			return true
		}
	}
	return false
}

func (p *CommandProber) Probe(ctx context.Context, pkg string) (string, error) {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = strings.ReplaceAll(a, PackagePlaceholder, pkg)
	}

	cmd := exec.CommandContext(ctx, p.Bin, args...) // #nosec G204 -- registry command is operator supplied
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := stderr.String()
		if strings.TrimSpace(detail) == "" {
			detail = stdout.String()
		}
		return "", fmt.Errorf("%s %s: %w: %s", p.Bin, strings.Join(args, " "), err, trimCommandOutput(detail))
	}
	return stdout.String(), nil
}

func (p *CommandProber) String() string {
	return strings.TrimSpace(p.Bin + " " + strings.Join(p.Args, " "))
}

func trimCommandOutput(out string) string {
	clean := strings.TrimSpace(out)
	if clean == "" {
		return "command failed"
	}
	if len(clean) > maxCommandError {
		return clean[:maxCommandError] + "..."
	}
	return clean
}
