package util

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Run executes name with args in cwd and returns the combined output. A failing command
// returns an error carrying its trimmed output.
func Run(ctx context.Context, cwd string, name string, args ...string) (string, error) {
	log.Debug().Str("command", name).Strs("args", args).Str("cwd", cwd).Msg("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command failed: %s %s: %w (%s)", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}

	return string(out), nil
}
