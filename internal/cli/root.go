package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	gitint "mergepick/internal/git"
	"mergepick/internal/logging"
)

type options struct {
	verbosity   int
	configPath  string
	threshold   int
	all         bool
	stage       bool
	dryRun      bool
	diff        bool
	json        bool
	interactive bool
}

// Deps are the collaborators the commands talk to. Zero fields use the real git
// services.
type Deps struct {
	Status gitint.StatusService
	Stage  gitint.StageService
	// GitDir locates the git directory for cwd; the last-run report is kept there.
	GitDir func(ctx context.Context, cwd string) (string, error)
	// RepoRoot locates the worktree root for cwd.
	RepoRoot func(ctx context.Context, cwd string) (string, error)
}

// NewRootCmd builds the mergepick command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	deps = deps.withDefaults()
	opts := &options{}

	root := &cobra.Command{
		Use:   "mergepick [file...]",
		Short: "Resolve merge conflict markers by position",
		Long: `mergepick rewrites files that contain merge conflict markers. Every conflict
block that starts before the threshold line keeps the HEAD side, every later
block keeps the incoming side. Files are only written once all of them were
read and resolved without error.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, deps, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/mergepick/config.json)")
	pf.BoolVar(&opts.json, "json", false, "Print decisions as JSON")

	f := root.Flags()
	f.IntVar(&opts.threshold, "threshold", 0, "Line offset below which conflicts keep HEAD (default from config, 100)")
	f.BoolVar(&opts.all, "all", false, "Resolve every unmerged file reported by git")
	f.BoolVar(&opts.stage, "stage", false, "Stage rewritten files with git add")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Report decisions without writing files")
	f.BoolVar(&opts.diff, "diff", false, "Print the resolution as a unified diff instead of writing")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Review the resolution full screen before writing")

	root.AddCommand(newLastCmd(deps, opts))
	return root
}

func (d Deps) withDefaults() Deps {
	if d.Status == nil {
		d.Status = gitint.NewStatusService()
	}
	if d.Stage == nil {
		d.Stage = gitint.NewStageService()
	}
	if d.GitDir == nil {
		d.GitDir = gitint.DiscoverGitDir
	}
	if d.RepoRoot == nil {
		d.RepoRoot = gitint.DiscoverRepoRoot
	}
	return d
}
