// repoatlas generates a navigation atlas for a repository: a CLAUDE.md
// overview, a detailed docs/REPO_INDEX.md, and inline entrypoint annotations.
package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phobologic/repoatlas/internal/config"
	"github.com/phobologic/repoatlas/internal/model"
)

var version = "dev"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return fang.Execute(ctx, root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "repoatlas",
		Short: "Generate a navigation atlas for a repository",
		Long: `repoatlas scans a project tree, resolves relative imports, groups files into
domains, and writes two Markdown documents: a CLAUDE.md overview and a
detailed docs/REPO_INDEX.md. It can also annotate key entrypoint files with a
single-line @atlas-entrypoint comment.

Settings come from flags, REPOATLAS_* environment variables, and an optional
.repoatlas.yaml in the project root, in that order of precedence.`,
		SilenceUsage: true,
	}

	defaults := model.DefaultSettings()
	pf := root.PersistentFlags()
	pf.Int(config.KeyMaxInlineTags, defaults.MaxInlineTags, "maximum number of inline annotations to propose")
	pf.String(config.KeySensitivity, string(defaults.Sensitivity), "domain inference sensitivity: low, medium or high")
	pf.StringSlice(config.KeyExclude, nil, "extra directory names or gitignore-style patterns to exclude")
	pf.String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newStatusCmd())
	return root
}

// projectArg returns the project path argument, defaulting to ".".
func projectArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// loadConfig merges flags, env and the project's config file.
func loadConfig(cmd *cobra.Command, projectPath string) (*config.Config, error) {
	v := config.New(projectPath)
	for _, key := range []string{config.KeyMaxInlineTags, config.KeySensitivity, config.KeyExclude, config.KeyLogLevel} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return nil, err
		}
	}
	return config.Load(v)
}

// newLogger builds the stderr logger used by every command.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "repoatlas",
		Level:  level,
	})
}
