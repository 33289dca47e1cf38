package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phobologic/repoatlas/internal/atlas"
)

func newStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Report whether a project has a generated atlas",
		Long: `Report the atlas artifacts present in a project without scanning it:
CLAUDE.md, docs/REPO_INDEX.md, when they were last generated, and how many
inline annotations the index lists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := projectArg(args)

			cfg, err := loadConfig(cmd, projectPath)
			if err != nil {
				return err
			}
			engine := atlas.New(atlas.Options{Logger: newLogger(cmd.ErrOrStderr(), cfg.Level())})

			st, err := engine.Status(projectPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			if !st.HasAtlas {
				_, _ = fmt.Fprintln(out, warningStyle.Render("no atlas found"), mutedStyle.Render("(run `repoatlas generate --write`)"))
				return nil
			}
			_, _ = fmt.Fprintln(out, successStyle.Render("atlas present"))
			_, _ = fmt.Fprintln(out, field(atlas.ClaudeMDName, optionalPath(st.ClaudeMDPath)))
			_, _ = fmt.Fprintln(out, field("REPO_INDEX.md", optionalPath(st.RepoIndexPath)))
			if st.LastGenerated != nil {
				_, _ = fmt.Fprintln(out, field("last generated", st.LastGenerated.Format(time.RFC3339)))
			}
			_, _ = fmt.Fprintln(out, field("inline tags", fmt.Sprint(st.InlineTagCount)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")
	return cmd
}

func optionalPath(p *string) string {
	if p == nil {
		return mutedStyle.Render("missing")
	}
	return pathStyle.Render(*p)
}
