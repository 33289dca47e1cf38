package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phobologic/repoatlas/internal/atlas"
	"github.com/phobologic/repoatlas/internal/model"
	"github.com/phobologic/repoatlas/internal/render"
)

// previewWidth is the word-wrap column for --preview.
const previewWidth = 100

type generateOptions struct {
	write   bool
	noTags  bool
	preview bool
	format  string
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Scan a project and render its atlas",
		Long: `Scan a project and render CLAUDE.md and docs/REPO_INDEX.md.

Without --write the documents are printed to stdout and nothing on disk
changes. With --write both documents are written atomically, together with
every proposed inline annotation for files that do not already carry one.
An existing CLAUDE.md keeps its hand-written content; only the block between
the repoatlas sentinels is replaced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, projectArg(args), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.write, "write", "w", false, "write the documents and selected inline annotations")
	f.BoolVar(&opts.noTags, "no-tags", false, "do not propose or write inline annotations")
	f.BoolVar(&opts.preview, "preview", false, "render the generated Markdown for the terminal")
	f.StringVarP(&opts.format, "format", "f", string(render.FormatMarkdown), "output format: markdown, json, yaml or toml")

	return cmd
}

func runGenerate(cmd *cobra.Command, projectPath string, opts generateOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, projectPath)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Level())

	settings := cfg.Settings
	if opts.noTags {
		settings.MaxInlineTags = 0
	}

	engine := atlas.New(atlas.Options{
		Logger:   logger,
		Progress: logProgress(logger),
	})

	res, err := engine.Generate(projectPath, settings)
	if err != nil {
		return fmt.Errorf("generating atlas: %w", err)
	}

	stdout := cmd.OutOrStdout()
	switch {
	case format != render.FormatMarkdown:
		data, err := render.Encode(res.Scan, format)
		if err != nil {
			return err
		}
		if _, err := stdout.Write(data); err != nil {
			return err
		}
	case opts.preview:
		out, err := previewMarkdown(res.Content)
		if err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
		_, _ = fmt.Fprint(stdout, out)
	case !opts.write:
		_, _ = fmt.Fprint(stdout, res.Content.ClaudeMD)
		_, _ = fmt.Fprintln(stdout)
		_, _ = fmt.Fprint(stdout, res.Content.RepoIndex)
	}

	if !opts.write {
		return nil
	}

	wr, err := engine.Write(projectPath, res.Content.ClaudeMD, res.Content.RepoIndex, res.Content.InlineTags)
	if err != nil {
		return fmt.Errorf("writing atlas: %w", err)
	}
	printWriteSummary(cmd.ErrOrStderr(), res, wr)
	return nil
}

// logProgress reports scan progress at debug level.
func logProgress(logger *log.Logger) atlas.ProgressFunc {
	return func(p atlas.Progress) {
		logger.Debug(p.Message, "phase", p.Phase, "current", p.Current, "total", p.Total)
	}
}

func previewMarkdown(content atlas.GeneratedContent) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content.ClaudeMD + "\n---\n\n" + content.RepoIndex)
}

func printWriteSummary(w io.Writer, res *atlas.GenerateResult, wr atlas.WriteResult) {
	scan := res.Scan
	_, _ = fmt.Fprintln(w, titleStyle.Render("repoatlas · "+scan.ProjectName))
	_, _ = fmt.Fprintln(w, field("files", fmt.Sprintf("%d (%d lines, via %s)", scan.TotalFiles, scan.TotalLines, scan.EnumerationSource)))
	_, _ = fmt.Fprintln(w, field("domains", fmt.Sprint(len(scan.Domains))))
	_, _ = fmt.Fprintln(w, field("dependencies", fmt.Sprint(len(scan.Dependencies))))

	_, _ = fmt.Fprintln(w, field(atlas.ClaudeMDName, written(wr.ClaudeMDWritten)))
	_, _ = fmt.Fprintln(w, field(filepath.Base(atlas.RepoIndexName), written(wr.RepoIndexWritten)))

	selected := 0
	for _, t := range res.Content.InlineTags {
		if t.Selected {
			selected++
		}
	}
	tagLine := fmt.Sprintf("%d of %d selected written", wr.InlineTagsWritten, selected)
	if wr.InlineTagsWritten < selected {
		tagLine = warningStyle.Render(tagLine)
	}
	_, _ = fmt.Fprintln(w, field("inline tags", tagLine))

	for _, t := range res.Content.InlineTags {
		_, _ = fmt.Fprintf(w, "  %s %s\n", tagMarker(t), pathStyle.Render(t.RelPath)+mutedStyle.Render(" "+t.SuggestedTag))
	}
}

func tagMarker(t model.InlineTag) string {
	if t.CurrentTag != nil {
		return mutedStyle.Render("=")
	}
	return successStyle.Render("+")
}

func written(ok bool) string {
	if ok {
		return successStyle.Render("written")
	}
	return warningStyle.Render("not written")
}
