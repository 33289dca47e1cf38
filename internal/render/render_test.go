package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/repoatlas/internal/lang"
	"github.com/phobologic/repoatlas/internal/model"
)

func sampleResult() *model.ScanResult {
	mainIdx := model.SourceFile{RelPath: "src/main/index.ts", Language: lang.TypeScript, Lines: 40, Layer: model.LayerMain}
	mgr := model.SourceFile{RelPath: "src/main/session/session-manager.ts", Language: lang.TypeScript, Lines: 250, Layer: model.LayerMain}
	store := model.SourceFile{RelPath: "src/main/session/store.ts", Language: lang.TypeScript, Lines: 20, Layer: model.LayerMain}
	app := model.SourceFile{RelPath: "src/renderer/App.tsx", Language: lang.TypeScript, Lines: 80, Layer: model.LayerRenderer}
	types := model.SourceFile{RelPath: "src/shared/ipc-types.ts", Language: lang.TypeScript, Lines: 30, Layer: model.LayerShared}
	script := model.SourceFile{RelPath: "scripts/release.py", Language: lang.Python, Lines: 12, Layer: model.LayerOther}

	existing := "Hand written"
	return &model.ScanResult{
		ProjectName: "demo",
		Files:       []model.SourceFile{script, mainIdx, mgr, store, app, types},
		TotalFiles:  6,
		TotalLines:  432,
		Languages:   map[lang.Language]int{lang.TypeScript: 5, lang.Python: 1},
		Dependencies: []model.CrossDependency{
			{From: "src/main/index.ts", To: "src/main/session/session-manager.ts", ImportCount: 1},
			{From: "src/main/session/session-manager.ts", To: "src/main/session/store.ts", ImportCount: 1},
			{From: "src/main/session/session-manager.ts", To: "src/shared/ipc-types.ts", ImportCount: 2},
			{From: "src/renderer/App.tsx", To: "src/shared/ipc-types.ts", ImportCount: 1},
		},
		Domains: []model.Domain{
			{
				Key: "session", Name: "Session", Files: []model.SourceFile{store, mgr},
				IPCPrefix: "session:", MainFiles: []string{mgr.RelPath, store.RelPath},
			},
			{Key: "main", Name: "Main", Files: []model.SourceFile{mainIdx}, MainFiles: []string{mainIdx.RelPath}, Entrypoints: []string{mainIdx.RelPath}},
			{Key: "renderer", Name: "Renderer", Files: []model.SourceFile{app}, RendererFiles: []string{app.RelPath}},
			{Key: "scripts", Name: "Scripts", Files: []model.SourceFile{script}},
			{Key: "shared", Name: "Shared", Files: []model.SourceFile{types}, SharedFiles: []string{types.RelPath}},
		},
		InlineTags: []model.InlineTag{
			{RelPath: "src/renderer/App.tsx", SuggestedTag: "Renderer application root", Reason: "app-root", Score: 5, Selected: true},
			{RelPath: "src/main/index.ts", SuggestedTag: "Main entrypoint", Reason: "index-entrypoint", Score: 5, CurrentTag: &existing},
		},
		Centrality: map[string]float64{
			"scripts/release.py":                  0.05,
			"src/main/index.ts":                   0.05,
			"src/main/session/session-manager.ts": 0.10,
			"src/main/session/store.ts":           0.20,
			"src/renderer/App.tsx":                0.05,
			"src/shared/ipc-types.ts":             0.55,
		},
		EnumerationSource: "walk",
		ScanDurationMs:    1234,
	}
}

func TestOverview(t *testing.T) {
	t.Parallel()

	got := Overview(sampleResult())

	assert.True(t, strings.HasPrefix(got, "# demo\n"))
	assert.Contains(t, got, "- **Files:** 6\n")
	assert.Contains(t, got, "- **Lines:** 432\n")
	assert.Contains(t, got, "- **Domains:** 5\n")
	assert.Contains(t, got, "| typescript | 5 |\n| python | 1 |\n")
	assert.Contains(t, got, "| Domain | Files | Main | Renderer | Shared | IPC Prefix |")
	assert.Contains(t, got, "| Session | 2 | session-manager.ts, store.ts | - | - | session: |")
	assert.Contains(t, got, "| Shared | 1 | - | - | ipc-types.ts | - |")
	assert.NotContains(t, got, "1234", "durations must not leak into output")
}

func TestOverviewEmpty(t *testing.T) {
	t.Parallel()

	got := Overview(&model.ScanResult{ProjectName: "empty"})
	assert.Contains(t, got, "_No recognised languages._")
	assert.Contains(t, got, "_No domains inferred._")
}

func TestRankLanguages(t *testing.T) {
	t.Parallel()

	counts := map[lang.Language]int{
		lang.Unknown:    50,
		lang.TypeScript: 9,
		lang.Go:         4,
		lang.Rust:       4,
		lang.Python:     7,
		lang.CSS:        2,
		lang.Ruby:       1,
		lang.Java:       1,
	}
	got := RankLanguages(counts, TopLanguages)
	require.Len(t, got, 5)

	var names []string
	for _, lc := range got {
		names = append(names, string(lc.Language))
	}
	assert.Equal(t, []string{"typescript", "python", "go", "rust", "css"}, names)
}

func TestIndex(t *testing.T) {
	t.Parallel()

	got := Index(sampleResult())

	assert.True(t, strings.HasPrefix(got, "# demo Repository Index\n"))
	assert.Contains(t, got, "## Entrypoints\n\n- `src/main/index.ts`\n")

	// Hub files ordered by centrality.
	hub := got[strings.Index(got, "## Hub Files"):]
	assert.Less(t, strings.Index(hub, "ipc-types.ts"), strings.Index(hub, "store.ts"))
	assert.Contains(t, hub, "| `src/shared/ipc-types.ts` | 0.5500 | 2 |")

	assert.Contains(t, got, "| Session | Shared | 2 |")
	assert.Contains(t, got, "| Main | Session | 1 |")
	assert.Contains(t, got, "| Renderer | Shared | 1 |")

	assert.Contains(t, got, "| `src/main/index.ts` | Main entrypoint | index-entrypoint | 5 | existing: Hand written |")

	// Per-domain tables sorted by path even when membership is not.
	session := got[strings.Index(got, "### Session"):]
	assert.Less(t, strings.Index(session, "session-manager.ts"), strings.Index(session, "store.ts"))
	assert.Contains(t, session, "IPC prefix: `session:`")
}

func TestIndexWithoutDependencies(t *testing.T) {
	t.Parallel()

	r := sampleResult()
	r.Dependencies = nil
	r.InlineTags = nil
	got := Index(r)
	assert.NotContains(t, got, "## Hub Files")
	assert.NotContains(t, got, "## Cross-Domain Dependencies")
	assert.NotContains(t, got, annotationsHeading)
	assert.Empty(t, AnnotationPaths(got))
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	first := sampleResult()
	assert.Equal(t, Overview(first), Overview(sampleResult()))
	assert.Equal(t, Index(first), Index(sampleResult()))

	// Scan duration is captured by the caller and must not affect output.
	second := sampleResult()
	second.ScanDurationMs = 9
	assert.Equal(t, Index(first), Index(second))
	assert.Equal(t, Overview(first), Overview(second))
}

func TestAnnotationPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"src/renderer/App.tsx", "src/main/index.ts"}, AnnotationPaths(Index(sampleResult())))
	assert.Empty(t, AnnotationPaths("# nothing here\n"))

	r := sampleResult()
	r.InlineTags = []model.InlineTag{{RelPath: `odd|name\x.ts`, SuggestedTag: "Odd | tag", Reason: "hub"}}
	assert.Equal(t, []string{`odd|name\x.ts`}, AnnotationPaths(Index(r)))
}

func TestCellEscaping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a\|b`, cell("a|b"))
	assert.Equal(t, "one two", cell("one\ntwo"))
	assert.Equal(t, emptyCell, cell("  "))
}

func TestApplySectionCreate(t *testing.T) {
	t.Parallel()

	got := ApplySection("", "body\n")
	assert.Equal(t, SentinelStart+"\nbody\n"+SentinelEnd+"\n", got)
}

func TestApplySectionAppend(t *testing.T) {
	t.Parallel()

	existing := "# My Project\n\nSome existing content."
	got := ApplySection(existing, "new content")

	assert.True(t, strings.HasPrefix(got, existing+"\n\n"+SentinelStart))
	assert.Contains(t, got, "new content")
}

func TestApplySectionUpdate(t *testing.T) {
	t.Parallel()

	before := "# Project\n\n"
	after := "\n\n## Other Section\n"
	old := before + SentinelStart + "\nold content\n" + SentinelEnd + after

	got := ApplySection(old, "new content")
	assert.Equal(t, before+SentinelStart+"\nnew content\n"+SentinelEnd+after, got)
}

func TestApplySectionIdempotent(t *testing.T) {
	t.Parallel()

	once := ApplySection("# Notes\n", "body")
	assert.Equal(t, once, ApplySection(once, "body"))
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	data, err := Encode(sampleResult(), FormatJSON)
	require.NoError(t, err)

	var decoded struct {
		ProjectName string         `json:"projectName"`
		Languages   map[string]int `json:"languages"`
		Domains     []struct {
			Name string `json:"name"`
		} `json:"domains"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "demo", decoded.ProjectName)
	assert.Equal(t, 5, decoded.Languages["typescript"])
	assert.Len(t, decoded.Domains, 5)
}

func TestEncodeYAMLAndTOML(t *testing.T) {
	t.Parallel()

	y, err := Encode(sampleResult(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(y), "projectName: demo")

	tm, err := Encode(sampleResult(), FormatTOML)
	require.NoError(t, err)
	assert.Regexp(t, `projectName = ['"]demo['"]`, string(tm))

	_, err = Encode(sampleResult(), FormatMarkdown)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
