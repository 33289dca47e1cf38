package annotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/repoatlas/internal/lang"
)

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang lang.Language
		want string
	}{
		{lang.TypeScript, "// @atlas-entrypoint: Session manager"},
		{lang.Python, "# @atlas-entrypoint: Session manager"},
		{lang.CSS, "/* @atlas-entrypoint: Session manager */"},
		{lang.Vue, "<!-- @atlas-entrypoint: Session manager -->"},
		{lang.Unknown, "// @atlas-entrypoint: Session manager"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Line(tt.lang, "Session manager"), string(tt.lang))
	}
}

func TestLineRoundTrip(t *testing.T) {
	t.Parallel()

	for _, l := range lang.All() {
		text, ok := Existing([]byte(Line(l, "Entry point")))
		require.True(t, ok, string(l))
		assert.Equal(t, "Entry point", text, string(l))
	}
}

func TestExisting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"none", "export const a = 1\n", "", false},
		{"slash", "// @atlas-entrypoint: App root\nimport x from 'y'\n", "App root", true},
		{"indented hash", "import os\n  #   @atlas-entrypoint:  CLI  \n", "CLI", true},
		{"block", "/* @atlas-entrypoint: Styles */\n", "Styles", true},
		{"first wins", "// @atlas-entrypoint: one\n// @atlas-entrypoint: two\n", "one", true},
		{"crlf", "// @atlas-entrypoint: win\r\nx\r\n", "win", true},
		{"mention in code", "const s = \"@atlas-entrypoint: nope\"\n", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Existing([]byte(tt.content))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyPrepends(t *testing.T) {
	t.Parallel()

	got := Apply([]byte("export const a = 1\n"), "// @atlas-entrypoint: A")
	assert.Equal(t, "// @atlas-entrypoint: A\nexport const a = 1\n", string(got))
}

func TestApplyReplacesFirstExisting(t *testing.T) {
	t.Parallel()

	content := "import x from 'y'\n// @atlas-entrypoint: old\nconst a = 1\n// @atlas-entrypoint: second\n"
	got := Apply([]byte(content), "// @atlas-entrypoint: new")
	assert.Equal(t,
		"// @atlas-entrypoint: new\nimport x from 'y'\nconst a = 1\n// @atlas-entrypoint: second\n",
		string(got))
}

func TestApplyIdempotent(t *testing.T) {
	t.Parallel()

	line := "// @atlas-entrypoint: A"
	once := Apply([]byte("const a = 1\n"), line)
	assert.Equal(t, string(once), string(Apply(once, line)))
}

func TestApplyKeepsShebangFirst(t *testing.T) {
	t.Parallel()

	got := Apply([]byte("#!/usr/bin/env python3\nimport sys\n"), "# @atlas-entrypoint: CLI")
	assert.Equal(t, "#!/usr/bin/env python3\n# @atlas-entrypoint: CLI\nimport sys\n", string(got))
}

func TestApplyKeepsPHPOpenTagFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "open tag",
			content: "<?php\nheader('X: y');\necho 1;\n",
			want:    "<?php\n// @atlas-entrypoint: Public entrypoint\nheader('X: y');\necho 1;\n",
		},
		{
			name:    "open tag with statement",
			content: "<?php declare(strict_types=1);\necho 1;\n",
			want:    "<?php declare(strict_types=1);\n// @atlas-entrypoint: Public entrypoint\necho 1;\n",
		},
		{
			name:    "shebang then open tag",
			content: "#!/usr/bin/env php\n<?php\necho 1;\n",
			want:    "#!/usr/bin/env php\n<?php\n// @atlas-entrypoint: Public entrypoint\necho 1;\n",
		},
		{
			name:    "replaces existing below open tag",
			content: "<?php\n// @atlas-entrypoint: Old\necho 1;\n",
			want:    "<?php\n// @atlas-entrypoint: Public entrypoint\necho 1;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Apply([]byte(tt.content), Line(lang.PHP, "Public entrypoint"))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestPlaceable(t *testing.T) {
	t.Parallel()

	assert.True(t, Placeable([]byte("<?php\necho 1;\n"), lang.PHP))
	assert.True(t, Placeable([]byte("#!/usr/bin/env php\n<?php\n"), lang.PHP))
	assert.False(t, Placeable([]byte("<html>\n<?php echo 1; ?>\n</html>\n"), lang.PHP))
	assert.False(t, Placeable([]byte("<?php echo 1; ?>\n<p>hi</p>\n"), lang.PHP))
	assert.False(t, Placeable(nil, lang.PHP))
	assert.True(t, Placeable([]byte("<p>not php</p>\n"), lang.Python))
}

func TestApplyEmptyFile(t *testing.T) {
	t.Parallel()

	got := Apply(nil, "// @atlas-entrypoint: A")
	assert.Equal(t, "// @atlas-entrypoint: A\n", string(got))
}

func TestReadExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tagged := filepath.Join(dir, "a.ts")
	plain := filepath.Join(dir, "b.ts")
	require.NoError(t, os.WriteFile(tagged, []byte("// @atlas-entrypoint: A\n"), 0o644))
	require.NoError(t, os.WriteFile(plain, []byte("const b = 2\n"), 0o644))

	got, err := ReadExisting(tagged)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", *got)

	got, err = ReadExisting(plain)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ReadExisting(filepath.Join(dir, "missing.ts"))
	assert.Error(t, err)
}
