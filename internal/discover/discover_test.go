package discover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var failing = Strategy{
	Source: SourceGit,
	List: func(string) ([]string, error) {
		return nil, errors.New("git unavailable")
	},
}

func TestWalkSourceFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.py", "print('hello')")
	writeFile(t, dir, "lib/util.ts", "export const a = 1")
	writeFile(t, dir, "readme.txt", "hello")
	writeFile(t, dir, "docs/guide.md", "# guide")

	listing, err := FilesWith(dir, nil, Walk)
	require.NoError(t, err)
	assert.Equal(t, SourceWalk, listing.Source)
	assert.Equal(t, []string{"lib/util.ts", "main.py"}, listing.Files)
}

func TestWalkSkipDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.ts", "")
	writeFile(t, dir, "node_modules/pkg/index.js", "")
	writeFile(t, dir, "dist/bundle.js", "")
	writeFile(t, dir, "vendor/lib.go", "")
	writeFile(t, dir, "target/debug/build.rs", "")
	writeFile(t, dir, ".hidden/secret.ts", "")

	listing, err := FilesWith(dir, nil, Walk)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.ts"}, listing.Files)
}

func TestExtraExclusions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "src/app.ts", "")
	writeFile(t, dir, "src/generated/api.ts", "")
	writeFile(t, dir, "src/schema.gen.ts", "")
	writeFile(t, dir, "scripts/release.js", "")

	listing, err := FilesWith(dir, []string{"generated", "scripts/", "*.gen.ts"}, Walk)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.ts"}, listing.Files)
}

func TestWalkHonoursGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "tmp/\nlocal.ts\n")
	writeFile(t, dir, "app.ts", "")
	writeFile(t, dir, "local.ts", "")
	writeFile(t, dir, "tmp/cache.ts", "")

	listing, err := FilesWith(dir, nil, Walk)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts"}, listing.Files)
}

func TestWalkSymlinksSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "real.py", "pass")

	if err := os.Symlink(filepath.Join(dir, "real.py"), filepath.Join(dir, "link.py")); err != nil {
		t.Skip("symlinks not supported")
	}

	listing, err := FilesWith(dir, nil, Walk)
	require.NoError(t, err)
	assert.Equal(t, []string{"real.py"}, listing.Files)
}

func TestFallbackToWalk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.ts", "")

	listing, err := FilesWith(dir, nil, failing, Walk)
	require.NoError(t, err)
	assert.Equal(t, SourceWalk, listing.Source)
	assert.Equal(t, []string{"a.ts"}, listing.Files)
}

func TestNoGitDirFallsThrough(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.ts", "")

	listing, err := Files(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, SourceWalk, listing.Source)
}

func TestStrategiesFilterIdentically(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	raw := []string{
		"src/app.ts",
		"node_modules/react/index.js",
		"dist/out.js",
		".github/workflows/ci.js",
		"README.md",
		"src/gen/api.ts",
		"./lib/util.py",
	}
	for _, p := range raw {
		writeFile(t, dir, p, "")
	}
	fixed := Strategy{Source: SourceGit, List: func(string) ([]string, error) { return raw, nil }}

	fromList, err := FilesWith(dir, []string{"gen"}, fixed)
	require.NoError(t, err)
	fromWalk, err := FilesWith(dir, []string{"gen"}, Walk)
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/util.py", "src/app.ts"}, fromList.Files)
	assert.Equal(t, fromList.Files, fromWalk.Files)
}

func TestGoGitListing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	writeFile(t, dir, ".gitignore", "ignored.ts\n")
	writeFile(t, dir, "tracked.ts", "")
	writeFile(t, dir, "lib/untracked.ts", "")
	writeFile(t, dir, "ignored.ts", "")

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("tracked.ts")
	require.NoError(t, err)

	listing, err := FilesWith(dir, nil, GoGit)
	require.NoError(t, err)
	assert.Equal(t, SourceGoGit, listing.Source)
	assert.Equal(t, []string{"lib/untracked.ts", "tracked.ts"}, listing.Files)
}

func TestCappedBuffer(t *testing.T) {
	t.Parallel()

	b := &cappedBuffer{limit: 4}
	_, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	_, err = b.Write([]byte("de"))
	assert.ErrorIs(t, err, errListingTooLarge)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
