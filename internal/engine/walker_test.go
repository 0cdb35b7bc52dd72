package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectWalk(t *testing.T, root string) ([]Entry, []error) {
	t.Helper()
	var entries []Entry
	var errs []error
	for e, err := range Walk(root) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

func walkPaths(root string, entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		rel, _ := filepath.Rel(root, e.Path)
		out = append(out, rel)
	}
	return out
}

func TestWalk_DepthFirstSorted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "two.txt"), []byte("2"))
	writeFile(t, filepath.Join(root, "b", "one.txt"), []byte("1"))
	writeFile(t, filepath.Join(root, "a", "nested", "deep.txt"), []byte("d"))
	writeFile(t, filepath.Join(root, "top.txt"), []byte("t"))

	entries, errs := collectWalk(t, root)
	require.Empty(t, errs)

	assert.Equal(t, []string{
		".",
		"a",
		"a/nested",
		"a/nested/deep.txt",
		"b",
		"b/one.txt",
		"b/two.txt",
		"top.txt",
	}, walkPaths(root, entries))
}

func TestWalk_EntryKindsAndDepth(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dir", "file"), []byte("x"))
	require.NoError(t, os.Symlink("dir", filepath.Join(root, "link")))

	entries, errs := collectWalk(t, root)
	require.Empty(t, errs)
	require.Len(t, entries, 4)

	byRel := make(map[string]Entry)
	for _, e := range entries {
		rel, _ := filepath.Rel(root, e.Path)
		byRel[rel] = e
	}

	assert.Equal(t, KindDir, byRel["."].Kind())
	assert.Equal(t, 0, byRel["."].Depth)
	assert.Equal(t, KindDir, byRel["dir"].Kind())
	assert.Equal(t, 1, byRel["dir"].Depth)
	assert.Equal(t, KindFile, byRel["dir/file"].Kind())
	assert.Equal(t, 2, byRel["dir/file"].Depth)
	assert.Equal(t, KindSymlink, byRel["link"].Kind(), "symlinks are not followed")

	info, err := byRel["dir/file"].Info()
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Size())
}

func TestWalk_ExactlyOnce(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, p := range []string{"x/1", "x/2", "y/z/3", "4"} {
		writeFile(t, filepath.Join(root, p), []byte(p))
	}

	entries, errs := collectWalk(t, root)
	require.Empty(t, errs)

	seen := make(map[string]int)
	for _, e := range entries {
		seen[e.Path]++
	}
	for path, n := range seen {
		assert.Equal(t, 1, n, path)
	}
	assert.Len(t, seen, 8) // root, x, x/1, x/2, y, y/z, y/z/3, 4
}

func TestWalk_FreshOnEachRange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f"), []byte("f"))

	seq := Walk(root)
	var first, second int
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	assert.Equal(t, 2, first)
	assert.Equal(t, first, second)
}

func TestWalk_EarlyBreak(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, p := range []string{"a/1", "a/2", "b/3"} {
		writeFile(t, filepath.Join(root, p), []byte(p))
	}

	var n int
	for range Walk(root) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestWalk_MissingRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "nope")
	entries, errs := collectWalk(t, root)
	assert.Empty(t, entries)
	require.Len(t, errs, 1)

	var we *WalkError
	require.True(t, errors.As(errs[0], &we))
	assert.Equal(t, root, we.Path)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
}

func TestWalk_UnreadableDirContinues(t *testing.T) {
	skipIfRoot(t)

	root := t.TempDir()
	locked := filepath.Join(root, "b_locked")
	writeFile(t, filepath.Join(locked, "hidden"), []byte("h"))
	writeFile(t, filepath.Join(root, "a", "before"), []byte("b"))
	writeFile(t, filepath.Join(root, "c", "after"), []byte("a"))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	entries, errs := collectWalk(t, root)

	require.Len(t, errs, 1)
	var we *WalkError
	require.True(t, errors.As(errs[0], &we))
	assert.Equal(t, locked, we.Path)
	assert.Equal(t, 1, we.Depth)
	assert.ErrorIs(t, errs[0], os.ErrPermission)

	assert.Equal(t, []string{".", "a", "a/before", "b_locked", "c", "c/after"}, walkPaths(root, entries))
}

func TestWalk_SymlinkRootIsFollowed(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := filepath.Join(base, "real")
	writeFile(t, filepath.Join(target, "f"), []byte("f"))
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(target, link))

	entries, errs := collectWalk(t, link)
	require.Empty(t, errs)
	assert.Equal(t, []string{".", "f"}, walkPaths(link, entries))
	assert.Equal(t, KindDir, entries[0].Kind())
}
