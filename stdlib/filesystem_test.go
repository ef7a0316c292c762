package stdlib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestFilesystem_PathHelpers(t *testing.T) {
	in := newTestInterp()
	registerFilesystem(in)

	v, err := call(t, in, "path_join", value.Text("a"), value.Text("b"), value.Text("c.txt"))
	require.NoError(t, err)
	require.Equal(t, value.Text(filepath.Join("a", "b", "c.txt")), v)

	v, err = call(t, in, "path_basename", value.Text("/tmp/report.csv"))
	require.NoError(t, err)
	require.Equal(t, value.Text("report.csv"), v)

	v, err = call(t, in, "path_dirname", value.Text("/tmp/report.csv"))
	require.NoError(t, err)
	require.Equal(t, value.Text("/tmp"), v)

	v, err = call(t, in, "path_extension", value.Text("report.csv"))
	require.NoError(t, err)
	require.Equal(t, value.Text(".csv"), v)

	v, err = call(t, in, "path_is_absolute", value.Text("/tmp"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "path_normalize", value.Text("a/b/../c"))
	require.NoError(t, err)
	require.Equal(t, value.Text(filepath.Clean("a/b/../c")), v)
}

func TestFilesystem_FileExistsAndListDir(t *testing.T) {
	in := newTestInterp()
	registerFilesystem(in)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	v, err := call(t, in, "file_exists", value.Text(filepath.Join(dir, "a.txt")))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "file_exists", value.Text(filepath.Join(dir, "missing.txt")))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(false), v)

	v, err = call(t, in, "list_dir", value.Text(dir))
	require.NoError(t, err)
	list := v.(*value.List)
	require.Len(t, list.Elements, 1)
	require.Equal(t, value.Text("a.txt"), list.Elements[0])
}
