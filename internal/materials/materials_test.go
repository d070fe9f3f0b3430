package materials

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"studyquiz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalFilename(t *testing.T) {
	tests := []struct {
		topic string
		level int
		want  string
	}{
		{"Machine Learning!!", 2, "machine_learning_2.pdf"},
		{"  stats  ", 1, "stats_1.pdf"},
		{"Data%20Science", 3, "data_science_3.pdf"},
		{"__a---b__", 10, "a---b_10.pdf"},
		{"../../etc/passwd", 1, "etc_passwd_1.pdf"},
		{"C++ / Go", 4, "c_go_4.pdf"},
	}
	for _, tt := range tests {
		got, err := CanonicalFilename(tt.topic, tt.level)
		require.NoError(t, err, tt.topic)
		assert.Equal(t, tt.want, got)
	}
}

func TestCanonicalFilenameRejects(t *testing.T) {
	for _, tc := range []struct {
		topic string
		level int
	}{
		{"stats", 0},
		{"stats", -1},
		{"!!!", 1},
		{"", 1},
	} {
		_, err := CanonicalFilename(tc.topic, tc.level)
		assert.ErrorIs(t, err, ErrInvalidFilename, "%q/%d", tc.topic, tc.level)
	}
}

func TestValidFilename(t *testing.T) {
	assert.True(t, ValidFilename("stats_1.pdf"))
	assert.True(t, ValidFilename("STATS_12.PDF"))
	assert.False(t, ValidFilename("stats_01.pdf"))
	assert.False(t, ValidFilename("stats_0.pdf"))
	assert.False(t, ValidFilename("../stats_1.pdf"))
	assert.False(t, ValidFilename("stats.pdf"))
}

func TestParseFilename(t *testing.T) {
	entry, ok := ParseFilename("linear_algebra_3.PDF")
	require.True(t, ok)
	assert.Equal(t, models.MaterialEntry{Topic: "linear_algebra", Level: 3, Filename: "linear_algebra_3.PDF"}, entry)

	_, ok = ParseFilename("notes.pdf")
	assert.False(t, ok)
	_, ok = ParseFilename("stats_0.pdf")
	assert.False(t, ok)
	_, ok = ParseFilename("stats_1.pdf.bak")
	assert.False(t, ok)
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestDirStoreList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stats_1.pdf", "a")
	writeFile(t, dir, "stats_2.PDF", "b")
	writeFile(t, dir, "readme.txt", "c")
	writeFile(t, dir, "notes.pdf", "d")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested_1.pdf"), 0o755))
	writeFile(t, filepath.Join(dir, "nested_1.pdf"), "deep_1.pdf", "e")

	got, err := NewDirStore(dir).List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.MaterialEntry{
		{Topic: "stats", Level: 1, Filename: "stats_1.pdf"},
		{Topic: "stats", Level: 2, Filename: "stats_2.PDF"},
	}, got)
}

func TestDirStoreListMissingDir(t *testing.T) {
	got, err := NewDirStore(filepath.Join(t.TempDir(), "absent")).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDirStoreOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stats_1.pdf", "%PDF-1.4")
	store := NewDirStore(dir)

	obj, err := store.Open(context.Background(), "stats_1.pdf")
	require.NoError(t, err)
	defer obj.Body.Close()
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), obj.Size)
	assert.Equal(t, "stats_1.pdf", obj.Name)

	_, err = store.Open(context.Background(), "ghost_1.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Open(context.Background(), "../stats_1.pdf")
	assert.ErrorIs(t, err, ErrInvalidFilename)
}

func TestDirStoreEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "study-materials")
	store := NewDirStore(dir)
	require.NoError(t, store.EnsureDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, store.Dir())
}
