package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "lab"))
	require.NoError(t, err)
	return st
}

func TestNew(t *testing.T) {
	st := newTestStore(t)

	fi, err := os.Stat(st.Path(HashPrefix))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestWriteLines(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.WriteLines("a.txt", []string{"one", "two"}, false))

	raw, err := os.ReadFile(st.Path("a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(raw))

	t.Run("refuses to clobber", func(t *testing.T) {
		err := st.WriteLines("a.txt", []string{"three"}, false)
		assert.ErrorIs(t, err, ErrorArtifactExists)

		raw, err := os.ReadFile(st.Path("a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\n", string(raw), "refused write must not touch the file")
	})

	t.Run("overwrite replaces", func(t *testing.T) {
		require.NoError(t, st.WriteLines("a.txt", []string{"three"}, true))

		raw, err := os.ReadFile(st.Path("a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "three\n", string(raw))
	})
}

func TestCorpusRoundTrip(t *testing.T) {
	st := newTestStore(t)

	entries := []string{"alpha", "", "beta"}
	require.NoError(t, st.WriteCorpus(entries, false))

	got, err := st.ReadLines(CorpusFile)
	require.NoError(t, err)
	assert.Equal(t, entries, got, "blank corpus lines survive the round trip")
}

func TestWriteShadowColumn(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.WriteShadowColumn(StemBcrypt, []string{"$x$one", "$x$two"}, false))

	lines, err := st.ReadLines(HashPrefix + StemBcrypt + ".txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"user01:$x$one", "user02:$x$two"}, lines)
}

func TestShadowLabel(t *testing.T) {
	assert.Equal(t, "user01", ShadowLabel(1))
	assert.Equal(t, "user12", ShadowLabel(12))
}

func TestExisting(t *testing.T) {
	st := newTestStore(t)

	assert.Empty(t, st.Existing())

	require.NoError(t, st.WriteCorpus([]string{"x"}, false))
	require.NoError(t, st.WriteHashColumn("md5", []string{"d41d8cd9"}, false))
	require.NoError(t, st.WriteWordlist(false))

	assert.Equal(t,
		[]string{HashPrefix + "md5.txt", CorpusFile, WordlistFile},
		st.Existing())
}

func TestWordlist(t *testing.T) {
	words := Wordlist()

	assert.Len(t, words, 30)
	assert.Contains(t, words, "letmein")
	assert.Contains(t, words, "password123")
	for _, w := range words {
		assert.NotEmpty(t, w)
		assert.Equal(t, strings.TrimSpace(w), w)
	}
}

func TestListHashFiles(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.WriteHashColumn("sha256", []string{"aa", "bb", "cc"}, false))
	require.NoError(t, st.WriteHashColumn("md5", []string{"dd"}, false))

	infos, err := st.ListHashFiles()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "md5.txt", infos[0].Name)
	assert.Equal(t, 1, infos[0].Lines)
	assert.Equal(t, "sha256.txt", infos[1].Name)
	assert.Equal(t, 3, infos[1].Lines)
	assert.Equal(t, int64(9), infos[1].Bytes)
}

func TestRemove(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.WriteCorpus([]string{"x"}, false))

	require.NoError(t, st.Remove())

	_, err := os.Stat(st.Root())
	assert.True(t, os.IsNotExist(err))
}
