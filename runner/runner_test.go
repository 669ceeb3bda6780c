package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rondev89/password-lab/attack"
	"github.com/rondev89/password-lab/corpus"
	"github.com/rondev89/password-lab/storage"
	"github.com/rondev89/password-lab/tools"
	"github.com/rondev89/password-lab/utility"
)

func TestProvision(t *testing.T) {
	st, err := storage.New(filepath.Join(t.TempDir(), "lab"))
	require.NoError(t, err)

	require.NoError(t, Provision(st, corpus.Default(), false))

	t.Run("writes every artifact", func(t *testing.T) {
		for _, name := range []string{
			storage.CorpusFile,
			storage.WordlistFile,
			storage.HashPrefix + "md5.txt",
			storage.HashPrefix + "sha256.txt",
			storage.HashPrefix + "ntlm.txt",
			storage.HashPrefix + storage.StemSHA512Crypt + ".txt",
			storage.HashPrefix + storage.StemBcrypt + ".txt",
			storage.HashPrefix + storage.StemYescrypt + ".txt",
		} {
			_, err := os.Stat(st.Path(name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("fast columns follow corpus order", func(t *testing.T) {
		lines, err := st.ReadLines(storage.HashPrefix + "md5.txt")
		require.NoError(t, err)
		require.Len(t, lines, len(corpus.Default()))
		// md5 of password123, the first corpus entry.
		assert.Equal(t, "482c811da5d5b4bc6d497ffa98491e38", lines[0])
	})

	t.Run("shadow columns carry labels and salts", func(t *testing.T) {
		lines, err := st.ReadLines(storage.HashPrefix + storage.StemSHA512Crypt + ".txt")
		require.NoError(t, err)
		require.Len(t, lines, len(corpus.Default()))

		assert.True(t, strings.HasPrefix(lines[0], "user01:$6$"), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "user02:$6$"), lines[1])
	})

	t.Run("refuses a second run", func(t *testing.T) {
		err := Provision(st, corpus.Default(), false)
		assert.ErrorIs(t, err, storage.ErrorArtifactExists)
	})

	t.Run("overwrite regenerates", func(t *testing.T) {
		require.NoError(t, Provision(st, []string{"onlyone"}, true))

		lines, err := st.ReadLines(storage.HashPrefix + "ntlm.txt")
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})
}

func TestProvisionReproducible(t *testing.T) {
	st, err := storage.New(t.TempDir())
	require.NoError(t, err)

	entries := []string{"password123", "letmein"}
	require.NoError(t, Provision(st, entries, false))

	fastBefore := make(map[string][]byte)
	for _, stem := range []string{"md5", "sha256", "ntlm"} {
		raw, err := os.ReadFile(st.HashFile(stem))
		require.NoError(t, err)
		fastBefore[stem] = raw
	}
	saltedBefore, err := st.ReadLines(storage.HashPrefix + storage.StemSHA512Crypt + ".txt")
	require.NoError(t, err)

	require.NoError(t, Provision(st, entries, true))

	t.Run("fast files reproduce byte for byte", func(t *testing.T) {
		for stem, before := range fastBefore {
			raw, err := os.ReadFile(st.HashFile(stem))
			require.NoError(t, err)
			assert.Equal(t, string(before), string(raw), stem)
		}
	})

	t.Run("salted files differ only in salt and digest", func(t *testing.T) {
		after, err := st.ReadLines(storage.HashPrefix + storage.StemSHA512Crypt + ".txt")
		require.NoError(t, err)
		require.Len(t, after, len(saltedBefore))

		for i := range after {
			beforeLabel, _, _ := strings.Cut(saltedBefore[i], ":")
			afterLabel, _, _ := strings.Cut(after[i], ":")
			assert.Equal(t, beforeLabel, afterLabel)
			assert.NotEqual(t, saltedBefore[i], after[i], "fresh salt expected on line %d", i)
		}
	})
}

func TestProvisionSkipsBlankEntries(t *testing.T) {
	st, err := storage.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, Provision(st, []string{"alpha", "", "beta"}, false))

	entries, err := st.ReadLines(storage.CorpusFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "", "beta"}, entries, "corpus keeps its blank line")

	lines, err := st.ReadLines(storage.HashPrefix + "md5.txt")
	require.NoError(t, err)
	assert.Len(t, lines, 2, "derived files only cover real entries")
}

// fakeTool drops an executable shell script into a temp dir and returns its
// path.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faketool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestRunAttack(t *testing.T) {
	newAttack := func() attack.Attack {
		return attack.Attack{
			Name:   "fake-dict",
			Tool:   "faketool",
			Target: "hashes/md5.txt",
			Args:   []string{"{target}"},
		}
	}

	t.Run("missing tool touches nothing", func(t *testing.T) {
		st, err := storage.New(t.TempDir())
		require.NoError(t, err)

		paths := map[string]string{"faketool": filepath.Join(t.TempDir(), "gone")}
		err = RunAttack(context.Background(), st, newAttack(), paths, "", utility.AlwaysYes{})
		assert.ErrorIs(t, err, tools.ErrorToolUnavailable)
		assert.Empty(t, st.Existing())
	})

	t.Run("declined confirmation skips the run", func(t *testing.T) {
		st, err := storage.New(t.TempDir())
		require.NoError(t, err)

		paths := map[string]string{"faketool": fakeTool(t, `touch "$1"`)}
		err = RunAttack(context.Background(), st, newAttack(), paths, "", utility.AlwaysNo{})
		require.NoError(t, err)

		_, statErr := os.Stat(st.Path("hashes/md5.txt"))
		assert.True(t, os.IsNotExist(statErr), "declined attack must not execute the tool")
	})

	t.Run("argv reaches the tool", func(t *testing.T) {
		st, err := storage.New(t.TempDir())
		require.NoError(t, err)

		paths := map[string]string{"faketool": fakeTool(t, `touch "$1"`)}
		err = RunAttack(context.Background(), st, newAttack(), paths, "", utility.AlwaysYes{})
		require.NoError(t, err)

		_, statErr := os.Stat(st.Path("hashes/md5.txt"))
		assert.NoError(t, statErr, "tool should have received the resolved target path")
	})

	t.Run("non-zero exit is reported", func(t *testing.T) {
		st, err := storage.New(t.TempDir())
		require.NoError(t, err)

		paths := map[string]string{"faketool": fakeTool(t, "exit 1")}
		err = RunAttack(context.Background(), st, newAttack(), paths, "", utility.AlwaysYes{})
		assert.ErrorIs(t, err, ErrorToolInvocation)
	})

	t.Run("cancellation kills the tool", func(t *testing.T) {
		st, err := storage.New(t.TempDir())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		paths := map[string]string{"faketool": fakeTool(t, "sleep 30")}
		err = RunAttack(ctx, st, newAttack(), paths, "", utility.AlwaysYes{})
		assert.ErrorIs(t, err, ErrorToolInvocation)
	})
}

func TestShadowColumn(t *testing.T) {
	identity := func(s string) (string, error) { return "enc(" + s + ")", nil }

	column, err := shadowColumn(identity, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"enc(a)", "enc(b)"}, column)
}
