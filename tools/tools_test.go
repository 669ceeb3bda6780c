package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool drops an executable shell script into a temp dir and returns its
// path.
func fakeTool(t *testing.T, name, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestFind(t *testing.T) {
	t.Run("configured path wins", func(t *testing.T) {
		fake := fakeTool(t, "hashcat", "exit 0")

		path, err := Find(Hashcat, fake)
		require.NoError(t, err)
		assert.Equal(t, fake, path)
	})

	t.Run("missing tool", func(t *testing.T) {
		_, err := Find("passlab-test-no-such-tool", "")
		assert.ErrorIs(t, err, ErrorToolUnavailable)
	})

	t.Run("configured path missing", func(t *testing.T) {
		_, err := Find(John, filepath.Join(t.TempDir(), "john"))
		assert.ErrorIs(t, err, ErrorToolUnavailable)
	})
}

func TestDetect(t *testing.T) {
	fake := fakeTool(t, "hashcat", `echo "fakecat v1.0"`)

	infos := Detect(map[string]string{
		Hashcat: fake,
		John:    filepath.Join(t.TempDir(), "nonexistent"),
	})
	require.Len(t, infos, 2)

	assert.Equal(t, Hashcat, infos[0].Name)
	assert.True(t, infos[0].Available)
	assert.Equal(t, fake, infos[0].Path)
	assert.Equal(t, "fakecat v1.0", infos[0].Version)

	assert.Equal(t, John, infos[1].Name)
	assert.False(t, infos[1].Available)
	assert.Empty(t, infos[1].Path)
}

func TestLocateRules(t *testing.T) {
	saved := rulesDirCandidates
	rulesDirCandidates = nil
	defer func() { rulesDirCandidates = saved }()

	t.Run("configured directory", func(t *testing.T) {
		dir := t.TempDir()

		got, err := LocateRules(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("nothing found", func(t *testing.T) {
		_, err := LocateRules(filepath.Join(t.TempDir(), "gone"))
		assert.ErrorIs(t, err, ErrorNoRulesDir)
	})
}

func TestRuleFile(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/opt/rules", "best64.rule"),
		RuleFile("/opt/rules", "best64.rule"))
}
