// Package storage owns the lab directory and every artifact file in it.
package storage

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/visionmedia/go-cli-log"
)

const (
	CorpusFile   = "passwords.txt"
	WordlistFile = "wordlist.txt"
	HashPrefix   = "hashes/"
)

// Artifact file stems for the salted encodings. Fast digests use their
// algorithm name as the stem.
const (
	StemSHA512Crypt = "sha512crypt"
	StemBcrypt      = "bcrypt"
	StemYescrypt    = "yescrypt"
)

var (
	ErrorArtifactWrite  = errors.New("could not write lab artifact")
	ErrorArtifactExists = errors.New("artifact already exists and overwriting was not authorized")
)

//go:embed wordlist.txt
var wordlistRaw string

// Wordlist returns the built-in dictionary the canned attacks run with. The
// content is fixed and independent of the corpus: part of the sample corpus
// is deliberately inside it and part deliberately outside, so dictionary,
// rule and mask exercises each have something left to find.
func Wordlist() []string {
	lines := strings.Split(strings.TrimRight(wordlistRaw, "\n"), "\n")
	return lines
}

// Store is a lab directory. All artifact files are written up front by
// provisioning and only read afterwards.
type Store struct {
	root string
}

// New creates the lab directory (and its hashes/ subdirectory) if absent.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, HashPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrorArtifactWrite, root, err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// Path resolves a store-relative artifact name like "wordlist.txt" or
// "hashes/md5.txt" to an absolute path.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// HashFile resolves a stem like "md5" to its artifact path.
func (s *Store) HashFile(stem string) string {
	return s.Path(HashPrefix + stem + ".txt")
}

// Existing reports which artifact files are already present, store-relative.
// Provisioning refuses to clobber them unless overwriting is authorized.
func (s *Store) Existing() []string {
	var names []string
	for _, name := range []string{CorpusFile, WordlistFile} {
		if _, err := os.Stat(s.Path(name)); err == nil {
			names = append(names, name)
		}
	}
	entries, err := os.ReadDir(s.Path(HashPrefix))
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, HashPrefix+e.Name())
			}
		}
	}
	sort.Strings(names)
	return names
}

// WriteLines writes one line per element to a store-relative file. An
// existing file is preserved unless overwrite is set.
func (s *Store) WriteLines(name string, lines []string, overwrite bool) error {
	target := s.Path(name)

	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("%w: %s", ErrorArtifactExists, target)
		}
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(target, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrorArtifactWrite, target, err)
	}

	log.Info("Artifacts", "wrote %s (%d lines)", target, len(lines))
	return nil
}

// WriteCorpus writes the password list exactly as given, blanks included, so
// a re-run reproduces the same file layout.
func (s *Store) WriteCorpus(entries []string, overwrite bool) error {
	return s.WriteLines(CorpusFile, entries, overwrite)
}

// WriteHashColumn writes one digest per line under hashes/, in corpus order.
func (s *Store) WriteHashColumn(stem string, digests []string, overwrite bool) error {
	return s.WriteLines(HashPrefix+stem+".txt", digests, overwrite)
}

// ShadowLabel is the placeholder account name for record n (1-based).
// Labels are dense, stable across runs and not tied to real accounts.
func ShadowLabel(n int) string {
	return fmt.Sprintf("user%02d", n)
}

// WriteShadowColumn writes label:digest lines under hashes/.
func (s *Store) WriteShadowColumn(stem string, digests []string, overwrite bool) error {
	lines := make([]string, len(digests))
	for i, d := range digests {
		lines[i] = ShadowLabel(i+1) + ":" + d
	}
	return s.WriteLines(HashPrefix+stem+".txt", lines, overwrite)
}

// WriteWordlist materializes the built-in dictionary into the lab directory
// where the cracking tools can reach it.
func (s *Store) WriteWordlist(overwrite bool) error {
	return s.WriteLines(WordlistFile, Wordlist(), overwrite)
}

// ReadLines reads a store-relative artifact back, one element per line.
func (s *Store) ReadLines(name string) ([]string, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %v", s.Path(name), err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read artifact %s: %v", s.Path(name), err)
	}
	return lines, nil
}

// HashFileInfo describes one derived artifact for the inventory listing.
type HashFileInfo struct {
	Name  string
	Lines int
	Bytes int64
}

// ListHashFiles inventories the derived hash artifacts, sorted by name.
func (s *Store) ListHashFiles() ([]HashFileInfo, error) {
	dir := s.Path(HashPrefix)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %v", dir, err)
	}

	var infos []HashFileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("read artifact %s: %v", filepath.Join(dir, e.Name()), err)
		}
		lines, err := s.ReadLines(HashPrefix + e.Name())
		if err != nil {
			return nil, err
		}
		infos = append(infos, HashFileInfo{Name: e.Name(), Lines: len(lines), Bytes: fi.Size()})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Remove deletes the whole lab directory.
func (s *Store) Remove() error {
	return os.RemoveAll(s.root)
}
