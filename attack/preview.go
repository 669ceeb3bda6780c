package attack

import (
	"github.com/rondev89/password-lab/digest"
	"github.com/rondev89/password-lab/storage"
)

// Match pairs an artifact line with the wordlist entry that produces it.
type Match struct {
	Line      string
	Plaintext string
}

// PreviewDictionary replays a dictionary attack in-process against one of
// the unsalted hash artifacts: every wordlist entry is hashed once and the
// artifact lines are looked up against the result. It answers "what will
// the dictionary exercises recover" without running any external tool, and
// is nothing more than a lookup; actual cracking stays with the tools.
func PreviewDictionary(st *storage.Store, algo digest.Algorithm) ([]Match, error) {
	lines, err := st.ReadLines(storage.HashPrefix + string(algo) + ".txt")
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]string, len(storage.Wordlist()))
	for _, word := range storage.Wordlist() {
		h, err := digest.FastHex(algo, word)
		if err != nil {
			return nil, err
		}
		lookup[h] = word
	}

	var matches []Match
	for _, line := range lines {
		if plain, ok := lookup[line]; ok {
			matches = append(matches, Match{Line: line, Plaintext: plain})
		}
	}
	return matches, nil
}
