// Package corpus holds the plaintext password list that every lab artifact
// is derived from.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

var ErrorCorpusRead = errors.New("corpus file is missing or unreadable")

// Default returns the built-in sample corpus. The set is fixed so that runs
// and docs stay reproducible, and it is picked so every worksheet exercise
// has at least one solution: the first six fall to a straight dictionary
// attack, Monkey and passw0rd fall to common mangling rules, summer23 and
// hunter2 fall to the lowercase+digits mask.
func Default() []string {
	return []string{
		"password123",
		"letmein",
		"dragon",
		"iloveyou",
		"trustno1",
		"sunshine",
		"Monkey",
		"passw0rd",
		"summer23",
		"hunter2",
	}
}

// Load reads one password per line. Lines keep their bytes as-is apart from
// the stripped newline; blank lines are kept so file layout round-trips, the
// derivers skip them.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrorCorpusRead, path, err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrorCorpusRead, path, err)
	}

	return entries, nil
}

// NonEmpty filters out blank lines, preserving order. Derived hash files have
// one record per non-empty entry.
func NonEmpty(entries []string) []string {
	kept := make([]string, 0, len(entries))
	for _, e := range entries {
		if e != "" {
			kept = append(kept, e)
		}
	}
	return kept
}
