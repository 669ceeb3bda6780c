// Package attack holds the catalog of canned cracking invocations.
package attack

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rondev89/password-lab/storage"
)

var ErrorUnknownAttack = errors.New("no such attack in the catalog")

//go:embed attacks.yaml
var catalogRaw []byte

// Attack is one canned invocation: a named tool, a target artifact and an
// argv template. Args may contain {target}, {wordlist}, {rules} and
// {session} placeholders.
type Attack struct {
	Name    string   `yaml:"name"`
	Tool    string   `yaml:"tool"`
	Summary string   `yaml:"summary"`
	Lesson  string   `yaml:"lesson"`
	Target  string   `yaml:"target"`
	Preview string   `yaml:"preview"`
	Args    []string `yaml:"args"`
}

type catalogFile struct {
	Attacks []Attack `yaml:"attacks"`
}

// Catalog parses the embedded attack list, in worksheet order.
func Catalog() ([]Attack, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(catalogRaw, &cf); err != nil {
		return nil, fmt.Errorf("parse attack catalog: %v", err)
	}
	return cf.Attacks, nil
}

// Find looks an attack up by name.
func Find(name string) (Attack, error) {
	attacks, err := Catalog()
	if err != nil {
		return Attack{}, err
	}
	for _, a := range attacks {
		if a.Name == name {
			return a, nil
		}
	}
	return Attack{}, fmt.Errorf("%w: %q", ErrorUnknownAttack, name)
}

// NeedsRules reports whether the argv template references the hashcat rules
// directory.
func (a Attack) NeedsRules() bool {
	for _, arg := range a.Args {
		if strings.Contains(arg, "{rules}") {
			return true
		}
	}
	return false
}

// Resolve fills the argv template in against a lab directory. rulesDir may
// be empty for attacks that do not use rules.
func (a Attack) Resolve(st *storage.Store, rulesDir, session string) ([]string, error) {
	if a.NeedsRules() && rulesDir == "" {
		return nil, fmt.Errorf("attack %s needs a hashcat rules directory", a.Name)
	}

	r := strings.NewReplacer(
		"{target}", st.Path(a.Target),
		"{wordlist}", st.Path(storage.WordlistFile),
		"{rules}", rulesDir,
		"{session}", session,
	)

	argv := make([]string, len(a.Args))
	for i, arg := range a.Args {
		argv[i] = r.Replace(arg)
	}
	return argv, nil
}
