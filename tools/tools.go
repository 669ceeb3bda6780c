// Package tools locates the external cracking executables the lab drives.
// It only ever reports what is installed; installing is the user's job.
package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// The two executables every exercise is written against.
const (
	Hashcat = "hashcat"
	John    = "john"
)

var (
	ErrorToolUnavailable = errors.New("required executable was not found")
	ErrorNoRulesDir      = errors.New("found no hashcat rules directory")
)

// Named returns the executables the lab expects, in worksheet order.
func Named() []string {
	return []string{Hashcat, John}
}

// Find resolves a tool to an executable path. An explicit configured path
// wins over a PATH lookup of the bare name. Nothing is touched on disk when
// the tool is absent.
func Find(name, configured string) (string, error) {
	candidate := configured
	if candidate == "" {
		candidate = name
	}

	path, err := exec.LookPath(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %s (looked for %q)", ErrorToolUnavailable, name, candidate)
	}
	return path, nil
}

// Info describes one external tool for the inventory listing.
type Info struct {
	Name      string
	Path      string
	Version   string
	Available bool
}

const versionProbeTimeout = 5 * time.Second

// Detect inventories the named tools. Version output is best-effort; some
// builds print it on stderr or not at all.
func Detect(configured map[string]string) []Info {
	var infos []Info
	for _, name := range Named() {
		info := Info{Name: name}

		path, err := Find(name, configured[name])
		if err != nil {
			infos = append(infos, info)
			continue
		}
		info.Path = path
		info.Available = true
		info.Version = probeVersion(path)
		infos = append(infos, info)
	}
	return infos
}

func probeVersion(path string) string {
	ctx, cancel := context.WithTimeout(context.Background(), versionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

// Conventional hashcat install locations, checked in order when no rules
// directory is configured.
var rulesDirCandidates = []string{
	"/usr/share/hashcat/rules",
	"/usr/local/share/hashcat/rules",
	"/usr/share/doc/hashcat/rules",
	"/opt/hashcat/rules",
}

// LocateRules finds the directory holding hashcat's stock rule files, used
// by the rule-based exercises.
func LocateRules(configured string) (string, error) {
	candidates := rulesDirCandidates
	if configured != "" {
		candidates = append([]string{configured}, candidates...)
	}

	for _, dir := range candidates {
		fi, err := os.Stat(dir)
		if err == nil && fi.IsDir() {
			return dir, nil
		}
	}

	return "", ErrorNoRulesDir
}

// RuleFile resolves a rule name like "best64.rule" inside the rules
// directory.
func RuleFile(rulesDir, name string) string {
	return filepath.Join(rulesDir, name)
}
