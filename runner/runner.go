// Package runner sequences the lab pipeline: corpus in, artifacts out, then
// gated invocations of the external cracking tools.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	log "github.com/visionmedia/go-cli-log"

	"github.com/rondev89/password-lab/attack"
	"github.com/rondev89/password-lab/corpus"
	"github.com/rondev89/password-lab/digest"
	"github.com/rondev89/password-lab/storage"
	"github.com/rondev89/password-lab/tools"
	"github.com/rondev89/password-lab/utility"
)

var ErrorToolInvocation = errors.New("cracking tool exited with an error")

// Provision derives every artifact from the corpus and writes the store in
// one pass. Any corpus, derivation or write failure aborts the run so a
// problem surfaces immediately instead of producing a half-usable lab;
// overwrite carries the caller's explicit authorization to replace files.
func Provision(st *storage.Store, entries []string, overwrite bool) error {
	if err := st.WriteCorpus(entries, overwrite); err != nil {
		return err
	}

	real := corpus.NonEmpty(entries)

	for _, algo := range digest.FastAlgorithms {
		column := make([]string, 0, len(real))
		for _, entry := range real {
			h, err := digest.FastHex(algo, entry)
			if err != nil {
				return err
			}
			column = append(column, h)
		}
		if err := st.WriteHashColumn(string(algo), column, overwrite); err != nil {
			return err
		}
	}

	shadow, err := shadowColumn(digest.SHA512Crypt, real)
	if err != nil {
		return err
	}
	if err := st.WriteShadowColumn(storage.StemSHA512Crypt, shadow, overwrite); err != nil {
		return err
	}

	shadow, err = shadowColumn(digest.Bcrypt, real)
	if err != nil {
		return err
	}
	if err := st.WriteShadowColumn(storage.StemBcrypt, shadow, overwrite); err != nil {
		return err
	}

	shadow, err = shadowColumn(digest.Yescrypt, real)
	if err != nil {
		return err
	}
	if err := st.WriteShadowColumn(storage.StemYescrypt, shadow, overwrite); err != nil {
		return err
	}

	return st.WriteWordlist(overwrite)
}

func shadowColumn(derive func(string) (string, error), entries []string) ([]string, error) {
	column := make([]string, 0, len(entries))
	for _, entry := range entries {
		encoded, err := derive(entry)
		if err != nil {
			return nil, err
		}
		column = append(column, encoded)
	}
	return column, nil
}

// RunAttack resolves and executes one catalog entry. The tool is located
// before anything else so a missing executable never touches the lab
// directory; the invocation itself runs in the foreground for as long as it
// takes, inheriting the terminal, and is killed when ctx is canceled.
// Declining the confirmation skips the attack without error.
func RunAttack(ctx context.Context, st *storage.Store, a attack.Attack, paths map[string]string, rulesDir string, confirm utility.Confirmer) error {
	binPath, err := tools.Find(a.Tool, paths[a.Tool])
	if err != nil {
		return err
	}

	resolvedRules := ""
	if a.NeedsRules() {
		resolvedRules, err = tools.LocateRules(rulesDir)
		if err != nil {
			return err
		}
	}

	session := "passlab-" + uuid.NewString()[:8]
	argv, err := a.Resolve(st, resolvedRules, session)
	if err != nil {
		return err
	}

	log.Info(a.Name, "%s %s", binPath, strings.Join(argv, " "))

	if !confirm.Confirm(fmt.Sprintf("Run %s now?", a.Name)) {
		log.Info(a.Name, "skipped")
		return nil
	}

	cmd := exec.CommandContext(ctx, binPath, argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrorToolInvocation, a.Name, err)
	}

	log.Info(a.Name, "finished")
	return nil
}
