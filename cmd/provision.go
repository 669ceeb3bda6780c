package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	log "github.com/visionmedia/go-cli-log"

	"github.com/rondev89/password-lab/corpus"
	"github.com/rondev89/password-lab/runner"
	"github.com/rondev89/password-lab/storage"
	"github.com/rondev89/password-lab/utility"
)

var (
	corpusPath   string
	overwriteLab bool
	provisionYes bool
)

// provisionCmd represents the provision command
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Generate the lab: corpus, hash files and wordlist",
	Args:  cobra.ExactArgs(0),
	RunE:  provisionLab,
}

func provisionLab(_ *cobra.Command, _ []string) error {
	st, err := labStore()
	if err != nil {
		return err
	}

	entries := corpus.Default()
	if corpusPath != "" {
		entries, err = corpus.Load(corpusPath)
		if err != nil {
			return err
		}
	}

	overwrite := overwriteLab
	if !overwrite {
		existing := st.Existing()
		if len(existing) > 0 {
			accept := confirmer(provisionYes).Confirm(fmt.Sprintf(
				"Found %d existing lab %v under %s. Overwrite?",
				len(existing), utility.Pluralize("file", len(existing)), st.Root()))
			if !accept {
				return fmt.Errorf("%w: %s", storage.ErrorArtifactExists, st.Root())
			}
			overwrite = true
		}
	}

	if err := runner.Provision(st, entries, overwrite); err != nil {
		return err
	}

	log.Info("Provision", "lab ready under %s", st.Root())
	return nil
}

func init() {
	rootCmd.AddCommand(provisionCmd)

	provisionCmd.Flags().StringVar(&corpusPath, "corpus", "",
		"file with one password per line instead of the built-in sample corpus")
	provisionCmd.Flags().BoolVar(&overwriteLab, "overwrite",
		false, "replace existing lab files without asking")
	provisionCmd.Flags().BoolVar(&provisionYes, "yes",
		false, "answer yes to every prompt")
}
