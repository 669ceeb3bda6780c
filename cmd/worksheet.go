package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rondev89/password-lab/attack"
	"github.com/rondev89/password-lab/corpus"
	"github.com/rondev89/password-lab/digest"
	"github.com/rondev89/password-lab/storage"
)

// Store-relative name the worksheet is saved under with --write.
const worksheetFile = "worksheet.md"

var writeWorksheet bool

// worksheetCmd represents the worksheet command
var worksheetCmd = &cobra.Command{
	Use:   "worksheet",
	Short: "Print the exercise sheet for the provisioned lab",
	Args:  cobra.ExactArgs(0),
	RunE:  printWorksheet,
}

func init() {
	rootCmd.AddCommand(worksheetCmd)

	worksheetCmd.Flags().BoolVar(&writeWorksheet, "write",
		false, "also save the sheet as "+worksheetFile+" in the lab directory")
}

func printWorksheet(_ *cobra.Command, _ []string) error {
	st, err := labStore()
	if err != nil {
		return err
	}

	entries, err := st.ReadLines(storage.CorpusFile)
	if err != nil {
		return fmt.Errorf("no corpus in %s, run provision first (%v)", st.Root(), err)
	}

	attacks, err := attack.Catalog()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# Password cracking practice lab\n\n")
	b.WriteString("Lab directory: " + st.Root() + "\n")
	b.WriteString("Every hash file below was derived locally from " +
		storage.CorpusFile + "; work through the exercises in order.\n\n")

	for i, a := range attacks {
		argv, err := displayArgv(st, a)
		if err != nil {
			return err
		}

		b.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, a.Name))
		b.WriteString(a.Summary + ".\n")
		b.WriteString(a.Lesson + "\n\n")
		b.WriteString("    " + a.Tool + " " + strings.Join(argv, " ") + "\n\n")
		b.WriteString("or: passlab crack " + a.Name + "\n")

		if a.Preview != "" {
			matches, err := attack.PreviewDictionary(st, digest.Algorithm(a.Preview))
			if err != nil {
				return err
			}
			plaintexts := make([]string, len(matches))
			for j, m := range matches {
				plaintexts[j] = m.Plaintext
			}
			b.WriteString("Should recover: " + strings.Join(plaintexts, ", ") + "\n")
		}
		b.WriteString("\n")
	}

	if err := appendAnswerKey(&b, st, entries); err != nil {
		return err
	}

	if writeWorksheet {
		lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
		if err := st.WriteLines(worksheetFile, lines, true); err != nil {
			return err
		}
	}

	fmt.Print(b.String())
	return nil
}

// appendAnswerKey splits the corpus into what a straight dictionary run
// recovers and what is left for the rule and mask exercises, using the md5
// artifact as the cross-reference since every hash file covers the same
// corpus.
func appendAnswerKey(b *strings.Builder, st *storage.Store, entries []string) error {
	matches, err := attack.PreviewDictionary(st, digest.MD5)
	if err != nil {
		return err
	}

	recovered := make(map[string]bool, len(matches))
	for _, m := range matches {
		recovered[m.Plaintext] = true
	}

	real := corpus.NonEmpty(entries)

	b.WriteString("## Answer key\n\n")
	b.WriteString("Falls to a straight dictionary attack:\n")
	for _, e := range real {
		if recovered[e] {
			b.WriteString("- " + e + "\n")
		}
	}

	b.WriteString("\nLeft for the rule and mask exercises:\n")
	for _, e := range real {
		if !recovered[e] {
			b.WriteString("- " + e + "\n")
		}
	}

	b.WriteString("\nShadow file accounts:\n")
	for i, e := range real {
		b.WriteString("- " + storage.ShadowLabel(i+1) + " = " + e + "\n")
	}

	return nil
}
