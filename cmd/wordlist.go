package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	log "github.com/visionmedia/go-cli-log"

	"github.com/rondev89/password-lab/storage"
	"github.com/rondev89/password-lab/utility"
)

// wordlistCmd represents the wordlist command
var wordlistCmd = &cobra.Command{
	Use:     "wordlist",
	Aliases: []string{"dict", "w"},
	Short:   "Inspect the built-in dictionary the attacks run with",
}

var wordlistShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the wordlist, one entry per line",
	Args:  cobra.ExactArgs(0),
	Run:   wordlistShow,
}

func init() {
	wordlistCmd.AddCommand(wordlistShowCmd)
	rootCmd.AddCommand(wordlistCmd)
}

func wordlistShow(_ *cobra.Command, _ []string) {
	words := storage.Wordlist()
	for _, w := range words {
		fmt.Println(w)
	}

	log.Info("Wordlist", "%d %v", len(words), utility.Pluralize("word", len(words)))
}
