package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rondev89/password-lab/utility"
)

// hashesCmd represents the hashes command
var hashesCmd = &cobra.Command{
	Use:     "hashes",
	Aliases: []string{"h"},
	Short:   "Inspect the derived hash files",
}

var hashesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List hash files available for cracking",
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(0),
	RunE:    hashesList,
}

func init() {
	hashesCmd.AddCommand(hashesListCmd)
	rootCmd.AddCommand(hashesCmd)
}

func hashesList(_ *cobra.Command, _ []string) error {
	st, err := labStore()
	if err != nil {
		return err
	}

	infos, err := st.ListHashFiles()
	if err != nil {
		return err
	}

	fmt.Printf("Found a total of [%d] %v\n", len(infos), utility.Pluralize("file", len(infos)))
	// Print out the files
	for _, info := range infos {
		fmt.Printf("- %s: %d %v, %d bytes\n",
			info.Name, info.Lines, utility.Pluralize("record", info.Lines), info.Bytes)
	}

	return nil
}
