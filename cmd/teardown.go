package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	log "github.com/visionmedia/go-cli-log"

	"github.com/rondev89/password-lab/storage"
	"github.com/rondev89/password-lab/utility"
)

// teardownCmd represents the teardown command
var teardownCmd = &cobra.Command{
	Use:   "teardown",
	Short: "Delete the lab directory. Use conf clean to remove the configuration file.",
	Args:  cobra.ExactArgs(0),
	RunE:  tearDown,
}

var force bool

func tearDown(cmd *cobra.Command, args []string) error {
	dir, err := labDir()
	if err != nil {
		return err
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Info("Teardown", "no lab directory at %s", dir)
		return nil
	}

	if !force {
		accept := utility.GetBoolean(fmt.Sprintf(
			"This will delete %s and everything in it. "+
				"This operation cannot be reversed. Proceed?", dir))
		if !accept {
			return nil
		}
	}

	st, err := storage.New(dir)
	if err != nil {
		return err
	}
	if err := st.Remove(); err != nil {
		return err
	}

	log.Info("Teardown", "removed %s", dir)
	return nil
}

func init() {
	rootCmd.AddCommand(teardownCmd)
	teardownCmd.Flags().BoolVar(&force, "force", false, "used to force teardown, avoid prompt")
}
