package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	log "github.com/visionmedia/go-cli-log"

	"github.com/rondev89/password-lab/tools"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the external cracking tools the lab drives",
}

var toolsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show where hashcat and john were found",
	Args:    cobra.ExactArgs(0),
	Run:     toolsList,
}

var toolsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail unless everything the catalog needs is installed",
	Args:  cobra.ExactArgs(0),
	RunE:  toolsCheck,
}

func init() {
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCheckCmd)
	rootCmd.AddCommand(toolsCmd)
}

func toolsList(_ *cobra.Command, _ []string) {
	for _, info := range tools.Detect(toolPaths()) {
		if !info.Available {
			log.Warn(fmt.Sprintf("%s: not found", info.Name))
			continue
		}

		version := info.Version
		if version == "" {
			version = "unknown version"
		}
		log.Info(info.Name, "%s (%s)", info.Path, version)
	}

	if dir, err := tools.LocateRules(globalCfg.RulesDir); err == nil {
		log.Info("rules", "%s", dir)
	} else {
		log.Warn("rules: no hashcat rules directory found")
	}
}

func toolsCheck(_ *cobra.Command, _ []string) error {
	var missing []string
	for _, info := range tools.Detect(toolPaths()) {
		if !info.Available {
			missing = append(missing, info.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", tools.ErrorToolUnavailable, strings.Join(missing, ", "))
	}

	if _, err := tools.LocateRules(globalCfg.RulesDir); err != nil {
		return err
	}

	log.Info("Tools", "%s", "everything the catalog needs is installed")
	return nil
}
