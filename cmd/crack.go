package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	log "github.com/visionmedia/go-cli-log"

	"github.com/rondev89/password-lab/attack"
	"github.com/rondev89/password-lab/runner"
	"github.com/rondev89/password-lab/storage"
	"github.com/rondev89/password-lab/tools"
	"github.com/rondev89/password-lab/utility"
)

const NoAttackSelectedError = "nothing selected; name attacks or pass --all"

var (
	runAllAttacks  bool
	crackYes       bool
	previewAttacks bool
)

// crackCmd represents the crack command
var crackCmd = &cobra.Command{
	Use:   "crack [attack]...",
	Short: "Run catalog attacks against the lab's own hash files",
	Args:  cobra.ArbitraryArgs,
	RunE:  runCrack,
}

var crackListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the attacks in the catalog",
	Args:    cobra.ExactArgs(0),
	RunE:    crackList,
}

func init() {
	crackCmd.AddCommand(crackListCmd)
	rootCmd.AddCommand(crackCmd)

	crackCmd.Flags().BoolVar(&runAllAttacks, "all",
		false, "run every attack in the catalog, in worksheet order")
	crackCmd.Flags().BoolVar(&crackYes, "yes",
		false, "skip the per-attack confirmation prompt")
	crackCmd.Flags().BoolVar(&previewAttacks, "preview",
		false, "print the resolved command lines without running anything")
}

func runCrack(cmd *cobra.Command, args []string) error {
	selected, err := selectAttacks(args)
	if err != nil {
		return err
	}

	st, err := labStore()
	if err != nil {
		return err
	}

	if previewAttacks {
		return previewSelection(st, selected)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	conf := confirmer(crackYes)

	failures := 0
	for _, a := range selected {
		err := runner.RunAttack(ctx, st, a, toolPaths(), globalCfg.RulesDir, conf)
		switch {
		case err == nil:
		case errors.Is(err, runner.ErrorToolInvocation),
			errors.Is(err, tools.ErrorToolUnavailable),
			errors.Is(err, tools.ErrorNoRulesDir):
			// Keep going; one broken tool shouldn't block the rest of the
			// worksheet.
			log.Warn(err.Error())
			failures++
		default:
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d %v did not complete",
			failures, len(selected), utility.Pluralize("attack", len(selected)))
	}
	return nil
}

func selectAttacks(names []string) ([]attack.Attack, error) {
	if runAllAttacks {
		return attack.Catalog()
	}

	if len(names) == 0 {
		return nil, errors.New(NoAttackSelectedError)
	}

	selected := make([]attack.Attack, 0, len(names))
	for _, name := range names {
		a, err := attack.Find(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, a)
	}
	return selected, nil
}

func previewSelection(st *storage.Store, selected []attack.Attack) error {
	for _, a := range selected {
		argv, err := displayArgv(st, a)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", a.Name, a.Summary)
		fmt.Printf("  $ %s %s\n", a.Tool, strings.Join(argv, " "))
	}
	return nil
}

// displayArgv resolves an attack's command line for printing only. A rules
// directory that can't be found becomes a visible placeholder instead of an
// error, since nothing is executed.
func displayArgv(st *storage.Store, a attack.Attack) ([]string, error) {
	rulesDir := "<rules-dir>"
	if dir, err := tools.LocateRules(globalCfg.RulesDir); err == nil {
		rulesDir = dir
	}

	return a.Resolve(st, rulesDir, "passlab-preview")
}

func crackList(_ *cobra.Command, _ []string) error {
	attacks, err := attack.Catalog()
	if err != nil {
		return err
	}

	fmt.Printf("Found a total of [%d] %v\n", len(attacks), utility.Pluralize("attack", len(attacks)))
	for _, a := range attacks {
		fmt.Printf("- %s (%s): %s\n", a.Name, a.Tool, a.Summary)
	}

	return nil
}
