package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	log "github.com/visionmedia/go-cli-log"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/rondev89/password-lab/storage"
	"github.com/rondev89/password-lab/tools"
	"github.com/rondev89/password-lab/utility"
)

var globalCfg config

var configFileName = ".passlab"
var cfgFile string
var defaultCfgPath string

// Name of the lab directory under $HOME when none is configured.
const defaultLabDirName = "passlab-lab"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "passlab",
	Short: "Provision and run a local password-cracking practice lab",
	Long: `passlab sets up a self-contained password-cracking practice lab: a small
plaintext corpus, hash files derived from it in several formats (raw
md5/sha256/ntlm dumps plus sha512-crypt, bcrypt and yescrypt shadow files)
and a wordlist, then drives hashcat and John the Ripper against those
files through a catalog of canned exercises.

Everything the tools attack was generated locally by this program from
its own corpus. Nothing is downloaded and no outside system is touched.`,
	PersistentPreRunE: preRun,
}

func preRun(cmd *cobra.Command, args []string) error {
	return unmarshalConfig()
}

func unmarshalConfig() error {
	return viper.Unmarshal(&globalCfg)
}

// labDir resolves the configured lab directory without creating anything.
func labDir() (string, error) {
	if globalCfg.LabDir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, defaultLabDirName), nil
	}

	return homedir.Expand(globalCfg.LabDir)
}

// labStore opens the lab directory, creating it if needed.
func labStore() (*storage.Store, error) {
	dir, err := labDir()
	if err != nil {
		return nil, err
	}
	return storage.New(dir)
}

// toolPaths maps each tool to its configured executable path, empty meaning
// a plain PATH lookup.
func toolPaths() map[string]string {
	return map[string]string{
		tools.Hashcat: globalCfg.HashcatPath,
		tools.John:    globalCfg.JohnPath,
	}
}

// confirmer picks how gated actions get authorized: --yes style flags turn
// the prompt off, everything else asks on stdin.
func confirmer(assumeYes bool) utility.Confirmer {
	if assumeYes {
		return utility.AlwaysYes{}
	}
	return utility.InteractivePrompt{}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err == nil {
		os.Exit(0)
	} else {
		log.Error(err)
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is $HOME/.passlab.yaml)",
	)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	changesMade := false

	cfgPath := ""

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		cfgPath = cfgFile
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".passlab" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(configFileName)

		cfgPath = fmt.Sprintf("%s/%s.yaml", home, configFileName)
		defaultCfgPath = cfgPath
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; need to create one
			fmt.Println("Config was not found. " +
				"If you do not want to create it, rerun the program with --config " +
				"to use a config file in a custom location")
			err = generateConfig()

			if err != nil {
				log.Error(err)
				os.Exit(-1)
			} else {
				changesMade = true
			}
		} else {
			// Config file was found but another error was produced
			fmt.Println("Cannot handle error", err.Error())
			os.Exit(-1)
		}
	}

	// Config was found or created
	// Verify that we have the necessary information
	if getMissingConf() {
		changesMade = true
	}

	// Write changes made
	if changesMade {
		_, err := os.Stat(cfgPath)
		if !os.IsExist(err) {
			if _, err := os.Create(cfgPath); err != nil { // perm 0666
				log.Error(err)
			}
		}
		if err := viper.WriteConfig(); err != nil {
			log.Error(err)
		}
	}
}
