// Command skillbook manages a personal library of executable engineering
// skills: markdown documents with structured metadata and marked,
// template-parameterized bash execution plans.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillbook/pkg/library"
	"github.com/jingkaihe/skillbook/pkg/logger"
	"github.com/jingkaihe/skillbook/pkg/presenter"
)

// engineErrorExitCode is the exit code for engine-level failures
// (malformed document, unbound variable, missing skill), distinct from the
// exit code of an executed command which is passed through as-is.
const engineErrorExitCode = 2

func init() {
	viper.SetEnvPrefix("SKILLBOOK")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillbook")
	viper.AddConfigPath(".")

	// Config file is optional.
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillbook",
	Short: "Manage a personal library of executable engineering skills",
	Long: `Skillbook is a knowledge base of reusable engineering recipes. Each skill
is a markdown file with YAML frontmatter (name, description, grade, tags,
pros, cons) and optional execution plans: bash blocks marked with the
` + "`<!-- SKILLBOOK:EXEC -->`" + ` sentinel, parameterized with {{variable}}
placeholders that are bound at execution time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return errors.Wrap(err, "invalid log level")
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func bindRootFlags(flags *pflag.FlagSet) {
	flags.String("library", "", "library root directory (default $HOME/.skillbook/library)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	flags.Bool("quiet", false, "suppress non-essential output")

	viper.BindPFlag("library", flags.Lookup("library"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
	viper.BindPFlag("quiet", flags.Lookup("quiet"))
}

func libraryRoot() (string, error) {
	if root := viper.GetString("library"); root != "" {
		return root, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, ".skillbook", "library"), nil
}

// loadLibrary loads the configured library root, surfacing per-file load
// failures as warnings rather than aborting.
func loadLibrary(ctx context.Context) (*library.Library, error) {
	root, err := libraryRoot()
	if err != nil {
		return nil, err
	}

	lib, err := library.Load(ctx, root)
	if err != nil {
		return nil, err
	}

	for _, le := range lib.Errors() {
		presenter.Warning(fmt.Sprintf("skipped %s: %v", le.Path, le.Err))
	}
	return lib, nil
}

func main() {
	bindRootFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		presenter.Error(err, "")
		os.Exit(engineErrorExitCode)
	}
}
