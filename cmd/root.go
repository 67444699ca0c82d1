package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/connwatch/connwatch/cmd/check"
	"github.com/connwatch/connwatch/cmd/unixsockets"
	"github.com/connwatch/connwatch/cmd/version"
	"github.com/connwatch/connwatch/pkg/shared/config"
	"github.com/connwatch/connwatch/pkg/shared/files"
)

const defaultConfigFile = "config.yml"

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "connwatch [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Connwatch inspects the open network sockets of this host.",
		Long: `Connwatch takes a snapshot of the host's open network sockets, asks a
text-analysis backend about every connection and reports the verdicts
to the console or to a standalone HTML document.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(check.CheckCmd)
	rootCmd.AddCommand(unixsockets.UnixSocketsCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = defaultConfigFile
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// No config file around, run on defaults.
			AppConfig = config.DefaultConfig()
			check.Init(AppConfig)
			unixsockets.Init(AppConfig)
			return
		}
	} else if err := files.ValidatePath(path); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config file %q: %v\n", path, err)
		os.Exit(1)
	}

	var err error
	AppConfig, err = config.NewConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %q: %v\n", path, err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	check.Init(AppConfig)
	unixsockets.Init(AppConfig)
}
