package unixsockets

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/connwatch/connwatch/internal/watcher"
	"github.com/connwatch/connwatch/pkg/shared/config"
	"github.com/connwatch/connwatch/pkg/shared/logger"
)

// AppConfig holds the global configuration shared by the command.
var AppConfig *config.Config

// UnixSocketsCmd represents the unix-sockets command. It lists the unix
// domain sockets open on this host as plain lines, without the analysis
// pipeline behind the check command.
var UnixSocketsCmd = &cobra.Command{
	Use:                   "unix-sockets",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Lists the unix domain sockets open on this host",
	RunE:                  runUnixSocketsCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runUnixSocketsCommand executes the unix-sockets command.
func runUnixSocketsCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-unix-sockets")

	api, err := watcher.NewSocketAPI(AppConfig.Watcher.Source)
	if err != nil {
		logger.Error("failed to initialize the socket source", "error", err)
		return err
	}

	lines, err := watcher.New(api, logger).UnixSockets(cmd.Context())
	if err != nil {
		logger.Error("unix-sockets command failed", "error", err)
		return err
	}

	for _, line := range lines {
		fmt.Println(line)
	}

	logger.Info("unix-sockets command completed successfully", "sockets", len(lines))
	return nil
}
