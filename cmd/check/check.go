package check

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/connwatch/connwatch/internal/analyzer"
	"github.com/connwatch/connwatch/internal/askai"
	"github.com/connwatch/connwatch/internal/findings"
	"github.com/connwatch/connwatch/internal/procinfo"
	"github.com/connwatch/connwatch/internal/reporter"
	"github.com/connwatch/connwatch/internal/supervisor"
	"github.com/connwatch/connwatch/internal/watcher"
	"github.com/connwatch/connwatch/pkg/shared/config"
	"github.com/connwatch/connwatch/pkg/shared/errors"
	"github.com/connwatch/connwatch/pkg/shared/files"
	"github.com/connwatch/connwatch/pkg/shared/logger"
)

// Report type identifiers accepted by the check command.
const (
	ReportTypeConsole = "Console"
	ReportTypeHTML    = "Html"
)

const (
	checkLabel         = "IP4:TCP"
	defaultReportTitle = "Connwatch Report"
)

// RunOptionsCheck holds the arguments for the check command.
type RunOptionsCheck struct {
	ReportType string
	OutputPath string
	Title      string
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	checkOptions      RunOptionsCheck
	exampleCheckUsage = `  # Check IP4/TCP connections and print the verdicts to the console
  connwatch check

  # Render the verdicts as a standalone HTML document
  connwatch check --report-type Html --output /tmp/reports

  # Use a custom title for the HTML report
  connwatch check --report-type Html --output /tmp/reports --title "Office workstation"`
)

// CheckCmd represents the check command.
var CheckCmd = &cobra.Command{
	Use:                   "check [--report-type TYPE] [--output/-o PATH] [--title TITLE]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCheckUsage,
	Short:                 "Runs IP4 connection checks and reports the verdicts",
	RunE:                  runCheckCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runCheckCommand executes the check command.
func runCheckCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-check")

	if err := validateCheckArgs(&checkOptions); err != nil {
		logger.Error("invalid check arguments", "error", err)
		return err
	}

	pipeline, err := buildPipeline(AppConfig, &checkOptions, logger)
	if err != nil {
		logger.Error("failed to assemble the pipeline", "error", err)
		return err
	}

	if err := pipeline.Run(cmd.Context(), checkLabel); err != nil {
		logger.Error("check command failed", "error", err)
		return err
	}

	logger.Info("check command completed successfully")
	return nil
}

// buildPipeline wires a watcher, an analyzer and a reporter into a
// supervisor according to the configuration and command arguments.
func buildPipeline(cfg *config.Config, options *RunOptionsCheck, logger hclog.Logger) (*supervisor.Supervisor, error) {
	api, err := watcher.NewSocketAPI(cfg.Watcher.Source)
	if err != nil {
		return nil, err
	}
	source := watcher.New(api, logger)

	strategy, err := newStrategy(cfg, logger)
	if err != nil {
		return nil, err
	}
	worker := analyzer.New(
		strategy,
		procinfo.NewPsResolver(logger),
		cfg.Analyzer.Workers,
		time.Duration(cfg.Analyzer.RequestTimeout),
		logger,
	)

	sink, err := newReporter(options, logger)
	if err != nil {
		return nil, err
	}

	return supervisor.New(source, worker, sink, findings.IP4, findings.TCP, logger), nil
}

// newStrategy selects the analysis strategy configured for this run.
func newStrategy(cfg *config.Config, logger hclog.Logger) (analyzer.Strategy, error) {
	switch cfg.Analyzer.Strategy {
	case config.StrategyNoop:
		return &analyzer.NoopStrategy{Flag: true}, nil
	case config.StrategyHeuristic:
		asker, err := newAsker(cfg, logger)
		if err != nil {
			return nil, err
		}
		return analyzer.NewHeuristicStrategy(asker, cfg.Analyzer.LocalNetwork, logger), nil
	default:
		return nil, errors.NewInvalidOptionError("analyzer strategy", cfg.Analyzer.Strategy, config.StrategyHeuristic, config.StrategyNoop)
	}
}

// newAsker selects the text-analysis backend for the heuristic strategy.
func newAsker(cfg *config.Config, logger hclog.Logger) (askai.Asker, error) {
	switch cfg.Analyzer.Backend {
	case config.BackendOpenAI:
		return askai.NewOpenAIAsker(cfg, logger)
	case config.BackendOllama:
		return askai.NewOllamaAsker(cfg, logger), nil
	default:
		return nil, errors.NewInvalidOptionError("analyzer backend", cfg.Analyzer.Backend, config.BackendOpenAI, config.BackendOllama)
	}
}

// newReporter builds the report sink for the requested report type.
func newReporter(options *RunOptionsCheck, logger hclog.Logger) (supervisor.ReportSink, error) {
	switch options.ReportType {
	case ReportTypeConsole:
		return reporter.NewConsoleReporter(os.Stdout, logger), nil
	case ReportTypeHTML:
		runID := uuid.New().String()
		outputPath := config.SetThen(options.OutputPath, ".")

		fullPath, folder, err := files.DetermineFileFullPath(outputPath, fmt.Sprintf("connwatch-report-%s.html", runID))
		if err != nil {
			return nil, err
		}
		if err := files.CreateFolderIfNotExists(folder); err != nil {
			return nil, err
		}

		title := config.SetThen(options.Title, defaultReportTitle)
		return reporter.NewHTMLReporter(fullPath, title, runID, logger), nil
	default:
		return nil, errors.NewInvalidOptionError("report-type", options.ReportType, ReportTypeConsole, ReportTypeHTML)
	}
}

// Initialize flags for the check command.
func init() {
	CheckCmd.Flags().StringVar(&checkOptions.ReportType, "report-type", ReportTypeConsole, "Type of report: Console or Html.")
	CheckCmd.Flags().StringVarP(&checkOptions.OutputPath, "output", "o", "", "Path to the file or directory where the HTML report will be saved.")
	CheckCmd.Flags().StringVar(&checkOptions.Title, "title", "", "Title for the generated HTML report.")
	CheckCmd.Flags().BoolP("help", "h", false, "Show help for the check command.")
}
