package check

import (
	"fmt"

	"github.com/connwatch/connwatch/pkg/shared/errors"
)

// validateCheckArgs validates the arguments provided to the check command.
// Report types are matched exactly, so "html" or "console" are rejected.
func validateCheckArgs(options *RunOptionsCheck) error {
	switch options.ReportType {
	case ReportTypeConsole:
		if options.OutputPath != "" {
			return fmt.Errorf("the 'output' flag can only be used with the %s report type", ReportTypeHTML)
		}
		if options.Title != "" {
			return fmt.Errorf("the 'title' flag can only be used with the %s report type", ReportTypeHTML)
		}
	case ReportTypeHTML:
	default:
		return errors.NewInvalidOptionError("report-type", options.ReportType, ReportTypeConsole, ReportTypeHTML)
	}
	return nil
}
