package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCheckArgs(t *testing.T) {
	tests := []struct {
		name    string
		options RunOptionsCheck
		wantErr string
	}{
		{
			// valid: connwatch check
			name:    "console report by default",
			options: RunOptionsCheck{ReportType: ReportTypeConsole},
		},
		{
			// valid: connwatch check --report-type Html -o /tmp/reports --title "Office workstation"
			name: "html report with output and title",
			options: RunOptionsCheck{
				ReportType: ReportTypeHTML,
				OutputPath: "/tmp/reports",
				Title:      "Office workstation",
			},
		},
		{
			name:    "unknown report type",
			options: RunOptionsCheck{ReportType: "Pdf"},
			wantErr: `invalid report-type "Pdf", allowed values: Console, Html`,
		},
		{
			name:    "report types are case sensitive",
			options: RunOptionsCheck{ReportType: "html"},
			wantErr: `invalid report-type "html", allowed values: Console, Html`,
		},
		{
			name:    "output flag requires the html report",
			options: RunOptionsCheck{ReportType: ReportTypeConsole, OutputPath: "/tmp/reports"},
			wantErr: "the 'output' flag can only be used with the Html report type",
		},
		{
			name:    "title flag requires the html report",
			options: RunOptionsCheck{ReportType: ReportTypeConsole, Title: "Office workstation"},
			wantErr: "the 'title' flag can only be used with the Html report type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCheckArgs(&tt.options)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
