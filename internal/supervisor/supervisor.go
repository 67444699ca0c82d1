package supervisor

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/connwatch/connwatch/internal/analyzer"
	"github.com/connwatch/connwatch/internal/findings"
	"github.com/connwatch/connwatch/pkg/shared/errors"
)

// SocketSource produces the findings for one IP family and transport.
type SocketSource interface {
	Run(ctx context.Context, ip findings.IPKind, transport findings.TransportKind) ([]findings.Finding, error)
}

// FindingAnalyzer annotates a batch of findings.
type FindingAnalyzer interface {
	Analyze(ctx context.Context, items []findings.Finding) ([]analyzer.AnalyzedFinding, error)
}

// ReportSink consumes the annotated findings of one run.
type ReportSink interface {
	Report(ctx context.Context, items []analyzer.AnalyzedFinding) error
}

// Supervisor composes one watcher, one analyzer and one reporter into a
// single pass: watch, analyze, report. There is no retry and no loop, a
// failed stage aborts the run.
type Supervisor struct {
	source    SocketSource
	analyzer  FindingAnalyzer
	sink      ReportSink
	ip        findings.IPKind
	transport findings.TransportKind
	logger    hclog.Logger
}

// New returns a Supervisor for the given IP family and transport.
func New(source SocketSource, analyzer FindingAnalyzer, sink ReportSink, ip findings.IPKind, transport findings.TransportKind, logger hclog.Logger) *Supervisor {
	return &Supervisor{
		source:    source,
		analyzer:  analyzer,
		sink:      sink,
		ip:        ip,
		transport: transport,
		logger:    logger,
	}
}

// Run executes the pipeline exactly once. label names the run in logs.
// An empty snapshot still flows through to the reporter, so document
// sinks always produce their artifact. Errors are attributed to the
// stage that raised them.
func (s *Supervisor) Run(ctx context.Context, label string) error {
	s.logger.Info("starting connection check", "label", label)

	items, err := s.source.Run(ctx, s.ip, s.transport)
	if err != nil {
		return errors.NewStageError("watch", err)
	}
	s.logger.Debug("watch stage finished", "label", label, "findings", len(items))

	analyzed, err := s.analyzer.Analyze(ctx, items)
	if err != nil {
		return errors.NewStageError("analyze", err)
	}

	if err := s.sink.Report(ctx, analyzed); err != nil {
		return errors.NewStageError("report", err)
	}

	s.logger.Info("connection check finished", "label", label, "findings", len(items))
	return nil
}
