package analyzer

import (
	"context"

	"github.com/connwatch/connwatch/internal/findings"
)

// NoopStrategy marks every finding with a fixed verdict and never
// calls out anywhere. Useful for smoke runs and as a pipeline stub.
type NoopStrategy struct {
	Flag bool
}

// AnalyzeItem returns the fixed verdict for any finding.
func (s *NoopStrategy) AnalyzeItem(_ context.Context, _ findings.Finding) (Annotation, error) {
	return Annotation{Flagged: s.Flag}, nil
}
