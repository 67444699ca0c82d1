package askai

import "context"

// Asker is the text-analysis collaborator: one question in, one answer out.
// Implementations are synchronous and must honor context cancellation.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}
