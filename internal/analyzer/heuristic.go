package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/connwatch/connwatch/internal/askai"
	"github.com/connwatch/connwatch/internal/findings"
)

// Markers that identify a remote endpoint living on this host.
var loopbackMarkers = []string{"127.0.0.1", "::1"}

// HeuristicStrategy turns a finding into a natural-language question and
// delegates the risk judgment to a text-analysis backend. The backend's
// reply is attached to the finding verbatim.
type HeuristicStrategy struct {
	asker        askai.Asker
	localNetwork string
	logger       hclog.Logger
}

// NewHeuristicStrategy returns a strategy backed by the given asker.
// localNetwork is an address prefix of the surrounding LAN, remote
// endpoints matching it are treated as local to this host.
func NewHeuristicStrategy(asker askai.Asker, localNetwork string, logger hclog.Logger) *HeuristicStrategy {
	return &HeuristicStrategy{
		asker:        asker,
		localNetwork: localNetwork,
		logger:       logger,
	}
}

// AnalyzeItem asks the backend about one finding and returns its reply
// as free-text commentary. An empty reply is an analysis error, not a
// verdict: free-text annotations must carry commentary so reporters
// have something to render.
func (s *HeuristicStrategy) AnalyzeItem(ctx context.Context, finding findings.Finding) (Annotation, error) {
	question := s.buildQuestion(finding)
	s.logger.Debug("asking the analysis backend", "local", finding.LocalAddr, "remote", finding.RemoteAddr)

	answer, err := s.asker.Ask(ctx, question)
	if err != nil {
		return Annotation{}, err
	}
	if strings.TrimSpace(answer) == "" {
		return Annotation{}, fmt.Errorf("backend returned an empty reply")
	}
	return Annotation{Commentary: answer}, nil
}

func (s *HeuristicStrategy) buildQuestion(finding findings.Finding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A host has an open %s connection over %s.", finding.IPVersion, finding.Transport)
	fmt.Fprintf(&b, " The local socket is %s.", finding.LocalAddr)
	b.WriteString(" ")
	b.WriteString(s.describeRemote(finding.RemoteAddr))
	fmt.Fprintf(&b, " The connection state is %s.", finding.State)
	b.WriteString(" ")
	b.WriteString(describeProcess(finding))
	b.WriteString(" Is this connection suspicious from a security point of view? Answer briefly.")
	return b.String()
}

// describeRemote classifies the remote endpoint. The checks run in
// order: loopback marker, known local network prefix, unset socket,
// then anything else is an external endpoint.
func (s *HeuristicStrategy) describeRemote(remote string) string {
	switch {
	case containsLoopback(remote):
		return fmt.Sprintf("The remote socket %s is also opened on this host.", remote)
	case s.localNetwork != "" && strings.HasPrefix(remote, s.localNetwork):
		return fmt.Sprintf("The remote socket %s is also opened on this host.", remote)
	case remote == findings.EmptySocket:
		return "The remote socket is not set up."
	default:
		return fmt.Sprintf("The remote socket is %s.", remote)
	}
}

func containsLoopback(remote string) bool {
	for _, marker := range loopbackMarkers {
		if strings.Contains(remote, marker) {
			return true
		}
	}
	return false
}

func describeProcess(finding findings.Finding) string {
	if finding.PID == findings.PIDUnknown {
		return "The owning process is unknown."
	}
	if finding.ProcDetails == "" || finding.ProcDetails == findings.PIDUnknown {
		return fmt.Sprintf("It belongs to the process with PID %s.", finding.PID)
	}
	return fmt.Sprintf("It belongs to the process %s.", finding.ProcDetails)
}
