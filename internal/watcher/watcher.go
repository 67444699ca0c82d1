package watcher

import (
	"context"
	"fmt"
	"strconv"
	"syscall"

	"github.com/hashicorp/go-hclog"

	"github.com/connwatch/connwatch/internal/findings"
	"github.com/connwatch/connwatch/pkg/shared/errors"
)

// ipKinds maps the supported address families to socket table kinds.
// Read-only after init.
var ipKinds = map[findings.IPKind]string{
	findings.IP4: KindInet4,
	findings.IP6: KindInet6,
}

// transportKinds maps the supported transports to kernel socket types.
// Read-only after init.
var transportKinds = map[findings.TransportKind]uint32{
	findings.TCP: syscall.SOCK_STREAM,
	findings.UDP: syscall.SOCK_DGRAM,
}

// Watcher takes one read-only snapshot of the host socket table and
// normalizes it into findings.
type Watcher struct {
	api    SocketAPI
	logger hclog.Logger
}

// New returns a Watcher backed by the given socket table reader.
func New(api SocketAPI, logger hclog.Logger) *Watcher {
	return &Watcher{
		api:    api,
		logger: logger,
	}
}

// Run snapshots the socket table for one address family and transport.
// Both kind arguments are validated before the OS is touched; any OS failure
// aborts the whole run with no partial result.
func (w *Watcher) Run(ctx context.Context, ip findings.IPKind, transport findings.TransportKind) ([]findings.Finding, error) {
	kind, ok := ipKinds[ip]
	if !ok {
		return nil, errors.NewInvalidOptionError("ip kind", string(ip), string(findings.IP4), string(findings.IP6))
	}
	sockType, ok := transportKinds[transport]
	if !ok {
		return nil, errors.NewInvalidOptionError("transport kind", string(transport), string(findings.TCP), string(findings.UDP))
	}

	w.logger.Debug("snapshotting socket table", "kind", kind, "transport", transport)
	records, err := w.api.Sockets(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("socket table snapshot for %s failed: %w", kind, err)
	}

	result := make([]findings.Finding, 0, len(records))
	for _, rec := range records {
		if rec.Type != sockType {
			continue
		}
		finding, err := newFinding(ip, transport, rec)
		if err != nil {
			return nil, fmt.Errorf("normalizing socket record: %w", err)
		}
		result = append(result, finding)
	}
	w.logger.Info("socket table snapshot complete", "kind", kind, "transport", transport, "findings", len(result))
	return result, nil
}

// UnixSockets lists Unix domain sockets as formatted strings. No findings
// are built for them.
func (w *Watcher) UnixSockets(ctx context.Context) ([]string, error) {
	records, err := w.api.Sockets(ctx, KindUnix)
	if err != nil {
		return nil, fmt.Errorf("unix socket table snapshot failed: %w", err)
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		path := rec.Path
		if path == "" {
			path = findings.PIDUnknown
		}
		lines = append(lines, fmt.Sprintf("unix; Path:%s; ProcessID:%s", path, pidLabel(rec.PID)))
	}
	return lines, nil
}

// newFinding normalizes one socket record into a finding.
func newFinding(ip findings.IPKind, transport findings.TransportKind, rec Record) (findings.Finding, error) {
	local := findings.Endpoint{Addr: rec.LocalIP, Port: rec.LocalPort, Transport: transport}
	remote := findings.Endpoint{Transport: transport}
	if !remoteUnset(rec) {
		remote.Addr = rec.RemoteIP
		remote.Port = rec.RemotePort
	}

	pair, err := findings.NewSocketPair(local, remote)
	if err != nil {
		return findings.Finding{}, err
	}

	return findings.Finding{
		IPVersion:   ip,
		Transport:   transport,
		LocalAddr:   pair.Local.String(),
		RemoteAddr:  pair.Remote.String(),
		State:       normalizeState(transport, rec.State),
		PID:         pidLabel(rec.PID),
		ProcDetails: findings.PIDUnknown,
	}, nil
}

// remoteUnset reports whether the OS left the remote side unbound, as it
// does for listening and unconnected UDP sockets.
func remoteUnset(rec Record) bool {
	if rec.RemotePort != 0 {
		return false
	}
	switch rec.RemoteIP {
	case "", "*", "0.0.0.0", "::":
		return true
	}
	return false
}

// normalizeState maps stateless sockets to NONE: non-TCP sockets carry
// no state, and so do empty strings. Unrecognized states flow through.
func normalizeState(transport findings.TransportKind, state string) findings.ConnState {
	if transport != findings.TCP || state == "" {
		return findings.StateNone
	}
	return findings.ConnState(state)
}

// pidLabel renders a pid with the unattributed sentinel.
func pidLabel(pid int32) string {
	if pid <= 0 {
		return findings.PIDUnknown
	}
	return strconv.FormatInt(int64(pid), 10)
}
