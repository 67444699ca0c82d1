package watcher

import (
	"context"

	"github.com/connwatch/connwatch/pkg/shared/config"
	"github.com/connwatch/connwatch/pkg/shared/errors"
)

// Socket table kinds understood by every SocketAPI implementation.
const (
	KindInet4 = "inet4"
	KindInet6 = "inet6"
	KindUnix  = "unix"
)

// Record is one raw socket table row as the OS reports it.
type Record struct {
	Type       uint32 // SOCK_STREAM or SOCK_DGRAM
	LocalIP    string
	LocalPort  uint32
	RemoteIP   string
	RemotePort uint32
	State      string
	PID        int32  // 0 when the OS cannot attribute the socket
	Path       string // unix sockets only
}

// SocketAPI is the OS collaborator behind the watcher. Implementations take
// a read-only snapshot of the socket table for one kind.
type SocketAPI interface {
	Sockets(ctx context.Context, kind string) ([]Record, error)
}

// NewSocketAPI picks the socket table reader for the configured source.
func NewSocketAPI(source string) (SocketAPI, error) {
	switch source {
	case config.SourceGops:
		return NewGopsAPI(), nil
	case config.SourceProcfs:
		return newProcfsAPI()
	default:
		return nil, errors.NewInvalidOptionError("watcher source", source, config.SourceGops, config.SourceProcfs)
	}
}
