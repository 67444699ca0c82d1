package findings

import (
	"fmt"
	"net"
	"strconv"
)

// EmptySocket marks an endpoint the OS reported without address and port,
// such as the remote side of a listening socket.
const EmptySocket = "*:*"

// Endpoint is one side of a socket pair.
type Endpoint struct {
	Addr      string
	Port      uint32
	Transport TransportKind
}

// String renders host:port with IPv6 bracketing. The zero endpoint renders
// as the empty-socket marker.
func (e Endpoint) String() string {
	if e.Addr == "" && e.Port == 0 {
		return EmptySocket
	}
	return net.JoinHostPort(e.Addr, strconv.FormatUint(uint64(e.Port), 10))
}

// SocketPair couples the local and remote endpoints of one connection.
type SocketPair struct {
	Local  Endpoint
	Remote Endpoint
}

// NewSocketPair builds a pair, rejecting endpoints whose transport protocols
// disagree.
func NewSocketPair(local, remote Endpoint) (SocketPair, error) {
	if local.Transport != remote.Transport {
		return SocketPair{}, fmt.Errorf("transport mismatch between socket endpoints: local %s, remote %s", local.Transport, remote.Transport)
	}
	return SocketPair{Local: local, Remote: remote}, nil
}
