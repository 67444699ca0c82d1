package watcher

import (
	"context"
	"fmt"

	gopsnet "github.com/shirou/gopsutil/v4/net"
)

// GopsAPI reads the socket table through gopsutil and is the portable
// default source.
type GopsAPI struct{}

// NewGopsAPI constructs the default SocketAPI implementation.
func NewGopsAPI() *GopsAPI {
	return &GopsAPI{}
}

// Sockets returns the socket table snapshot for the given kind.
func (g *GopsAPI) Sockets(ctx context.Context, kind string) ([]Record, error) {
	stats, err := gopsnet.ConnectionsWithContext(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("reading %s socket table: %w", kind, err)
	}

	records := make([]Record, 0, len(stats))
	for _, st := range stats {
		rec := Record{
			Type:       st.Type,
			LocalIP:    st.Laddr.IP,
			LocalPort:  st.Laddr.Port,
			RemoteIP:   st.Raddr.IP,
			RemotePort: st.Raddr.Port,
			State:      st.Status,
			PID:        st.Pid,
		}
		if kind == KindUnix {
			// gopsutil carries the filesystem path in the local address
			rec.Path = st.Laddr.IP
			rec.LocalIP = ""
		}
		records = append(records, rec)
	}
	return records, nil
}
