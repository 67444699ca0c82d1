//go:build linux

package watcher

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// tcpStates maps /proc/net state codes to kernel state names.
// Read-only after init.
var tcpStates = map[string]string{
	"01": "ESTABLISHED",
	"02": "SYN_SENT",
	"03": "SYN_RECV",
	"04": "FIN_WAIT1",
	"05": "FIN_WAIT2",
	"06": "TIME_WAIT",
	"07": "CLOSE",
	"08": "CLOSE_WAIT",
	"09": "LAST_ACK",
	"0A": "LISTEN",
	"0B": "CLOSING",
}

// procfsTables lists the table files read per socket kind.
// Read-only after init.
var procfsTables = map[string][]string{
	KindInet4: {"net/tcp", "net/udp"},
	KindInet6: {"net/tcp6", "net/udp6"},
	KindUnix:  {"net/unix"},
}

// ProcfsAPI reads the socket table straight from /proc, for hosts where the
// portable reader is undesirable.
type ProcfsAPI struct {
	root string
}

func newProcfsAPI() (SocketAPI, error) {
	return &ProcfsAPI{root: "/proc"}, nil
}

// Sockets parses the /proc tables for the given kind.
func (p *ProcfsAPI) Sockets(ctx context.Context, kind string) ([]Record, error) {
	tables, ok := procfsTables[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported socket kind %q", kind)
	}

	pids := p.socketInodePIDs()

	var records []Record
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := p.parseTable(filepath.Join(p.root, table), kind, pids)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// parseTable reads one /proc/net table. The first line is a header.
func (p *ProcfsAPI) parseTable(path, kind string, pids map[string]int32) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening socket table %s: %w", path, err)
	}
	defer f.Close()

	isStream := !strings.Contains(filepath.Base(path), "udp")

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Scan() // skip header

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())

		if kind == KindUnix {
			if rec, ok := parseUnixRow(fields, pids); ok {
				records = append(records, rec)
			}
			continue
		}

		if len(fields) < 10 {
			continue
		}

		localIP, localPort, err := parseHexAddr(fields[1])
		if err != nil {
			continue
		}
		remoteIP, remotePort, err := parseHexAddr(fields[2])
		if err != nil {
			continue
		}

		rec := Record{
			Type:       syscall.SOCK_DGRAM,
			LocalIP:    localIP,
			LocalPort:  localPort,
			RemoteIP:   remoteIP,
			RemotePort: remotePort,
			PID:        pids[fields[9]],
		}
		if isStream {
			rec.Type = syscall.SOCK_STREAM
			state, ok := tcpStates[strings.ToUpper(fields[3])]
			if !ok {
				state = "UNKNOWN"
			}
			rec.State = state
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading socket table %s: %w", path, err)
	}
	return records, nil
}

// parseUnixRow decodes one /proc/net/unix row. The path column is optional.
func parseUnixRow(fields []string, pids map[string]int32) (Record, bool) {
	if len(fields) < 7 {
		return Record{}, false
	}
	sockType, err := strconv.ParseUint(fields[4], 16, 32)
	if err != nil {
		return Record{}, false
	}

	rec := Record{
		Type: uint32(sockType),
		PID:  pids[fields[6]],
	}
	if len(fields) > 7 {
		rec.Path = fields[7]
	}
	return rec, true
}

// parseHexAddr decodes the kernel's ADDR:PORT hex notation. IPv4 addresses
// are one little-endian 32-bit group; IPv6 addresses are four such groups.
func parseHexAddr(s string) (string, uint32, error) {
	addrPart, portPart, ok := strings.Cut(s, ":")
	if !ok {
		return "", 0, fmt.Errorf("malformed socket address %q", s)
	}

	port, err := strconv.ParseUint(portPart, 16, 32)
	if err != nil {
		return "", 0, fmt.Errorf("malformed socket port %q: %w", portPart, err)
	}

	raw, err := hex.DecodeString(addrPart)
	if err != nil {
		return "", 0, fmt.Errorf("malformed socket address %q: %w", addrPart, err)
	}

	var ip net.IP
	switch len(raw) {
	case 4:
		ip = net.IP{raw[3], raw[2], raw[1], raw[0]}
	case 16:
		ip = make(net.IP, 16)
		for g := 0; g < 4; g++ {
			ip[g*4+0] = raw[g*4+3]
			ip[g*4+1] = raw[g*4+2]
			ip[g*4+2] = raw[g*4+1]
			ip[g*4+3] = raw[g*4+0]
		}
	default:
		return "", 0, fmt.Errorf("unexpected address length %d in %q", len(raw), addrPart)
	}

	return ip.String(), uint32(port), nil
}

// socketInodePIDs maps socket inodes to owning pids by walking /proc/<pid>/fd.
// Missing permissions leave sockets unattributed rather than failing the run.
func (p *ProcfsAPI) socketInodePIDs() map[string]int32 {
	pids := make(map[string]int32)

	procDirs, err := os.ReadDir(p.root)
	if err != nil {
		return pids
	}

	for _, dir := range procDirs {
		pid, err := strconv.ParseInt(dir.Name(), 10, 32)
		if err != nil {
			continue
		}

		fdDir := filepath.Join(p.root, dir.Name(), "fd")
		fds, err := os.ReadDir(fdDir)
		if err != nil {
			continue
		}

		for _, fd := range fds {
			link, err := os.Readlink(filepath.Join(fdDir, fd.Name()))
			if err != nil {
				continue
			}
			if strings.HasPrefix(link, "socket:[") && strings.HasSuffix(link, "]") {
				inode := strings.TrimSuffix(strings.TrimPrefix(link, "socket:["), "]")
				pids[inode] = int32(pid)
			}
		}
	}
	return pids
}
