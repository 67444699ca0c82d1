//go:build linux

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tcpHeader = "  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode\n"

func writeProcFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestProcRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeProcFile(t, root, "net/tcp", tcpHeader+
		"   0: 0100007F:0CEA 00000000:0000 0A 00000000:00000000 00:00000000 00000000   996        0 10001 1 0000000000000000 100 0 0 10 0\n"+
		"   1: 0500000A:0016 0900000A:C738 01 00000000:00000000 00:00000000 00000000     0        0 10002 1 0000000000000000 100 0 0 10 0\n")
	writeProcFile(t, root, "net/udp", tcpHeader+
		"   0: 00000000:14E9 00000000:0000 07 00000000:00000000 00:00000000 00000000   102        0 10005 2 0000000000000000 0\n")
	writeProcFile(t, root, "net/tcp6", tcpHeader+
		"   0: 00000000000000000000000001000000:01BB 00000000000000000000000001000000:C350 01 00000000:00000000 00:00000000 00000000  1000        0 10006 1 0000000000000000 100 0 0 10 0\n")
	writeProcFile(t, root, "net/udp6", tcpHeader)
	writeProcFile(t, root, "net/unix",
		"Num       RefCount Protocol Flags    Type St Inode Path\n"+
			"0000000000000000: 00000002 00000000 00010000 0001 01 10003 /run/test.sock\n"+
			"0000000000000000: 00000002 00000000 00000000 0002 01 10004\n")

	// fd table attributing inode 10001 to pid 4242
	fdDir := filepath.Join(root, "4242", "fd")
	require.NoError(t, os.MkdirAll(fdDir, 0o755))
	require.NoError(t, os.Symlink("socket:[10001]", filepath.Join(fdDir, "3")))
	require.NoError(t, os.Symlink("/dev/null", filepath.Join(fdDir, "0")))

	return root
}

func TestProcfsSocketsInet4(t *testing.T) {
	api := &ProcfsAPI{root: newTestProcRoot(t)}

	records, err := api.Sockets(context.Background(), KindInet4)
	require.NoError(t, err)
	require.Len(t, records, 3)

	listen := records[0]
	assert.Equal(t, uint32(syscall.SOCK_STREAM), listen.Type)
	assert.Equal(t, "127.0.0.1", listen.LocalIP)
	assert.Equal(t, uint32(3306), listen.LocalPort)
	assert.Equal(t, "0.0.0.0", listen.RemoteIP)
	assert.Equal(t, uint32(0), listen.RemotePort)
	assert.Equal(t, "LISTEN", listen.State)
	assert.Equal(t, int32(4242), listen.PID, "inode 10001 belongs to pid 4242")

	established := records[1]
	assert.Equal(t, "10.0.0.5", established.LocalIP)
	assert.Equal(t, uint32(22), established.LocalPort)
	assert.Equal(t, "10.0.0.9", established.RemoteIP)
	assert.Equal(t, uint32(51000), established.RemotePort)
	assert.Equal(t, "ESTABLISHED", established.State)
	assert.Equal(t, int32(0), established.PID, "unattributed socket keeps pid 0")

	dgram := records[2]
	assert.Equal(t, uint32(syscall.SOCK_DGRAM), dgram.Type)
	assert.Equal(t, uint32(5353), dgram.LocalPort)
	assert.Empty(t, dgram.State)
}

func TestProcfsSocketsInet6(t *testing.T) {
	api := &ProcfsAPI{root: newTestProcRoot(t)}

	records, err := api.Sockets(context.Background(), KindInet6)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "::1", records[0].LocalIP)
	assert.Equal(t, uint32(443), records[0].LocalPort)
	assert.Equal(t, "::1", records[0].RemoteIP)
	assert.Equal(t, uint32(50000), records[0].RemotePort)
	assert.Equal(t, "ESTABLISHED", records[0].State)
}

func TestProcfsSocketsUnix(t *testing.T) {
	api := &ProcfsAPI{root: newTestProcRoot(t)}

	records, err := api.Sockets(context.Background(), KindUnix)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, uint32(syscall.SOCK_STREAM), records[0].Type)
	assert.Equal(t, "/run/test.sock", records[0].Path)
	assert.Equal(t, uint32(syscall.SOCK_DGRAM), records[1].Type)
	assert.Empty(t, records[1].Path)
}

func TestProcfsSocketsUnsupportedKind(t *testing.T) {
	api := &ProcfsAPI{root: newTestProcRoot(t)}

	_, err := api.Sockets(context.Background(), "netlink")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported socket kind "netlink"`)
}

func TestProcfsSocketsMissingTable(t *testing.T) {
	api := &ProcfsAPI{root: t.TempDir()}

	_, err := api.Sockets(context.Background(), KindInet4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening socket table")
}

func TestParseHexAddr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantIP   string
		wantPort uint32
		wantErr  bool
	}{
		{name: "ipv4 loopback", input: "0100007F:0CEA", wantIP: "127.0.0.1", wantPort: 3306},
		{name: "ipv4 any", input: "00000000:0000", wantIP: "0.0.0.0", wantPort: 0},
		{name: "ipv6 loopback", input: "00000000000000000000000001000000:01BB", wantIP: "::1", wantPort: 443},
		{name: "missing port", input: "0100007F", wantErr: true},
		{name: "bad hex", input: "ZZZZ007F:0050", wantErr: true},
		{name: "odd length", input: "0100007F00:0050", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, port, err := parseHexAddr(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIP, ip)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}
