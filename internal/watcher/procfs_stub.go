//go:build !linux

package watcher

import "fmt"

func newProcfsAPI() (SocketAPI, error) {
	return nil, fmt.Errorf("the procfs socket source is only available on linux")
}
