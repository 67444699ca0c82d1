package procinfo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	gopsprocess "github.com/shirou/gopsutil/v4/process"

	"github.com/connwatch/connwatch/internal/findings"
)

// PsResolver resolves pid details through the process table. Resolution is
// best-effort: a process that vanished between snapshot and lookup, or a pid
// we may not inspect, degrades to the sentinel instead of failing the run.
type PsResolver struct {
	logger hclog.Logger
}

// NewPsResolver constructs the default process details resolver.
func NewPsResolver(logger hclog.Logger) *PsResolver {
	return &PsResolver{logger: logger}
}

// Details renders a short description of the process owning pid, or the
// sentinel when the pid is unattributed or gone. Fields that cannot be read
// are skipped rather than reported as errors.
func (r *PsResolver) Details(ctx context.Context, pid string) string {
	if pid == findings.PIDUnknown {
		return findings.PIDUnknown
	}

	id, err := strconv.ParseInt(pid, 10, 32)
	if err != nil {
		r.logger.Debug("unparseable pid", "pid", pid)
		return findings.PIDUnknown
	}

	proc, err := gopsprocess.NewProcessWithContext(ctx, int32(id))
	if err != nil {
		r.logger.Debug("process lookup failed", "pid", pid, "error", err)
		return findings.PIDUnknown
	}

	parts := []string{"pid=" + pid}
	if name, err := proc.NameWithContext(ctx); err == nil && name != "" {
		parts = append(parts, "name='"+name+"'")
	}
	if statuses, err := proc.StatusWithContext(ctx); err == nil && len(statuses) > 0 {
		parts = append(parts, "status='"+strings.Join(statuses, ",")+"'")
	}
	if created, err := proc.CreateTimeWithContext(ctx); err == nil && created > 0 {
		started := time.UnixMilli(created).Format("2006-01-02 15:04:05")
		parts = append(parts, "started='"+started+"'")
	}
	return strings.Join(parts, ", ")
}
