package findings

import "fmt"

// PIDUnknown is the sentinel for missing process attribution. It stands in
// for both the pid number and the resolved process details.
const PIDUnknown = "-"

// Finding is one observed socket, normalized for analysis and reporting.
type Finding struct {
	IPVersion   IPKind        `json:"ip_version"`
	Transport   TransportKind `json:"transport"`
	LocalAddr   string        `json:"local_addr"`
	RemoteAddr  string        `json:"remote_addr"`
	State       ConnState     `json:"state"`
	PID         string        `json:"pid"`
	ProcDetails string        `json:"proc_details"`
}

// String renders the canonical single-line form used by console reports.
// It performs no lookups; the details field is whatever enrichment left there.
func (f Finding) String() string {
	return fmt.Sprintf("%s:%s; Local:%s; Remote:%s; Status:%s; ProcessID:%s; ProcessDetails(%s)",
		f.IPVersion, f.Transport, f.LocalAddr, f.RemoteAddr, f.State, f.PID, f.ProcDetails)
}

// WithProcessDetails returns a copy of the finding carrying the resolved
// process details. The receiver is left untouched.
func (f Finding) WithProcessDetails(details string) Finding {
	f.ProcDetails = details
	return f
}
