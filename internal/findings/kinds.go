package findings

// IPKind selects the address family of a snapshot run.
type IPKind string

const (
	IP4 IPKind = "IP4"
	IP6 IPKind = "IP6"
)

// TransportKind selects the transport protocol of a snapshot run.
type TransportKind string

const (
	TCP TransportKind = "TCP"
	UDP TransportKind = "UDP"
)

// ConnState is the connection state as reported by the OS. The set is open:
// a state missing from the common kernel table below still flows through
// analysis and reports unchanged.
type ConnState string

const (
	StateEstablished ConnState = "ESTABLISHED"
	StateSynSent     ConnState = "SYN_SENT"
	StateSynRecv     ConnState = "SYN_RECV"
	StateFinWait1    ConnState = "FIN_WAIT1"
	StateFinWait2    ConnState = "FIN_WAIT2"
	StateTimeWait    ConnState = "TIME_WAIT"
	StateClose       ConnState = "CLOSE"
	StateCloseWait   ConnState = "CLOSE_WAIT"
	StateLastAck     ConnState = "LAST_ACK"
	StateListen      ConnState = "LISTEN"
	StateClosing     ConnState = "CLOSING"
	StateNone        ConnState = "NONE"
)

var recognizedStates = map[ConnState]struct{}{
	StateEstablished: {},
	StateSynSent:     {},
	StateSynRecv:     {},
	StateFinWait1:    {},
	StateFinWait2:    {},
	StateTimeWait:    {},
	StateClose:       {},
	StateCloseWait:   {},
	StateLastAck:     {},
	StateListen:      {},
	StateClosing:     {},
	StateNone:        {},
}

// Recognized reports whether the state belongs to the common kernel set.
func (s ConnState) Recognized() bool {
	_, ok := recognizedStates[s]
	return ok
}
