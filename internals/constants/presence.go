package constants

// Hasil swipe yang dikembalikan ke badge reader.
const (
	SwipeUnknownTag   = "unknown_tag"
	SwipeInvalidRoom  = "invalid_room"
	SwipeGateEntered  = "gate_entered"
	SwipeGateExited   = "gate_exited"
	SwipeBlockEntered = "block_entered"
	SwipeBlockExited  = "block_exited"
)

// Scope-class interval: gate (batas kampus) vs block (ruangan di dalam).
const (
	ScopeGate  = "gate"
	ScopeBlock = "block"
)

// Status ringkasan harian.
const (
	DailyPresent = "PRESENT"
	DailyLate    = "LATE"
	DailyAbsent  = "ABSENT"
)

// Label status pada interval ledger.
const IntervalPresent = "PRESENT"

// Status leave request.
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)
