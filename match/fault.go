package match

import "fmt"

// FaultKind is a per-player or per-match error taxonomy — kinds, not
// type names, so the host can pattern-match without importing a zoo of
// sentinel error types.
type FaultKind int

const (
	FaultInvalidInput FaultKind = iota
	FaultTargetNoLongerValid
	FaultRuleRejection
	FaultEntityCrash
	FaultInvariantViolation
	FaultNetworkDrop
)

func (k FaultKind) String() string {
	switch k {
	case FaultInvalidInput:
		return "invalid-input"
	case FaultTargetNoLongerValid:
		return "target-no-longer-valid"
	case FaultRuleRejection:
		return "rule-rejection"
	case FaultEntityCrash:
		return "entity-crash"
	case FaultInvariantViolation:
		return "invariant-violation"
	case FaultNetworkDrop:
		return "network-drop"
	default:
		return "unknown"
	}
}

// Fault is a per-player or per-match condition, returned by Join, Start
// and HandleReconnect. Match itself sends no Error message; cmd/arenahost
// sends one with FaultInvalidInput to a client whose join or reconnect
// fails. No code path raises FaultInvariantViolation or ends a match
// because of a fault.
type Fault struct {
	Kind   FaultKind
	Detail string
}

func (f Fault) Error() string { return fmt.Sprintf("%s: %s", f.Kind, f.Detail) }
