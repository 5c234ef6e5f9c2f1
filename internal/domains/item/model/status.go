package model

// Status is the exchange lifecycle state of an item.
//
// The lifecycle only moves forward:
//
//	available -> pending   (request-swap)
//	available -> swapped   (redeem-with-points)
//
// No transition leaves pending, and swapped is terminal.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSwapped   Status = "swapped"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSwapped:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Trigger is a user action that advances the lifecycle.
type Trigger string

const (
	TriggerRequestSwap      Trigger = "request-swap"
	TriggerRedeemWithPoints Trigger = "redeem-with-points"
)

// transitions maps each trigger to its source and target state.
var transitions = map[Trigger]struct {
	From Status
	To   Status
}{
	TriggerRequestSwap:      {From: StatusAvailable, To: StatusPending},
	TriggerRedeemWithPoints: {From: StatusAvailable, To: StatusSwapped},
}

// TransitionTarget resolves a trigger to its target status.
// ok=false means the trigger is not defined.
func TransitionTarget(t Trigger) (Status, bool) {
	tr, ok := transitions[t]
	if !ok {
		return "", false
	}
	return tr.To, true
}

// CanTransition reports whether the lifecycle graph defines an edge from
// one status to another. The status write itself is last-write-wins and
// does not consult the item's current state; this is the declarative
// graph used by callers and tests.
func CanTransition(from, to Status) bool {
	for _, tr := range transitions {
		if tr.From == from && tr.To == to {
			return true
		}
	}
	return false
}
