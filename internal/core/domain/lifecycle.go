package domain

// LifecycleState is the visibility state of a registered record.
type LifecycleState string

const (
	StateActive   LifecycleState = "active"
	StateInactive LifecycleState = "inactive"
)

// lifecycleTransitions defines the allowed state machine transitions.
// There is no way back to active once a record is deactivated.
var lifecycleTransitions = map[LifecycleState][]LifecycleState{
	StateActive: {StateInactive},
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s LifecycleState) CanTransitionTo(next LifecycleState) bool {
	for _, allowed := range lifecycleTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func stateOf(active bool) LifecycleState {
	if active {
		return StateActive
	}
	return StateInactive
}
