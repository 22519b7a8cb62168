// Package seiz implements SEIZ information-diffusion models over a social
// network: a baseline contact model and two moderated variants. Agents move
// between four states — Susceptible, Exposed, Infected, Skeptic — under
// stochastic, graph-local transition rules advanced one discrete step at a
// time.
package seiz

import "fmt"

// State is the behavioral state of a single agent.
type State string

const (
	// Susceptible agents can be infected or turned skeptic by contact.
	Susceptible State = "S"
	// Exposed agents have received the information but do not spread it yet.
	Exposed State = "E"
	// Infected agents actively spread the information.
	Infected State = "I"
	// Skeptic agents resist the information and spread skepticism.
	Skeptic State = "Z"
)

// AllStates lists the four states in canonical S, E, I, Z order.
func AllStates() [4]State {
	return [4]State{Susceptible, Exposed, Infected, Skeptic}
}

// ParseState converts a single-letter state label to a State.
func ParseState(s string) (State, error) {
	switch State(s) {
	case Susceptible, Exposed, Infected, Skeptic:
		return State(s), nil
	}
	return "", fmt.Errorf("unknown state %q (want one of S, E, I, Z)", s)
}

// Valid reports whether the state is one of the four SEIZ states.
func (s State) Valid() bool {
	switch s {
	case Susceptible, Exposed, Infected, Skeptic:
		return true
	}
	return false
}
