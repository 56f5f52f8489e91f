package cadence

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// policyMode discriminates the run policy variants.
type policyMode uint8

const (
	modeForever policyMode = iota
	modeOnce
	modeCount
	modeExhausted
)

var policyModeNames = map[policyMode]string{
	modeForever:   "forever",
	modeOnce:      "once",
	modeCount:     "count",
	modeExhausted: "exhausted",
}

// RunPolicy governs how many more times a job entry may fire. Policies are
// immutable values: Consume returns the state after one execution and the
// caller stores it. The zero value is Forever.
type RunPolicy struct {
	mode      policyMode
	remaining uint32
}

// Forever returns a policy that never exhausts.
func Forever() RunPolicy { return RunPolicy{mode: modeForever} }

// Once returns a policy allowing exactly one execution.
func Once() RunPolicy { return RunPolicy{mode: modeOnce} }

// Countdown returns a policy allowing exactly n more executions.
func Countdown(n uint32) RunPolicy { return RunPolicy{mode: modeCount, remaining: n} }

// Exhausted reports whether the policy permits no further executions.
// Exhausted entries are skipped by polling forever; there is no
// resurrection.
func (p RunPolicy) Exhausted() bool {
	switch p.mode {
	case modeExhausted:
		return true
	case modeCount:
		return p.remaining == 0
	default:
		return false
	}
}

// Consume returns the policy's state after one execution. Forever is a
// fixed point; Once exhausts after a single firing; Countdown decrements
// toward zero and never goes negative.
func (p RunPolicy) Consume() RunPolicy {
	switch p.mode {
	case modeForever:
		return p
	case modeOnce:
		return RunPolicy{mode: modeExhausted}
	case modeCount:
		if p.remaining == 0 {
			return RunPolicy{mode: modeExhausted}
		}
		return RunPolicy{mode: modeCount, remaining: p.remaining - 1}
	default:
		return p
	}
}

// Remaining returns the number of executions left for countdown policies,
// and ok == false for the unbounded variants.
func (p RunPolicy) Remaining() (n uint32, ok bool) {
	switch p.mode {
	case modeCount:
		return p.remaining, true
	case modeOnce:
		return 1, true
	case modeExhausted:
		return 0, true
	default:
		return 0, false
	}
}

// String returns the policy's mode tag.
func (p RunPolicy) String() string {
	if p.mode == modeCount {
		return fmt.Sprintf("count(%d)", p.remaining)
	}
	return policyModeNames[p.mode]
}

// policyWire is the stable encoded form:
//
//	{"mode":"forever"} | {"mode":"once"} | {"mode":"count","remaining":5} |
//	{"mode":"exhausted"}
type policyWire struct {
	Mode      string `json:"mode" yaml:"mode"`
	Remaining uint32 `json:"remaining,omitempty" yaml:"remaining,omitempty"`
}

func (p RunPolicy) wire() policyWire {
	w := policyWire{Mode: policyModeNames[p.mode]}
	if p.mode == modeCount {
		w.Remaining = p.remaining
	}
	return w
}

func (p *RunPolicy) fromWire(w policyWire) error {
	switch w.Mode {
	case "forever":
		*p = Forever()
	case "once":
		*p = Once()
	case "count":
		*p = Countdown(w.Remaining)
	case "exhausted":
		*p = RunPolicy{mode: modeExhausted}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRunPolicy, w.Mode)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p RunPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RunPolicy) UnmarshalJSON(data []byte) error {
	var w policyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRunPolicy, err)
	}
	return p.fromWire(w)
}

// MarshalYAML implements yaml.Marshaler.
func (p RunPolicy) MarshalYAML() (any, error) {
	return p.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *RunPolicy) UnmarshalYAML(node *yaml.Node) error {
	var w policyWire
	if err := node.Decode(&w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRunPolicy, err)
	}
	return p.fromWire(w)
}
