package host

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/phanxgames/fizz"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Button string  `json:"button,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected pointer input across frames so a particle scene
// can run unattended. Actions: press, move, release, click, hold, drag, wait.
//
//	{"steps": [
//	  {"action": "hold", "x": 400, "y": 300, "frames": 120},
//	  {"action": "wait", "frames": 60},
//	  {"action": "click", "x": 100, "y": 100, "button": "right"}
//	]}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*Script, error) {
	var sf scriptFile
	if err := json.Unmarshal(jsonData, &sf); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sf.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sf.Steps {
		if st.Button == "" {
			continue
		}
		if _, err := fizz.ParseMouseButton(st.Button); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: sf.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one frame, queueing input on in.
func (s *Script) Step(in *Input) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	// Validated in LoadScript; empty means left.
	b, _ := fizz.ParseMouseButton(st.Button)

	switch st.Action {
	case "press":
		in.InjectPress(st.X, st.Y, b)
	case "move":
		in.InjectMove(st.X, st.Y, b)
	case "release":
		in.InjectRelease(st.X, st.Y)
	case "click":
		in.InjectClick(st.X, st.Y, b)
	case "hold":
		in.InjectHold(st.X, st.Y, b, st.Frames)
	case "drag":
		in.InjectDrag(st.X, st.Y, st.ToX, st.ToY, b, st.Frames)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		log.Printf("fizz: unknown script action %q (step %d)", st.Action, s.cursor-1)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && in.Pending() == 0 {
		s.done = true
	}
}
