package controls

// Step holds a set of axes for a number of frames.
type Step struct {
	Frames int  `yaml:"frames"`
	Axes   Axes `yaml:"axes"`
}

// Script replays a fixed sequence of steps, then reports quit.
type Script struct {
	steps []Step
	index int
	frame int
}

// NewScript creates a script source. Steps with no frames are skipped.
func NewScript(steps ...Step) *Script {
	kept := make([]Step, 0, len(steps))
	for _, s := range steps {
		if s.Frames > 0 {
			kept = append(kept, s)
		}
	}
	return &Script{steps: kept}
}

// Poll implements AxisSource.
func (s *Script) Poll() (Axes, bool) {
	if s.index >= len(s.steps) {
		return Axes{}, true
	}
	step := s.steps[s.index]
	s.frame++
	if s.frame >= step.Frames {
		s.index++
		s.frame = 0
	}
	return step.Axes, false
}

// Frames returns the total number of frames the script plays.
func (s *Script) Frames() int {
	n := 0
	for _, step := range s.steps {
		n += step.Frames
	}
	return n
}
