package game

// Input is one tick of player intent, already decoded from whatever device
// the backend reads.
type Input struct {
	Forward, Back           bool
	StrafeLeft, StrafeRight bool
	TurnLeft, TurnRight     bool
	Fire                    bool
	Quit                    bool

	// YawDelta is horizontal pointer motion in pixels since the last tick.
	// Positive values turn right.
	YawDelta float64
}

// axis folds a pair of opposing keys into -1, 0 or 1.
func axis(neg, pos bool) float64 {
	v := 0.0
	if neg {
		v--
	}
	if pos {
		v++
	}
	return v
}

// Move returns the forward and rightward movement axes.
func (in Input) Move() (forward, right float64) {
	return axis(in.Back, in.Forward), axis(in.StrafeLeft, in.StrafeRight)
}

// Turn returns the keyboard turn axis, positive to the right.
func (in Input) Turn() float64 {
	return axis(in.TurnLeft, in.TurnRight)
}

// Merge ORs two inputs together and sums their pointer motion. Backends that
// see several events per tick fold them with it.
func (in Input) Merge(o Input) Input {
	return Input{
		Forward:     in.Forward || o.Forward,
		Back:        in.Back || o.Back,
		StrafeLeft:  in.StrafeLeft || o.StrafeLeft,
		StrafeRight: in.StrafeRight || o.StrafeRight,
		TurnLeft:    in.TurnLeft || o.TurnLeft,
		TurnRight:   in.TurnRight || o.TurnRight,
		Fire:        in.Fire || o.Fire,
		Quit:        in.Quit || o.Quit,
		YawDelta:    in.YawDelta + o.YawDelta,
	}
}
