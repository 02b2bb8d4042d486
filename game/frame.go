package game

// Frame is passed to every system during one scheduler tick.
type Frame struct {
	DeltaTime float64
	Input     Input
	Commands  *Commands
	Session   *Session

	errs []error
}

func newFrame(dt float64, session *Session) *Frame {
	return &Frame{
		DeltaTime: dt,
		Input:     session.input.drain(),
		Commands:  newCommands(),
		Session:   session,
	}
}

// Fail reports an error from a system. Once returns the errors of a frame joined.
func (f *Frame) Fail(err error) {
	if err != nil {
		f.errs = append(f.errs, err)
	}
}
