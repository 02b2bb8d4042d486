package round

// Listener receives round events. Callbacks run synchronously on the caller of
// Select or Tick.
type Listener interface {
	ScoreChanged(score int)
	TimeChanged(remaining int)
	BigMatch(size int)
	RoundEnded(finalScore int)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) ScoreChanged(int) {}
func (NopListener) TimeChanged(int)  {}
func (NopListener) BigMatch(int)     {}
func (NopListener) RoundEnded(int)   {}

// Listeners fans events out to several listeners in order.
type Listeners []Listener

func (l Listeners) ScoreChanged(score int) {
	for _, listener := range l {
		listener.ScoreChanged(score)
	}
}

func (l Listeners) TimeChanged(remaining int) {
	for _, listener := range l {
		listener.TimeChanged(remaining)
	}
}

func (l Listeners) BigMatch(size int) {
	for _, listener := range l {
		listener.BigMatch(size)
	}
}

func (l Listeners) RoundEnded(finalScore int) {
	for _, listener := range l {
		listener.RoundEnded(finalScore)
	}
}

// Recorder persists the final score of a round.
type Recorder interface {
	Record(score int) error
}
