package main

// FlashTime is how long the big match banner stays on screen, in seconds.
const FlashTime = 1.0

// Hud shows the big match banner. Score and time are read from the session
// snapshot.
type Hud struct {
	bigMatch int
	flash    float64
}

func (h *Hud) ScoreChanged(int) {}
func (h *Hud) TimeChanged(int)  {}

func (h *Hud) BigMatch(size int) {
	h.bigMatch = size
	h.flash = FlashTime
}

func (h *Hud) RoundEnded(int) {
	h.flash = 0
}

// Update counts the banner down.
func (h *Hud) Update(dt float64) {
	h.flash = max(h.flash-dt, 0)
}

func (h *Hud) Reset() {
	*h = Hud{}
}

func (h *Hud) Flashing() bool {
	return h.flash > 0
}

func (h *Hud) BigMatchSize() int {
	return h.bigMatch
}
