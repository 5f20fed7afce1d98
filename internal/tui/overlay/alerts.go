package overlay

// Transition is the outcome of an alert expiry.
type Transition struct {
	// Stale is set when the expiry did not belong to the displayed alert.
	Stale bool
	// Showing is set when a queued alert was promoted; Text and Generation
	// describe it and the caller must arm a new expiry.
	Showing    bool
	Text       string
	Generation uint64
}

// Idle reports whether the banner is now empty.
func (t Transition) Idle() bool {
	return !t.Stale && !t.Showing
}

// Alerts holds the displayed alert and its backlog.
type Alerts struct {
	current string
	showing bool
	gen     uint64
	backlog []string
}

// Raise displays text when nothing is on display and returns true with the
// generation to arm an expiry for. Otherwise text joins the backlog.
func (a *Alerts) Raise(text string) (bool, uint64) {
	if a.showing {
		a.backlog = append(a.backlog, text)
		return false, a.gen
	}
	a.show(text)
	return true, a.gen
}

// Expire ends the alert of generation gen and promotes the oldest queued
// alert, if any.
func (a *Alerts) Expire(gen uint64) Transition {
	if !a.showing || gen != a.gen {
		return Transition{Stale: true}
	}
	a.showing = false
	a.current = ""
	if len(a.backlog) == 0 {
		return Transition{}
	}
	next := a.backlog[0]
	a.backlog = a.backlog[1:]
	a.show(next)
	return Transition{Showing: true, Text: next, Generation: a.gen}
}

func (a *Alerts) show(text string) {
	a.gen++
	a.current = text
	a.showing = true
}

// Current returns the displayed alert.
func (a *Alerts) Current() (string, bool) {
	return a.current, a.showing
}

// Generation returns the generation of the displayed alert.
func (a *Alerts) Generation() uint64 {
	return a.gen
}

// Backlog returns a copy of the queued alerts, oldest first.
func (a *Alerts) Backlog() []string {
	return append([]string(nil), a.backlog...)
}
