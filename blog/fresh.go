package blog

import "time"

// DefaultFreshWindow is the number of months a post is marked new.
const DefaultFreshWindow = 2

// FreshnessPolicy decides whether a post is recent enough to carry a "New!" marker.
type FreshnessPolicy struct {
	Window   int              // months; 0 means DefaultFreshWindow
	Location *time.Location   // zone used to read today's date; nil means UTC
	Now      func() time.Time // nil means time.Now
}

// IsFresh reports whether today is on or before published + Window months.
func (p FreshnessPolicy) IsFresh(published Date) bool {
	if published.IsZero() {
		return false
	}
	return !p.today().After(p.Threshold(published))
}

// Threshold returns the last day on which a post published on d is fresh.
func (p FreshnessPolicy) Threshold(d Date) Date {
	w := p.Window
	if w == 0 {
		w = DefaultFreshWindow
	}
	return d.AddMonths(w)
}

func (p FreshnessPolicy) today() Date {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now().In(loc))
}
