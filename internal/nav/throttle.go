package nav

import (
	"time"

	"golang.org/x/time/rate"
)

// ScrollThrottle rate-limits scroll samples before they reach a Controller,
// so a burst of scroll events costs at most a bounded number of updates.
// Samples rejected by the limiter are dropped entirely: they neither change
// the chrome nor move the reference position.
type ScrollThrottle struct {
	ctrl    *Controller
	limiter *rate.Limiter
	dropped int
}

// NewScrollThrottle admits up to perSecond samples per second with the
// given burst.
func NewScrollThrottle(ctrl *Controller, perSecond float64, burst int) *ScrollThrottle {
	if burst < 1 {
		burst = 1
	}
	return &ScrollThrottle{
		ctrl:    ctrl,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Sample offers a scroll position observed at at. It reports whether the
// sample was applied, and the chrome visibility afterwards.
func (t *ScrollThrottle) Sample(y float64, at time.Time) (applied, chromeVisible bool) {
	if !t.limiter.AllowN(at, 1) {
		t.dropped++
		return false, t.ctrl.ChromeVisible()
	}
	return true, t.ctrl.Scroll(y)
}

// Dropped returns how many samples the limiter rejected.
func (t *ScrollThrottle) Dropped() int { return t.dropped }
