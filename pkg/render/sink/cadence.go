package sink

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/refugeeflow/pkg/anim"
)

// cubicInOutSpline approximates [anim.Ease] for SMIL spline interpolation.
const cubicInOutSpline = "0.65 0 0.35 1"

// cadence maps frame indices to SMIL key times. Frame i holds during its
// period and eases into frame i+1 over the transition at the period's end.
// The last frame eases back into the first so the loop is seamless.
type cadence struct {
	frames     int
	period     time.Duration
	transition time.Duration
}

func newCadence(frames int, period, transition time.Duration) cadence {
	if period <= 0 {
		period = anim.DefaultPeriod
	}
	if transition <= 0 || 2*transition >= period {
		transition = min(anim.DefaultTransition, period/4)
	}
	return cadence{frames: frames, period: period, transition: transition}
}

func (c cadence) dur() string {
	return fmt.Sprintf("%gs", (c.period * time.Duration(c.frames)).Seconds())
}

// smooth returns eased keyframes for one value per frame.
func (c cadence) smooth(vals []string) (values []string, times []float64) {
	total := float64(c.period) * float64(c.frames)
	p, tr := float64(c.period), float64(c.transition)
	add := func(v string, at float64) {
		values = append(values, v)
		times = append(times, at/total)
	}
	add(vals[0], 0)
	for i := 0; i+1 < len(vals); i++ {
		end := float64(i+1) * p
		add(vals[i], end)
		add(vals[i+1], end+tr)
	}
	add(vals[len(vals)-1], total-tr)
	add(vals[0], total)
	return values, times
}

// discrete returns keyframes that show on during frame i and off otherwise.
func (c cadence) discrete(i int, on, off string) (values []string, times []float64) {
	n := float64(c.frames)
	if i == 0 {
		return []string{on, off}, []float64{0, 1 / n}
	}
	return []string{off, on, off}, []float64{0, float64(i) / n, float64(i+1) / n}
}

func (c cadence) animateSmooth(attr string, vals []string) string {
	values, times := c.smooth(vals)
	return fmt.Sprintf(`<animate attributeName="%s" values="%s" keyTimes="%s" calcMode="spline" keySplines="%s" dur="%s" repeatCount="indefinite"/>`,
		attr, joinValues(values), keyTimes(times), splines(len(values)-1), c.dur())
}

func (c cadence) animateTranslate(vals []string) string {
	values, times := c.smooth(vals)
	return fmt.Sprintf(`<animateTransform attributeName="transform" type="translate" values="%s" keyTimes="%s" calcMode="spline" keySplines="%s" dur="%s" repeatCount="indefinite"/>`,
		joinValues(values), keyTimes(times), splines(len(values)-1), c.dur())
}

func (c cadence) animateDiscrete(attr string, i int, on, off string) string {
	values, times := c.discrete(i, on, off)
	return fmt.Sprintf(`<animate attributeName="%s" values="%s" keyTimes="%s" calcMode="discrete" dur="%s" repeatCount="indefinite"/>`,
		attr, joinValues(values), keyTimes(times), c.dur())
}

// animateSteps switches to vals[i] at the start of frame i.
func (c cadence) animateSteps(attr string, vals []string) string {
	times := make([]float64, len(vals))
	for i := range times {
		times[i] = float64(i) / float64(c.frames)
	}
	return fmt.Sprintf(`<animate attributeName="%s" values="%s" keyTimes="%s" calcMode="discrete" dur="%s" repeatCount="indefinite"/>`,
		attr, joinValues(vals), keyTimes(times), c.dur())
}

func splines(n int) string {
	s := make([]string, n)
	for i := range s {
		s[i] = cubicInOutSpline
	}
	return strings.Join(s, ";")
}
