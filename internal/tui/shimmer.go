package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// ShimmerConfig holds configuration for the hero title sweep
type ShimmerConfig struct {
	Enabled        bool    // animations: on|off
	SpeedMs        int     // tick interval (default 100)
	WidthRatio     float64 // highlight width relative to text (default 0.25)
	CycleMs        int     // time for one sweep (default 1800)
	PauseBetweenMs int     // pause between sweeps (default 800)
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:        true,
		SpeedMs:        100,
		WidthRatio:     0.25,
		CycleMs:        1800,
		PauseBetweenMs: 800,
	}
}

// Shimmer sweeps a highlight across a line of text, once per cycle.
// It only moves on Advance, so rendering is deterministic between ticks.
type Shimmer struct {
	config    ShimmerConfig
	center    float64
	paused    bool
	pauseLeft time.Duration
	trueColor bool

	base      colorful.Color
	highlight colorful.Color
}

// NewShimmer creates a shimmer blending from baseHex to highlightHex
func NewShimmer(config ShimmerConfig, baseHex, highlightHex string) *Shimmer {
	s := &Shimmer{
		config:    config,
		trueColor: os.Getenv("COLORTERM") == "truecolor",
	}
	s.SetColors(baseHex, highlightHex)
	return s
}

// SetColors changes the blend endpoints, e.g. after a theme switch.
// Invalid hex values fall back to black so rendering never fails.
func (s *Shimmer) SetColors(baseHex, highlightHex string) {
	s.base, _ = colorful.Hex(baseHex)
	s.highlight, _ = colorful.Hex(highlightHex)
}

// Active reports whether ticks should be scheduled
func (s *Shimmer) Active() bool {
	return s.config.Enabled && s.config.SpeedMs > 0
}

// Interval is the tick period
func (s *Shimmer) Interval() time.Duration {
	return time.Duration(s.config.SpeedMs) * time.Millisecond
}

// Advance moves the sweep one tick forward for text of length n
func (s *Shimmer) Advance(n int) {
	if !s.Active() || n <= 0 {
		return
	}

	if s.paused {
		s.pauseLeft -= s.Interval()
		if s.pauseLeft <= 0 {
			s.paused = false
			// Start before the beginning so the highlight slides in
			s.center = -float64(n) * s.config.WidthRatio
		}
		return
	}

	ticksPerCycle := float64(s.config.CycleMs) / float64(s.config.SpeedMs)
	distance := float64(n) * (1.0 + 2.0*s.config.WidthRatio)
	s.center += distance / ticksPerCycle

	if s.center >= float64(n)*(1.0+s.config.WidthRatio) {
		s.paused = true
		s.pauseLeft = time.Duration(s.config.PauseBetweenMs) * time.Millisecond
	}
}

// Render colors text according to the current sweep position
func (s *Shimmer) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if !s.Active() || !s.trueColor {
		// Without truecolor a per-glyph blend degrades badly; draw it flat
		return s.paint(s.highlight, text)
	}

	sigma := math.Max(1.0, s.config.WidthRatio*float64(len(runes))/2.0)

	var b strings.Builder
	for i, r := range runes {
		dx := float64(i) - s.center
		weight := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		if s.paused {
			weight = 0
		}
		b.WriteString(s.paint(s.base.BlendRgb(s.highlight, weight), string(r)))
	}
	return b.String()
}

func (s *Shimmer) paint(c colorful.Color, text string) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm%s\033[0m", r, g, b, text)
}
