// Package rtt contains tools for calculating stats on how long requests take
// to be answered.
package rtt

import (
	"math"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	Stats struct {
		Latest time.Duration `json:"latest"`
		Avg    time.Duration `json:"avg"`
		Min    time.Duration `json:"min"`
		Max    time.Duration `json:"max"`
		Count  int           `json:"count"`
	}

	CalcMsg struct {
		Stats
	}

	// Window keeps the most recent durations. It is safe for concurrent use.
	Window struct {
		mu     sync.Mutex
		times  []time.Duration
		next   int
		latest time.Duration
	}
)

// Calc summarizes prev, rounding the average to the microsecond.
func Calc(latest time.Duration, prev []time.Duration) Stats {
	if len(prev) == 0 {
		return Stats{Latest: latest}
	}
	return Stats{
		Latest: latest,
		Avg:    Avg(prev).Round(time.Microsecond),
		Max:    Max(prev),
		Min:    Min(prev),
		Count:  len(prev),
	}
}

func CalcStats(latest time.Duration, prev []time.Duration) tea.Cmd {
	stats := Calc(latest, prev)
	return func() tea.Msg {
		return CalcMsg{stats}
	}
}

func Min(times []time.Duration) time.Duration {
	min := math.Inf(1)
	for _, t := range times {
		min = math.Min(min, float64(t))
	}
	return time.Duration(min)
}

func Max(times []time.Duration) time.Duration {
	max := math.Inf(-1)
	for _, t := range times {
		max = math.Max(max, float64(t))
	}
	return time.Duration(max)
}

func Avg(times []time.Duration) time.Duration {
	if len(times) == 0 {
		return 0
	}
	sum := time.Duration(0)
	for _, t := range times {
		sum = sum + t
	}
	return sum / time.Duration(len(times))
}

func NewWindow(size int) *Window {
	return &Window{times: make([]time.Duration, 0, max(size, 1))}
}

// Add records d, evicting the oldest duration once the window is full.
func (w *Window) Add(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.latest = d
	if len(w.times) < cap(w.times) {
		w.times = append(w.times, d)
		return
	}
	w.times[w.next] = d
	w.next = (w.next + 1) % len(w.times)
}

func (w *Window) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Calc(w.latest, w.times)
}
