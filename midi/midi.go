// Package midi renders chords as Standard MIDI Files. Every tone gets its own
// channel so that a pitch bend can tune it away from 12-tone equal temperament.
package midi

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/interval"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// MIDI note number of A4.
	concertA     = 69
	concertPitch = 440.0
	drumChannel  = 9
	// MaxTones is the number of melodic channels.
	MaxTones = 15
)

type (
	Options struct {
		// Frequency of the unison in Hz.
		BaseFrequency float64
		// Semitones a full pitch bend deflection covers.
		BendRange float64
		// Ticks between note on and note off.
		Duration uint32
		Velocity uint8
		// Resolution of the file in ticks per quarter note.
		TicksPerQuarter uint16
		// Beats per minute.
		Tempo float64
		// Sound the unison below the chord.
		IncludeRoot bool
	}

	// Tone is a tuned pitch ready to be sent on one channel.
	Tone struct {
		Channel uint8
		Key     uint8
		Bend    int16
	}
)

var (
	ErrTooManyTones = errors.New("too many tones for the melodic channels")
	ErrOutOfRange   = errors.New("frequency outside of the MIDI key range")
)

func DefaultOptions() Options {
	return Options{
		BaseFrequency:   261.6255653005986, // C4
		BendRange:       2,
		Duration:        960 * 4,
		Velocity:        100,
		TicksPerQuarter: 960,
		Tempo:           120,
	}
}

// Frequency returns the pitch of i above base.
func Frequency(base float64, i interval.Interval) float64 {
	return base * math.Exp2(i.TotalCents()/1200)
}

// NoteAndBend finds the closest MIDI key to freq and the 14-bit pitch bend
// that tunes the key onto it, given the bend range in semitones.
func NoteAndBend(freq, bendRange float64) (uint8, int16, error) {
	if bendRange <= 0 {
		return 0, 0, fmt.Errorf("bend range %v must be positive", bendRange)
	}
	if !(freq > 0) || math.IsInf(freq, 0) {
		return 0, 0, fmt.Errorf("%vHz: %w", freq, ErrOutOfRange)
	}
	exact := concertA + 12*math.Log2(freq/concertPitch)
	key := math.Round(exact)
	if key < 0 || key > 127 {
		return 0, 0, fmt.Errorf("%vHz: %w", freq, ErrOutOfRange)
	}
	bend := math.Round((exact - key) / bendRange * 8192)
	bend = math.Max(-8192, math.Min(8191, bend))
	return uint8(key), int16(bend), nil
}

// Tones assigns a channel, key and bend to every interval of c.
func Tones(c chord.Chord, o Options) ([]Tone, error) {
	cents := c.Cents()
	if o.IncludeRoot {
		cents = append([]float64{0}, cents...)
	}
	if len(cents) > MaxTones {
		return nil, fmt.Errorf("%d tones: %w", len(cents), ErrTooManyTones)
	}

	tones := make([]Tone, 0, len(cents))
	for i, cc := range cents {
		key, bend, err := NoteAndBend(o.BaseFrequency*math.Exp2(cc/1200), o.BendRange)
		if err != nil {
			return nil, fmt.Errorf("tone %d: %w", i+1, err)
		}
		ch := uint8(i)
		if ch >= drumChannel {
			ch++
		}
		tones = append(tones, Tone{Channel: ch, Key: key, Bend: bend})
	}
	return tones, nil
}

// WriteChord writes c as a format 1 file: a tempo track followed by one track
// per tone. All notes start together and stop after o.Duration ticks.
func WriteChord(w io.Writer, c chord.Chord, o Options) error {
	tones, err := Tones(c, o)
	if err != nil {
		return err
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(o.TicksPerQuarter)

	var conductor smf.Track
	conductor.Add(0, smf.MetaTrackSequenceName(c.String()))
	conductor.Add(0, smf.MetaTempo(o.Tempo))
	conductor.Close(0)
	if err := s.Add(conductor); err != nil {
		return err
	}

	for _, tone := range tones {
		var tr smf.Track
		tr.Add(0, midi.Pitchbend(tone.Channel, tone.Bend))
		tr.Add(0, midi.NoteOn(tone.Channel, tone.Key, o.Velocity))
		tr.Add(o.Duration, midi.NoteOff(tone.Channel, tone.Key))
		tr.Close(0)
		if err := s.Add(tr); err != nil {
			return err
		}
	}

	_, err = s.WriteTo(w)
	return err
}
