// Package wsmsg contains the message types exchanged with xentui clients over
// the WebSocket.
package wsmsg

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rapidmidiex/xentui/interval"
	"github.com/rapidmidiex/xentui/keycolors"
)

type (
	MsgType int

	Envelope struct {
		// Message identifier, replies carry the identifier of their request.
		ID uuid.UUID `json:"id"`
		// PARSE | AUTO_KEYS | GAP_KEYS | HERTZ | INTERVALS | KEYS | TEXT | ERROR
		Typ MsgType `json:"type"`
		// Actual message data.
		Payload json.RawMessage `json:"payload"`
	}

	// ParseMsg asks for the intervals of a chord.
	ParseMsg struct {
		Text string `json:"text"`
	}

	// AutoKeysMsg asks for the automatic colouring of an equal division.
	AutoKeysMsg struct {
		Divisions int `json:"divisions"`
	}

	// GapKeysMsg asks for a colouring from a generator chain. Generator is in
	// octaves, ex: "7/12", or interval notation, ex: "7\12" or "700.".
	GapKeysMsg struct {
		Generator string `json:"generator"`
		WhiteKeys int    `json:"whiteKeys"`
		Offset    int    `json:"offset"`
	}

	// HertzMsg asks for a frequency to be formatted.
	HertzMsg struct {
		Value float64 `json:"value"`
	}

	IntervalsMsg struct {
		Intervals []interval.Interval `json:"intervals"`
	}

	KeysMsg struct {
		Colors keycolors.Colors `json:"colors"`
	}

	TextMsg struct {
		Body string `json:"body"`
	}

	ErrorMsg struct {
		Detail string `json:"detail"`
	}
)

const (
	PARSE MsgType = iota
	AUTO_KEYS
	GAP_KEYS
	HERTZ
	INTERVALS
	KEYS
	TEXT
	ERROR
)

var msgTypeNames = map[MsgType]string{
	PARSE:     "parse",
	AUTO_KEYS: "autoKeys",
	GAP_KEYS:  "gapKeys",
	HERTZ:     "hertz",
	INTERVALS: "intervals",
	KEYS:      "keys",
	TEXT:      "text",
	ERROR:     "error",
}

// NewEnvelope wraps payload in a message with a fresh identifier.
func NewEnvelope(typ MsgType, payload any) (Envelope, error) {
	e := Envelope{ID: uuid.New(), Typ: typ}
	return e, e.SetPayload(payload)
}

// Reply wraps payload in a message answering e.
func (e Envelope) Reply(typ MsgType, payload any) (Envelope, error) {
	r := Envelope{ID: e.ID, Typ: typ}
	return r, r.SetPayload(payload)
}

func (e *Envelope) SetPayload(payload any) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	e.Payload = p
	return nil
}

func (e *Envelope) Unwrap(msg any) error {
	return json.Unmarshal(e.Payload, msg)
}

func (t MsgType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MsgType(%d)", int(t))
}

func (t *MsgType) UnmarshalJSON(data []byte) error {
	var rawType string
	err := json.Unmarshal(data, &rawType)
	if err != nil {
		return err
	}

	for typ, name := range msgTypeNames {
		if name == rawType {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown type: %s", rawType)
}

func (t MsgType) MarshalJSON() ([]byte, error) {
	name, ok := msgTypeNames[t]
	if !ok {
		return []byte{}, fmt.Errorf("unknown MsgTyp value: %d", t)
	}
	return json.Marshal(name)
}
