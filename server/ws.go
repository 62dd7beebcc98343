package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rapidmidiex/xentui/wsmsg"
)

// handleWS answers every request envelope on the connection with a reply
// carrying the same ID. Malformed requests get an ERROR reply and the
// connection stays open.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	s.logger.Debug("websocket connected", "remote", r.RemoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket closed unexpectedly", "error", err)
			}
			return
		}

		var req wsmsg.Envelope
		var res wsmsg.Envelope
		if err := json.Unmarshal(data, &req); err != nil {
			res, err = req.Reply(wsmsg.ERROR, wsmsg.ErrorMsg{Detail: fmt.Sprintf("unmarshal envelope: %v", err)})
			if err != nil {
				s.logger.Error("failed to build reply", "error", err)
				return
			}
		} else {
			res = s.dispatch(req)
		}

		if err := conn.WriteJSON(res); err != nil {
			s.logger.Warn("writeJSON", "error", err)
			return
		}
	}
}

func (s *Server) dispatch(req wsmsg.Envelope) wsmsg.Envelope {
	typ, payload, err := s.answer(req)
	if err != nil {
		typ, payload = wsmsg.ERROR, wsmsg.ErrorMsg{Detail: err.Error()}
	}
	res, err := req.Reply(typ, payload)
	if err != nil {
		res, _ = req.Reply(wsmsg.ERROR, wsmsg.ErrorMsg{Detail: err.Error()})
	}
	return res
}

func (s *Server) answer(req wsmsg.Envelope) (wsmsg.MsgType, any, error) {
	switch req.Typ {
	case wsmsg.PARSE:
		var msg wsmsg.ParseMsg
		if err := req.Unwrap(&msg); err != nil {
			return 0, nil, fmt.Errorf("unmarshal ParseMsg: %w", err)
		}
		intervals, err := s.parseChord(msg.Text)
		if err != nil {
			return 0, nil, err
		}
		return wsmsg.INTERVALS, wsmsg.IntervalsMsg{Intervals: intervals}, nil

	case wsmsg.AUTO_KEYS:
		var msg wsmsg.AutoKeysMsg
		if err := req.Unwrap(&msg); err != nil {
			return 0, nil, fmt.Errorf("unmarshal AutoKeysMsg: %w", err)
		}
		colors, err := s.autoKeys(msg.Divisions)
		if err != nil {
			return 0, nil, err
		}
		return wsmsg.KEYS, wsmsg.KeysMsg{Colors: colors}, nil

	case wsmsg.GAP_KEYS:
		var msg wsmsg.GapKeysMsg
		if err := req.Unwrap(&msg); err != nil {
			return 0, nil, fmt.Errorf("unmarshal GapKeysMsg: %w", err)
		}
		colors, err := s.gapKeys(msg.Generator, msg.WhiteKeys, msg.Offset)
		if err != nil {
			return 0, nil, err
		}
		return wsmsg.KEYS, wsmsg.KeysMsg{Colors: colors}, nil

	case wsmsg.HERTZ:
		var msg wsmsg.HertzMsg
		if err := req.Unwrap(&msg); err != nil {
			return 0, nil, fmt.Errorf("unmarshal HertzMsg: %w", err)
		}
		return wsmsg.TEXT, wsmsg.TextMsg{Body: s.formatter().Hertz(msg.Value)}, nil
	}
	return 0, nil, fmt.Errorf("unexpected request type: %s", req.Typ)
}
