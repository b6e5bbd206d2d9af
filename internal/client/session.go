package client

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/SwufeNinja/texas-tableclient/internal/game"
	"github.com/SwufeNinja/texas-tableclient/internal/logging"
	"github.com/SwufeNinja/texas-tableclient/internal/protocol"
)

// Session lifecycle states. An open socket is not enough to be connected;
// the server has to acknowledge the join first.
const (
	SessionState__DISCONNECTED string = "DISCONNECTED"
	SessionState__JOINING      string = "JOINING"
	SessionState__CONNECTED    string = "CONNECTED"
)

// Session lifecycle events.
const (
	SessionEvent__OPEN  string = "OPEN"
	SessionEvent__ACK   string = "ACK"
	SessionEvent__CLOSE string = "CLOSE"
)

// Config holds the configuration for a table session.
type Config struct {
	// ServerURL is the http(s) base address of the game server. The
	// websocket endpoint and scheme (ws/wss) are derived from it.
	ServerURL string

	// ConfirmDisconnect is consulted before ToggleConnection closes a live
	// session, so the front-end can put up a prompt. Nil means always allow.
	ConfirmDisconnect func() bool

	// OnUpdate, when set, is invoked after each message that changed the
	// session (new table state, log entry, connection status).
	OnUpdate func()

	// EventLogSize overrides the event log bound. Zero means the default.
	EventLogSize int
}

// Session owns one websocket connection to the game server, the latest
// table state received over it, and the event log. At most one socket is
// live at a time; connecting again closes the previous one first.
type Session struct {
	logger *zerolog.Logger
	config Config
	events *EventLog

	mu         sync.Mutex
	sm         *fsm.FSM
	conn       *websocket.Conn
	playerID   string
	playerName string
	state      *game.State
}

// NewSession creates a session. No connection is attempted until Connect.
func NewSession(config Config, logger *zerolog.Logger) *Session {
	if logger == nil {
		logger = logging.GetZeroLogger("client::session", nil)
	}
	s := &Session{
		logger: logger,
		config: config,
		events: NewEventLog(config.EventLogSize),
	}
	s.sm = fsm.NewFSM(
		SessionState__DISCONNECTED,
		fsm.Events{
			{
				Name: SessionEvent__OPEN,
				Src:  []string{SessionState__DISCONNECTED},
				Dst:  SessionState__JOINING,
			},
			{
				Name: SessionEvent__ACK,
				Src:  []string{SessionState__JOINING},
				Dst:  SessionState__CONNECTED,
			},
			{
				Name: SessionEvent__CLOSE,
				Src:  []string{SessionState__JOINING, SessionState__CONNECTED},
				Dst:  SessionState__DISCONNECTED,
			},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				s.logger.Debug().Msgf("Session state [%s] ===> [%s]", e.Src, e.Dst)
			},
		},
	)
	return s
}

func (s *Session) event(event string) {
	if err := s.sm.Event(event); err != nil {
		s.logger.Warn().Msgf("Error from state machine: %s", err.Error())
	}
}

// WebSocketURL derives the ws(s) endpoint from the configured server URL.
func (s *Session) WebSocketURL() (string, error) {
	parsed, err := url.Parse(s.config.ServerURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid server URL [%s]", s.config.ServerURL)
	}
	scheme := "ws"
	if parsed.Scheme == "https" {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s/ws", scheme, parsed.Host), nil
}

// Connect opens the websocket and sends the join handshake. A blank player
// id is a silent no-op. Any previous connection is closed first, so there
// is never more than one live socket.
func (s *Session) Connect(playerID string, displayName string) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil
	}
	displayName = strings.TrimSpace(displayName)

	wsURL, err := s.WebSocketURL()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.conn != nil {
		s.closeLocked()
	}
	s.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		s.logger.Error().Err(err).Msgf("Could not connect to game server at %s", wsURL)
		return errors.Wrapf(err, "error connecting to game server [%s]", wsURL)
	}

	joinMsg, err := protocol.EncodeJoin(playerID, displayName)
	if err != nil {
		conn.Close()
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.playerID = playerID
	s.playerName = displayName
	s.event(SessionEvent__OPEN)
	err = conn.WriteMessage(websocket.TextMessage, joinMsg)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error().Err(err).Msg("Could not send join message")
	}

	go s.readLoop(conn)
	return nil
}

// ToggleConnection is the connect/disconnect button. Disconnecting a live
// session asks ConfirmDisconnect first; with no live session it connects.
func (s *Session) ToggleConnection(playerID string, displayName string) error {
	s.mu.Lock()
	live := s.conn != nil
	s.mu.Unlock()
	if live {
		if s.config.ConfirmDisconnect != nil && !s.config.ConfirmDisconnect() {
			return nil
		}
		s.Close()
		return nil
	}
	return s.Connect(playerID, displayName)
}

// Close shuts the socket down without a confirmation step.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if s.conn == nil {
		return
	}
	s.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.conn.Close()
	s.dropLocked(s.conn)
}

// dropLocked clears the session's view of conn if it is still the current
// one. The reader for an already-replaced socket must not trample the
// state of its successor.
func (s *Session) dropLocked(conn *websocket.Conn) {
	if s.conn != conn {
		return
	}
	s.conn = nil
	s.state = nil
	if s.sm.Current() != SessionState__DISCONNECTED {
		s.event(SessionEvent__CLOSE)
	}
}

func (s *Session) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			s.dropLocked(conn)
			s.mu.Unlock()
			s.notifyUpdate()
			return
		}
		s.dispatch(conn, raw)
	}
}

// dispatch routes one server frame. A frame that does not parse is logged
// and dropped whole; it never reaches the table state or the event log.
// Frames from a socket that has already been replaced are ignored.
func (s *Session) dispatch(conn *websocket.Conn, raw []byte) {
	s.mu.Lock()
	stale := s.conn != conn
	s.mu.Unlock()
	if stale {
		return
	}

	in, err := protocol.DecodeInbound(raw)
	if err != nil {
		s.logger.Error().Err(err).
			Str(logging.MsgTypeKey, "unparsable").
			Msg("Dropping malformed server message")
		return
	}

	switch in.Type {
	case protocol.MsgGameUpdate:
		s.mu.Lock()
		if s.conn == conn {
			s.state = in.State
			if s.sm.Current() == SessionState__JOINING {
				s.event(SessionEvent__ACK)
			}
		}
		s.mu.Unlock()
	case protocol.MsgJoinOK:
		s.mu.Lock()
		if s.conn == conn && s.sm.Current() == SessionState__JOINING {
			s.event(SessionEvent__ACK)
		}
		s.mu.Unlock()
	case protocol.MsgError:
		s.events.Append(protocol.FormatError(in.Error))
	case protocol.MsgSystem:
		s.events.Append(protocol.FormatSystem(in.System))
	}
	s.notifyUpdate()
}

func (s *Session) notifyUpdate() {
	if s.config.OnUpdate != nil {
		s.config.OnUpdate()
	}
}

// send writes one frame. All socket writes go through s.mu, so the close
// frame and outbound messages never interleave.
func (s *Session) send(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		// Expected race: an action fired after the socket went away.
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		s.logger.Debug().Err(err).Msg("Dropped outbound message on dead socket")
	}
}

// ToggleReady sends the opposite of the local player's current ready flag.
func (s *Session) ToggleReady() {
	raw, err := protocol.EncodeReady(s.State().NextReady(s.PlayerID()))
	if err != nil {
		s.logger.Error().Err(err).Msg("Could not encode ready message")
		return
	}
	s.send(raw)
}

// SendAction requests a betting action. Amount is only meaningful for raise.
func (s *Session) SendAction(action game.Action, amount int) {
	raw, err := protocol.EncodeAction(action, amount)
	if err != nil {
		s.logger.Error().Err(err).
			Str(logging.ActionKey, string(action)).
			Msg("Could not encode action message")
		return
	}
	s.send(raw)
}

// Connected reports whether the join has been acknowledged. An open socket
// still waiting on the server does not count.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sm.Current() == SessionState__CONNECTED
}

// State returns the latest table state, or nil when none has arrived.
func (s *Session) State() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PlayerID returns the identity the session joined with.
func (s *Session) PlayerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

// PlayerName returns the display name the session joined with.
func (s *Session) PlayerName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerName
}

// Events returns the session's event log.
func (s *Session) Events() *EventLog {
	return s.events
}
