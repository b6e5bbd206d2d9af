package protocol

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/SwufeNinja/texas-tableclient/internal/game"
)

// Message type tags exchanged with the game server over the websocket.
const (
	// Client -> Server
	MsgJoin   string = "join"
	MsgReady  string = "ready"
	MsgAction string = "action"

	// Server -> Client
	MsgGameUpdate string = "game_update"
	MsgJoinOK     string = "join_ok"
	MsgError      string = "error"
	MsgSystem     string = "system"
)

// Envelope wraps every message in both directions. Data is decoded a second
// time once the type tag is known.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Join is the handshake sent as soon as the socket opens.
type Join struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// Ready toggles the client's ready flag during the ready-up pause.
type Ready struct {
	Ready bool `json:"ready"`
}

// PlayerAction requests a betting action. Amount only matters for raise,
// but it is always present on the wire so the server sees a stable shape.
type PlayerAction struct {
	Action game.Action `json:"action"`
	Amount int         `json:"amount"`
}

// ServerError is the payload of an error message from the server.
type ServerError struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// SystemEvent is the payload of a system notice from the server.
type SystemEvent struct {
	Event    string `json:"event"`
	PlayerID string `json:"player_id"`
	Waiting  bool   `json:"waiting"`
}

// Inbound is the decoded form of one server message. Exactly one payload
// field is set, matched by Type.
type Inbound struct {
	Type   string
	State  *game.State
	Error  *ServerError
	System *SystemEvent
}

// DecodeInbound parses one raw server frame into its typed form.
func DecodeInbound(raw []byte) (*Inbound, error) {
	var env Envelope
	if err := jsoniter.Unmarshal(raw, &env); err != nil {
		return nil, errors.Wrap(err, "could not parse message envelope")
	}
	in := Inbound{Type: env.Type}
	switch env.Type {
	case MsgGameUpdate:
		var state game.State
		if err := jsoniter.Unmarshal(env.Data, &state); err != nil {
			return nil, errors.Wrap(err, "could not parse game_update payload")
		}
		in.State = &state
	case MsgJoinOK:
		// The payload is opaque; receiving the tag is the acknowledgement.
	case MsgError:
		var serverErr ServerError
		if len(env.Data) > 0 {
			if err := jsoniter.Unmarshal(env.Data, &serverErr); err != nil {
				return nil, errors.Wrap(err, "could not parse error payload")
			}
		}
		in.Error = &serverErr
	case MsgSystem:
		var event SystemEvent
		if len(env.Data) > 0 {
			if err := jsoniter.Unmarshal(env.Data, &event); err != nil {
				return nil, errors.Wrap(err, "could not parse system payload")
			}
		}
		in.System = &event
	default:
		return nil, errors.Errorf("unknown message type [%s]", env.Type)
	}
	return &in, nil
}

func encode(msgType string, data interface{}) ([]byte, error) {
	payload, err := jsoniter.Marshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not marshal %s payload", msgType)
	}
	return jsoniter.Marshal(Envelope{Type: msgType, Data: payload})
}

// EncodeJoin builds the join frame for the given identity.
func EncodeJoin(playerID string, name string) ([]byte, error) {
	return encode(MsgJoin, Join{PlayerID: playerID, Name: name})
}

// EncodeReady builds a ready toggle frame.
func EncodeReady(ready bool) ([]byte, error) {
	return encode(MsgReady, Ready{Ready: ready})
}

// EncodeAction builds an action frame. Non-raise actions carry amount 0.
func EncodeAction(action game.Action, amount int) ([]byte, error) {
	if action != game.ActionRaise {
		amount = 0
	}
	return encode(MsgAction, PlayerAction{Action: action, Amount: amount})
}

// FormatError renders a server error for the event log, appending any
// detail pairs inline in a stable order.
func FormatError(serverErr *ServerError) string {
	msg := fmt.Sprintf("Error: %s", serverErr.Message)
	if len(serverErr.Details) == 0 {
		return msg
	}
	keys := make([]string, 0, len(serverErr.Details))
	for k := range serverErr.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, serverErr.Details[k]))
	}
	return msg + " " + strings.Join(parts, " ")
}

// FormatSystem renders a system notice for the event log. Join notices get
// a seated/waiting qualifier; everything else is just the event name plus
// the player it concerns.
func FormatSystem(event *SystemEvent) string {
	name := event.Event
	if name == "" {
		name = "system"
	}
	playerID := ""
	if event.PlayerID != "" {
		playerID = " " + event.PlayerID
	}
	if name == "player_joined" {
		status := "seated"
		if event.Waiting {
			status = "waiting"
		}
		return fmt.Sprintf("System: %s%s (%s)", name, playerID, status)
	}
	return fmt.Sprintf("System: %s%s", name, playerID)
}
