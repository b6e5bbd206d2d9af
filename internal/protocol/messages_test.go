package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SwufeNinja/texas-tableclient/internal/game"
)

func TestEncodeJoin(t *testing.T) {
	raw, err := EncodeJoin("p1", "Alice")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"join","data":{"player_id":"p1","name":"Alice"}}`, string(raw))
}

func TestEncodeReady(t *testing.T) {
	raw, err := EncodeReady(true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ready","data":{"ready":true}}`, string(raw))

	raw, err = EncodeReady(false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ready","data":{"ready":false}}`, string(raw))
}

func TestEncodeAction(t *testing.T) {
	testCases := []struct {
		name     string
		action   game.Action
		amount   int
		expected string
	}{
		{
			name:     "raise keeps amount",
			action:   game.ActionRaise,
			amount:   40,
			expected: `{"type":"action","data":{"action":"raise","amount":40}}`,
		},
		{
			name:     "call zeroes amount",
			action:   game.ActionCall,
			amount:   40,
			expected: `{"type":"action","data":{"action":"call","amount":0}}`,
		},
		{
			name:     "check always carries amount field",
			action:   game.ActionCheck,
			amount:   0,
			expected: `{"type":"action","data":{"action":"check","amount":0}}`,
		},
		{
			name:     "fold zeroes amount",
			action:   game.ActionFold,
			amount:   99,
			expected: `{"type":"action","data":{"action":"fold","amount":0}}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := EncodeAction(tc.action, tc.amount)
			require.NoError(t, err)
			assert.JSONEq(t, tc.expected, string(raw))
		})
	}
}

func TestDecodeGameUpdate(t *testing.T) {
	raw := []byte(`{
		"type": "game_update",
		"data": {
			"stage": "FLOP",
			"pot": 60,
			"current_player_id": "p2",
			"community_cards": ["Ah", "Kd", "2c"],
			"small_blind": 5,
			"big_blind": 10,
			"current_bet": 20,
			"last_raise_size": 10,
			"awaiting_ready": false,
			"players": [
				{"id": "p1", "name": "Alice", "chips": 100, "bet": 20, "hand": ["Qs", "Qd"],
				 "seated": true, "ready": true, "is_ai": false, "status": "PLAYING"}
			]
		}
	}`)
	in, err := DecodeInbound(raw)
	require.NoError(t, err)
	require.Equal(t, MsgGameUpdate, in.Type)
	require.NotNil(t, in.State)
	assert.Equal(t, game.StageFlop, in.State.Stage)
	assert.Equal(t, 60, in.State.Pot)
	assert.Equal(t, "p2", in.State.CurrentPlayerID)
	require.Len(t, in.State.Players, 1)
	assert.Equal(t, game.StatusPlaying, in.State.Players[0].Status)
	assert.Equal(t, []string{"Qs", "Qd"}, in.State.Players[0].Hand)
}

func TestDecodeJoinOK(t *testing.T) {
	in, err := DecodeInbound([]byte(`{"type":"join_ok","data":{"anything":"goes"}}`))
	require.NoError(t, err)
	assert.Equal(t, MsgJoinOK, in.Type)
	assert.Nil(t, in.State)
}

func TestDecodeError(t *testing.T) {
	in, err := DecodeInbound([]byte(`{"type":"error","data":{"message":"invalid action","details":{"action":"raise","reason":"below minimum"}}}`))
	require.NoError(t, err)
	require.NotNil(t, in.Error)
	assert.Equal(t, "invalid action", in.Error.Message)
	assert.Equal(t, "below minimum", in.Error.Details["reason"])
}

func TestDecodeSystem(t *testing.T) {
	in, err := DecodeInbound([]byte(`{"type":"system","data":{"event":"player_joined","player_id":"p2","waiting":true}}`))
	require.NoError(t, err)
	require.NotNil(t, in.System)
	assert.Equal(t, "player_joined", in.System.Event)
	assert.True(t, in.System.Waiting)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "this is not json"},
		{name: "unknown type", raw: `{"type":"telemetry","data":{}}`},
		{name: "game_update with broken payload", raw: `{"type":"game_update","data":"nope"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := DecodeInbound([]byte(tc.raw))
			assert.Error(t, err)
			assert.Nil(t, in)
		})
	}
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "Error: out of turn",
		FormatError(&ServerError{Message: "out of turn"}))
	assert.Equal(t, "Error: invalid raise amount=3 min=10",
		FormatError(&ServerError{
			Message: "invalid raise",
			Details: map[string]string{"min": "10", "amount": "3"},
		}))
}

func TestFormatSystem(t *testing.T) {
	testCases := []struct {
		name     string
		event    SystemEvent
		expected string
	}{
		{
			name:     "join seated",
			event:    SystemEvent{Event: "player_joined", PlayerID: "p2", Waiting: false},
			expected: "System: player_joined p2 (seated)",
		},
		{
			name:     "join waiting",
			event:    SystemEvent{Event: "player_joined", PlayerID: "p3", Waiting: true},
			expected: "System: player_joined p3 (waiting)",
		},
		{
			name:     "other event with player",
			event:    SystemEvent{Event: "player_left", PlayerID: "p2"},
			expected: "System: player_left p2",
		},
		{
			name:     "other event without player",
			event:    SystemEvent{Event: "hand_started"},
			expected: "System: hand_started",
		},
		{
			name:     "empty event",
			event:    SystemEvent{},
			expected: "System: system",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatSystem(&tc.event))
		})
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	raw, err := EncodeReady(true)
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, MsgReady, env.Type)
	var payload Ready
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.True(t, payload.Ready)
}
