package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SwufeNinja/texas-tableclient/internal/logging"
)

// RosterClient manages the AI participants at the table through the game
// server's REST endpoints. The server owns the roster; this client only
// sends requests and reports outcomes to the event log.
type RosterClient struct {
	url        string
	httpClient *http.Client
	logger     *zerolog.Logger

	// handInProgress gates removal. It is a best-effort UX guard computed
	// from the latest table state; the server enforces the real rule.
	handInProgress func() bool

	// notify appends a human-readable outcome to the event log.
	notify func(string)
}

type rosterResult struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
}

// NewRosterClient creates a roster client against the server base URL.
func NewRosterClient(url string, handInProgress func() bool, notify func(string), logger *zerolog.Logger) *RosterClient {
	if logger == nil {
		logger = logging.GetZeroLogger("rest::roster", nil)
	}
	if notify == nil {
		notify = func(string) {}
	}
	return &RosterClient{
		url:            strings.TrimRight(url, "/"),
		httpClient:     &http.Client{},
		logger:         logger,
		handInProgress: handInProgress,
		notify:         notify,
	}
}

// AddParticipant asks the server to admit an AI player.
func (rc *RosterClient) AddParticipant(playerID string, name string) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		rc.notify("AI add failed: player id is required")
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "AI"
	}

	payload := struct {
		PlayerID string `json:"player_id"`
		Name     string `json:"name"`
	}{PlayerID: playerID, Name: name}

	result, err := rc.post("/ai", payload)
	if err != nil {
		rc.logger.Error().Err(err).Str(logging.PlayerIDKey, playerID).Msg("AI add request failed")
		rc.notify(fmt.Sprintf("AI add failed: %s", err))
		return
	}
	if result.Ok {
		rc.notify(fmt.Sprintf("AI %s added", playerID))
	} else {
		rc.notify(fmt.Sprintf("AI add failed: %s", result.Message))
	}
}

// RemoveParticipant asks the server to drop an AI player. Removal is
// refused locally while a hand is running; no request is sent in that case.
func (rc *RosterClient) RemoveParticipant(playerID string) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		rc.notify("AI remove failed: player id is required")
		return
	}
	if rc.handInProgress != nil && rc.handInProgress() {
		rc.notify("AI remove failed: game already started")
		return
	}

	payload := struct {
		PlayerID string `json:"player_id"`
	}{PlayerID: playerID}

	result, err := rc.post("/ai/remove", payload)
	if err != nil {
		rc.logger.Error().Err(err).Str(logging.PlayerIDKey, playerID).Msg("AI remove request failed")
		rc.notify(fmt.Sprintf("AI remove failed: %s", err))
		return
	}
	if result.Ok {
		rc.notify(fmt.Sprintf("AI %s removed", playerID))
	} else {
		rc.notify(fmt.Sprintf("AI remove failed: %s", result.Message))
	}
}

func (rc *RosterClient) post(path string, payload interface{}) (*rosterResult, error) {
	reqData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s%s", rc.url, path)
	resp, err := rc.httpClient.Post(url, "application/json", bytes.NewBuffer(reqData))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var result rosterResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
