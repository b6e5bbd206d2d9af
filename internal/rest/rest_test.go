package rest

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRoster fakes the game server's roster endpoints and records the
// request bodies it saw.
type stubRoster struct {
	srv *httptest.Server

	mu         sync.Mutex
	addBodies  []map[string]string
	removeHits int
	respond    func(path string) (bool, string)
}

func startStubRoster(t *testing.T) *stubRoster {
	t.Helper()
	stub := &stubRoster{
		respond: func(string) (bool, string) { return true, "" },
	}
	mux := http.NewServeMux()
	handler := func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		var fields map[string]string
		json.Unmarshal(body, &fields)
		stub.mu.Lock()
		if r.URL.Path == "/ai" {
			stub.addBodies = append(stub.addBodies, fields)
		} else {
			stub.removeHits++
		}
		stub.mu.Unlock()
		ok, message := stub.respond(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": ok, "message": message})
	}
	mux.HandleFunc("/ai", handler)
	mux.HandleFunc("/ai/remove", handler)
	stub.srv = httptest.NewServer(mux)
	t.Cleanup(stub.srv.Close)
	return stub
}

type notices struct {
	mu      sync.Mutex
	entries []string
}

func (n *notices) append(entry string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, entry)
}

func (n *notices) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.entries...)
}

func TestAddParticipant(t *testing.T) {
	stub := startStubRoster(t)
	log := &notices{}
	rc := NewRosterClient(stub.srv.URL, func() bool { return false }, log.append, nil)

	rc.AddParticipant(" ai_1 ", " DealerBot ")

	require.Len(t, stub.addBodies, 1)
	assert.Equal(t, "ai_1", stub.addBodies[0]["player_id"])
	assert.Equal(t, "DealerBot", stub.addBodies[0]["name"])
	assert.Equal(t, []string{"AI ai_1 added"}, log.all())
}

func TestAddParticipantDefaultsName(t *testing.T) {
	stub := startStubRoster(t)
	log := &notices{}
	rc := NewRosterClient(stub.srv.URL, func() bool { return false }, log.append, nil)

	rc.AddParticipant("ai_1", "")
	require.Len(t, stub.addBodies, 1)
	assert.Equal(t, "AI", stub.addBodies[0]["name"])
}

func TestAddParticipantRejectedByServer(t *testing.T) {
	stub := startStubRoster(t)
	stub.respond = func(string) (bool, string) { return false, "table is full" }
	log := &notices{}
	rc := NewRosterClient(stub.srv.URL, func() bool { return false }, log.append, nil)

	rc.AddParticipant("ai_1", "DealerBot")
	assert.Equal(t, []string{"AI add failed: table is full"}, log.all())
}

func TestAddParticipantBlankID(t *testing.T) {
	stub := startStubRoster(t)
	log := &notices{}
	rc := NewRosterClient(stub.srv.URL, func() bool { return false }, log.append, nil)

	rc.AddParticipant("   ", "DealerBot")
	assert.Empty(t, stub.addBodies, "no request must be sent for a blank id")
	assert.Equal(t, []string{"AI add failed: player id is required"}, log.all())
}

func TestRemoveParticipant(t *testing.T) {
	stub := startStubRoster(t)
	log := &notices{}
	rc := NewRosterClient(stub.srv.URL, func() bool { return false }, log.append, nil)

	rc.RemoveParticipant("ai_1")
	assert.Equal(t, 1, stub.removeHits)
	assert.Equal(t, []string{"AI ai_1 removed"}, log.all())
}

func TestRemoveParticipantBlockedMidHand(t *testing.T) {
	stub := startStubRoster(t)
	log := &notices{}
	rc := NewRosterClient(stub.srv.URL, func() bool { return true }, log.append, nil)

	rc.RemoveParticipant("ai_1")
	assert.Equal(t, 0, stub.removeHits, "no network call while a hand is in progress")
	assert.Equal(t, []string{"AI remove failed: game already started"}, log.all())
}

func TestRemoveParticipantRejectedByServer(t *testing.T) {
	stub := startStubRoster(t)
	stub.respond = func(string) (bool, string) { return false, "no such player" }
	log := &notices{}
	rc := NewRosterClient(stub.srv.URL, func() bool { return false }, log.append, nil)

	rc.RemoveParticipant("ai_9")
	assert.Equal(t, []string{"AI remove failed: no such player"}, log.all())
}

func TestRosterServerUnreachable(t *testing.T) {
	log := &notices{}
	rc := NewRosterClient("http://127.0.0.1:1", func() bool { return false }, log.append, nil)

	rc.AddParticipant("ai_1", "DealerBot")
	entries := log.all()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], "AI add failed:")
}
