package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/SwufeNinja/texas-tableclient/internal/client"
	"github.com/SwufeNinja/texas-tableclient/internal/game"
)

const logTailSize = 6

// Console renders the table from the session's derived values. It holds no
// game state of its own.
type Console struct {
	session *client.Session
}

func NewConsole(session *client.Session) *Console {
	return &Console{session: session}
}

// Render prints the whole table view: connection status, seats, board,
// action hint, and the tail of the event log.
func (c *Console) Render() {
	state := c.session.State()
	playerID := c.session.PlayerID()

	status := pterm.LightRed("Disconnected")
	if c.session.Connected() {
		status = pterm.LightGreen("Connected")
	}
	pterm.DefaultBasicText.Printfln("%s as %s", status, pterm.LightCyan(playerID))

	if state == nil {
		pterm.Println(pterm.Gray("No table state yet."))
		c.renderLogTail()
		return
	}

	var seatPanels []pterm.Panel
	for _, p := range state.SeatedPlayers() {
		seatPanels = append(seatPanels, pterm.Panel{Data: renderSeat(state, p, playerID)})
	}
	board := pterm.Panel{Data: renderBoard(state)}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		seatPanels,
		{board},
	}).Render()

	if waiting := state.WaitingPlayers(); len(waiting) > 0 {
		names := make([]string, 0, len(waiting))
		for _, p := range waiting {
			names = append(names, p.Name)
		}
		pterm.Println(pterm.Gray("Waiting for a seat: " + strings.Join(names, ", ")))
	}

	pterm.Println(pterm.LightYellow(state.ActionHint(playerID)))
	c.renderLogTail()
}

func (c *Console) renderLogTail() {
	entries := c.session.Events().Entries()
	if len(entries) > logTailSize {
		entries = entries[:logTailSize]
	}
	for _, entry := range entries {
		pterm.Println(pterm.Gray("  " + entry))
	}
}

func renderSeat(state *game.State, p game.Player, playerID string) string {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
	title := p.Name
	if p.ID == playerID {
		title = pterm.LightCyan(p.Name + " (you)")
	}
	if p.ID == state.CurrentPlayerID {
		pbox = pbox.WithTitle(title + " " + pterm.LightYellow("*")).WithTitleTopLeft()
	} else {
		pbox = pbox.WithTitle(title).WithTitleTopLeft()
	}

	statusLabel := string(p.Status)
	switch p.Status {
	case game.StatusFolded:
		statusLabel = pterm.LightRed(statusLabel)
	case game.StatusPlaying:
		statusLabel = pterm.LightGreen(statusLabel)
	}
	if !p.Ready {
		statusLabel += pterm.Gray(" (not ready)")
	}
	if p.IsAI {
		statusLabel += pterm.Gray(" [AI]")
	}

	cards := make([]string, 0, 2)
	for _, token := range game.HandDisplay(&p) {
		cards = append(cards, RenderCard(token))
	}
	return pbox.Sprintf("%s\nChips: %d  Bet: %d\n%s",
		statusLabel, p.Chips, p.Bet, strings.Join(cards, " "))
}

func renderBoard(state *game.State) string {
	cards := make([]string, 0, 5)
	for _, token := range state.CommunityDisplay() {
		cards = append(cards, RenderCard(token))
	}
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTitle("Board").WithTitleTopCenter()
	return pbox.Sprintf("%s\nPot: %d  Stage: %s",
		strings.Join(cards, " "), state.Pot, state.Stage)
}

// RenderCard colors a card token for the terminal; blank tokens render as
// a face-down placeholder.
func RenderCard(token string) string {
	if token == "" {
		return pterm.Gray("[--]")
	}
	glyph := fmt.Sprintf("[%s%s]", game.CardRank(token), game.SuitGlyph(game.CardSuit(token)))
	if game.IsRedCard(token) {
		return pterm.LightRed(glyph)
	}
	return pterm.White(glyph)
}
