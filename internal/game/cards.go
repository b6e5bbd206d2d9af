package game

// Card tokens arrive from the server as rank+suit strings like "Ah", "Td",
// "9s". The helpers here only classify tokens for display; the server is
// the source of truth for what the cards mean.

const boardSize = 5

// CardRank returns the rank portion of a card token ("A", "T", "9").
func CardRank(token string) string {
	if len(token) < 2 {
		return ""
	}
	return token[:len(token)-1]
}

// CardSuit returns the suit character of a card token (h, d, c, s).
func CardSuit(token string) byte {
	if len(token) < 2 {
		return 0
	}
	return token[len(token)-1]
}

// IsRedCard reports whether the token is a heart or diamond.
func IsRedCard(token string) bool {
	suit := CardSuit(token)
	return suit == 'h' || suit == 'd'
}

// SuitGlyph maps a suit character to its symbol for terminal display.
func SuitGlyph(suit byte) string {
	switch suit {
	case 'h':
		return "♥"
	case 'd':
		return "♦"
	case 'c':
		return "♣"
	case 's':
		return "♠"
	}
	return "?"
}

// CommunityDisplay pads the board out to five card slots so the UI always
// renders a full row; empty strings mark face-down slots.
func (s *State) CommunityDisplay() []string {
	display := make([]string, 0, boardSize)
	if s != nil {
		display = append(display, s.CommunityCards...)
	}
	for len(display) < boardSize {
		display = append(display, "")
	}
	return display
}

// HandDisplay returns a player's hole cards padded to two slots.
func HandDisplay(p *Player) []string {
	if p == nil || len(p.Hand) == 0 {
		return []string{"", ""}
	}
	return p.Hand
}
