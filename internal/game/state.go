package game

// Stage identifies the betting round of a hand.
type Stage string

const (
	StagePreflop  Stage = "PREFLOP"
	StageFlop     Stage = "FLOP"
	StageTurn     Stage = "TURN"
	StageRiver    Stage = "RIVER"
	StageShowdown Stage = "SHOWDOWN"
)

// PlayerStatus is the server-reported status of a player at the table.
type PlayerStatus string

const (
	StatusPlaying    PlayerStatus = "PLAYING"
	StatusFolded     PlayerStatus = "FOLDED"
	StatusAllIn      PlayerStatus = "ALL_IN"
	StatusWaiting    PlayerStatus = "WAITING"
	StatusEliminated PlayerStatus = "ELIMINATED"
	StatusSittingOut PlayerStatus = "SITTING_OUT"
)

// Action is a betting action the client can request.
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
	ActionAllIn Action = "allin"
)

// Player is one participant as reported inside a table state message.
// Hand is empty unless the server decided this client may see the cards.
type Player struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Chips  int          `json:"chips"`
	Bet    int          `json:"bet"`
	Hand   []string     `json:"hand"`
	Seated bool         `json:"seated"`
	Ready  bool         `json:"ready"`
	IsAI   bool         `json:"is_ai"`
	Status PlayerStatus `json:"status"`
}

// State is the complete table state pushed by the game server. Every
// game_update message carries a full State; the client swaps the whole
// thing, it never patches fields individually.
type State struct {
	Stage           Stage    `json:"stage"`
	Pot             int      `json:"pot"`
	CurrentPlayerID string   `json:"current_player_id"`
	CommunityCards  []string `json:"community_cards"`
	Players         []Player `json:"players"`
	DealerIndex     int      `json:"dealer_index"`
	SmallBlind      int      `json:"small_blind"`
	BigBlind        int      `json:"big_blind"`
	CurrentBet      int      `json:"current_bet"`
	LastRaiseSize   int      `json:"last_raise_size"`
	AwaitingReady   bool     `json:"awaiting_ready"`
}

// Me returns the player record matching playerID, or nil. A nil result is
// normal before the server has admitted the player.
func (s *State) Me(playerID string) *Player {
	if s == nil {
		return nil
	}
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return &s.Players[i]
		}
	}
	return nil
}

// SeatedPlayers returns the players currently holding a seat, in display order.
func (s *State) SeatedPlayers() []Player {
	if s == nil {
		return nil
	}
	var seated []Player
	for _, p := range s.Players {
		if p.Seated {
			seated = append(seated, p)
		}
	}
	return seated
}

// WaitingPlayers returns the players known to the server but not yet seated.
func (s *State) WaitingPlayers() []Player {
	if s == nil {
		return nil
	}
	var waiting []Player
	for _, p := range s.Players {
		if !p.Seated {
			waiting = append(waiting, p)
		}
	}
	return waiting
}
