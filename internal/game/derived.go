package game

import "fmt"

// Derived values for the UI. All of these are computed from the latest
// table state on every call; nothing here is cached across updates, so a
// stale answer is impossible by construction. Every method tolerates a nil
// receiver (no state received yet) and answers with the zero value.

// IsMyTurn reports whether the server is waiting on playerID to act.
func (s *State) IsMyTurn(playerID string) bool {
	return s != nil && s.CurrentPlayerID == playerID
}

// ToCall is the amount playerID must add to match the current bet.
func (s *State) ToCall(playerID string) int {
	me := s.Me(playerID)
	if me == nil {
		return 0
	}
	toCall := s.CurrentBet - me.Bet
	if toCall < 0 {
		return 0
	}
	return toCall
}

// MinRaise is the minimum legal raise size: the big blind until someone
// raises, then the size of the last raise.
func (s *State) MinRaise() int {
	if s == nil {
		return 0
	}
	if s.LastRaiseSize > s.BigBlind {
		return s.LastRaiseSize
	}
	return s.BigBlind
}

// MaxRaise is the most playerID can raise after calling: the remaining stack.
func (s *State) MaxRaise(playerID string) int {
	me := s.Me(playerID)
	if me == nil {
		return 0
	}
	max := me.Chips - s.ToCall(playerID)
	if max < 0 {
		return 0
	}
	return max
}

// CanAct reports whether playerID is in a position to take betting actions
// at all: known to the server, in PLAYING status, and ready.
func (s *State) CanAct(playerID string) bool {
	me := s.Me(playerID)
	return me != nil && me.Status == StatusPlaying && me.Ready
}

// HandInProgress reports whether a hand is underway. While the table is
// paused for ready-up, no hand is in progress no matter what the other
// fields say. Otherwise any of a later street, chips in the pot, or board
// cards means the hand is live.
func (s *State) HandInProgress() bool {
	if s == nil {
		return false
	}
	if s.AwaitingReady {
		return false
	}
	if s.Stage != "" && s.Stage != StagePreflop {
		return true
	}
	if s.Pot > 0 {
		return true
	}
	return len(s.CommunityCards) > 0
}

// ActionEnabled reports whether the given action button should be live for
// playerID. Only check/call/raise have conditions beyond it being the
// player's turn; fold and allin are always available when acting.
func (s *State) ActionEnabled(playerID string, action Action) bool {
	if !s.IsMyTurn(playerID) || !s.CanAct(playerID) {
		return false
	}
	toCall := s.ToCall(playerID)
	switch action {
	case ActionCheck:
		return toCall == 0
	case ActionCall:
		return toCall > 0
	case ActionRaise:
		return toCall >= 0
	}
	return true
}

// ReadyDisabled reports whether the ready toggle should be inert for
// playerID: spectators cannot ready up, and a ready player cannot back out
// mid-hand.
func (s *State) ReadyDisabled(playerID string) bool {
	me := s.Me(playerID)
	if me == nil || !me.Seated {
		return true
	}
	return s.HandInProgress() && me.Ready
}

// NextReady is the ready flag a toggle should send for playerID: the
// negation of the current flag, or true when the player is not yet known.
func (s *State) NextReady(playerID string) bool {
	me := s.Me(playerID)
	if me == nil {
		return true
	}
	return !me.Ready
}

// ActionHint is a one-line status for the action bar: what the player is
// waiting on, plus the amounts that matter for the next decision.
func (s *State) ActionHint(playerID string) string {
	me := s.Me(playerID)
	if me == nil {
		return "Not seated."
	}
	turnLabel := "Waiting for ready"
	if !me.Seated {
		turnLabel = "Spectating (waiting for a seat)"
	}
	if s.CanAct(playerID) {
		if s.IsMyTurn(playerID) {
			turnLabel = "Your turn"
		} else {
			turnLabel = "Waiting for others"
		}
	}
	return fmt.Sprintf("%s | To call: %d | Min raise: %d | Max raise: %d",
		turnLabel, s.ToCall(playerID), s.MinRaise(), s.MaxRaise(playerID))
}
