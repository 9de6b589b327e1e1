package internal

// A Slot is one of two places in a Match.
//
// A Slot can represent one of 3 things:
//   - An actual player
//   - The not yet known winner of an earlier match
//     (e.g. the slots of a final are the winners of the
//     semi-finals)
//   - An empty place that gives the opponent a walkover (bye)
//
// Slots of later rounds change what they represent while the
// tournament is played: when the source match is decided the
// slot takes over its winner, or becomes a bye when nobody
// came out of that match.
type Slot struct {
	Player *Player
	// The match whose winner moves into this slot.
	// Nil for slots of the first round.
	Source *Match
	Bye    *Bye
}

// Returns whether this slot is an effective bye
func (s *Slot) IsBye() bool {
	return s.Bye != nil
}

// Pulls the winner of the source match into this slot.
// Called when the source match was decided.
func (s *Slot) Update() {
	if s.Source == nil {
		return
	}
	if !s.Source.Decided() {
		s.Player = nil
		s.Bye = nil
		return
	}
	s.Player = s.Source.Winner
	if s.Player == nil {
		s.Bye = &Bye{Drawn: false}
	} else {
		s.Bye = nil
	}
}

func NewPlayerSlot(player *Player) *Slot {
	return &Slot{Player: player}
}

func NewSourceSlot(source *Match) *Slot {
	return &Slot{Source: source}
}

func NewByeSlot(drawn bool) *Slot {
	bye := &Bye{Drawn: drawn}
	return &Slot{Bye: bye}
}

// A Bye is a free win for a player.
type Bye struct {
	// This is true when the bye is due to an under-filled draw
	// and false when nobody came out of the source match
	Drawn bool
}

// Hands out IDs for the matches and graph nodes of one
// tournament
type idSequence struct {
	next int
}

func (s *idSequence) Next() int {
	id := s.next
	s.next += 1
	return id
}
