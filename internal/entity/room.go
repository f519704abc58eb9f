package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	MarkX   = "x"
	MarkO   = "o"
	MarkTie = "-"

	EmptyCell = ""
)

// Room coordinates one match between two participants, identified by a code.
type Room struct {
	Code   string
	Board  [9]string
	Turn   string
	Winner string
	Status string

	Creator *Participant
	Joiner  *Participant

	joined chan struct{}
}

func NewRoom(code string, creator *Participant) *Room {
	return &Room{
		Code:    code,
		Turn:    MarkX,
		Status:  StatusWaiting,
		Creator: creator,
		joined:  make(chan struct{}),
	}
}

// Attach binds the second participant and flips the room to ongoing.
// Callers serialize this through the registry lock.
func (that *Room) Attach(joiner *Participant) {
	that.Joiner = joiner
	that.Status = StatusOngoing
	close(that.joined)
}

// Joined is closed exactly once, when a joiner attaches.
func (that *Room) Joined() <-chan struct{} {
	return that.joined
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Room) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

// ParticipantByMark returns the participant playing the given mark.
func (that *Room) ParticipantByMark(mark string) *Participant {
	if that.Creator != nil && that.Creator.Mark == mark {
		return that.Creator
	}
	return that.Joiner
}
