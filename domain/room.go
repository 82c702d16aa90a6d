package domain

type RoomID int

// Room is the conversational context shared by every live connection plus
// one orchestrator and one deliberation engine instance. One Room per
// process lifetime; multi-room deployments compose independent Rooms.
type Room struct {
	ID   RoomID
	Name string
}

func NewRoom(id int, name string) *Room {
	return &Room{
		ID:   RoomID(id),
		Name: name,
	}
}
