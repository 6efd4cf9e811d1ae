package model

import "time"

// RoomMember is a user's membership in a room, in join order.
type RoomMember struct {
	Name   string `json:"name"`
	UserID int    `json:"index"`
}

// Room is a lobby slot awaiting a second player. Only single-member rooms
// exist in storage: a room is consumed the instant a second member joins.
type Room struct {
	ID        int
	Members   []RoomMember
	CreatedAt time.Time
}

// HasMember reports whether the user is already a member of the room.
func (r *Room) HasMember(userID int) bool {
	for _, m := range r.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsOpen reports whether the room is still waiting for a second player.
func (r *Room) IsOpen() bool {
	return len(r.Members) == 1
}
