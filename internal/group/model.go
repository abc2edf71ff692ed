package group

import "time"

// AdminGroupName marks the distinguished group whose members hold
// administrative privileges. Compared case-insensitively.
const AdminGroupName = "Admin"

type Group struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type MemberRef struct {
	ID    int    `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

type BoatRef struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type GroupDetails struct {
	Group
	Members []MemberRef `json:"members"`
	Boats   []BoatRef   `json:"boats"`
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenameGroupRequest struct {
	Name string `json:"name" binding:"required"`
}
