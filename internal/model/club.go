package model

import "time"

type Club struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Membership ties a user to a club. PermissionLevel is 0 (member),
// 1 (moderator), or 2 (owner).
type Membership struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ClubID          int64     `json:"club_id"`
	PermissionLevel int       `json:"permission_level"`
	CreatedAt       time.Time `json:"created_at"`
}
