package model

import "time"

// Family объединяет нескольких ухаживающих вокруг общих собак
type Family struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FamilyMember участник семьи
type FamilyMember struct {
	FamilyID int64     `json:"family_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
