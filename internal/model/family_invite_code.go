package model

import "time"

// FamilyInviteCode represents an invite code created to let another caretaker join the family
type FamilyInviteCode struct {
	ID          int64      `json:"id"`
	FamilyID    int64      `json:"family_id"`
	Code        string     `json:"code"`
	MaxUses     *int       `json:"max_uses"` // nil = unlimited uses
	CurrentUses int        `json:"current_uses"`
	ExpiresAt   *time.Time `json:"expires_at"` // nil = never expires
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsValid checks if the invite code is valid for use
func (c *FamilyInviteCode) IsValid() bool {
	if !c.IsActive {
		return false
	}

	// Check if expired
	if c.ExpiresAt != nil && time.Now().After(*c.ExpiresAt) {
		return false
	}

	// Check if max uses reached
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return false
	}

	return true
}
