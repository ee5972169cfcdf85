package domain

import "github.com/google/uuid"

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string // argon2id PHC string
}

// UserPatch is a partial update; nil fields keep their stored value.
type UserPatch struct {
	Username     *string
	PasswordHash *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.PasswordHash == nil
}
