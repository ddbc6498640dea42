package model

import (
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Image          *string   `json:"img,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
