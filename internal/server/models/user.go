// Package models holds the server-side domain records.
package models

import (
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
)

// User is a stored identity. PasswordHash never leaves the server.
type User struct {
	ID           common.UserID
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
