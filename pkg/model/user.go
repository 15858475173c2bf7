package model

import (
	"log/slog"
	"time"
)

// User domain object defining a user
// swagger:model
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Email     string    `gorm:"index;unique" json:"email"`
	Password  string    `json:"-"`
}

// LogValue implements [slog.LogValuer] so only the id ends up in log lines.
func (u *User) LogValue() slog.Value {
	return slog.Uint64Value(uint64(u.ID))
}
