package types

import (
	"time"
)

// User is a durable account row. The primary key is the identity string
// issued by the auth provider, so provisioning is an upsert keyed on it.
// The shared demo account lives here too, under its fixed identity.
type User struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	DailyGoal int       `gorm:"column:daily_goal;not null;default:10" json:"daily_goal"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
