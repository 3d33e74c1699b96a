package types

import "time"

// User is a stored account. Authentication flows are not provided.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserCreate is the payload for registering a user.
type UserCreate struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserUpdate is a partial user update. Empty fields are left unchanged.
type UserUpdate struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=3,max=64,alphanum"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// UserSettings holds per-user display preferences.
type UserSettings struct {
	UserID               int64             `json:"user_id"`
	Theme                string            `json:"theme" validate:"omitempty,oneof=light dark"`
	DefaultTimeframe     string            `json:"default_timeframe"`
	FavoriteStocks       []string          `json:"favorite_stocks" validate:"max=100,dive,required,max=16"`
	NotificationSettings map[string]string `json:"notification_settings"`
}

// DefaultUserSettings returns the settings of a new user.
func DefaultUserSettings(userID int64) UserSettings {
	return UserSettings{
		UserID:               userID,
		Theme:                "light",
		DefaultTimeframe:     "1d",
		FavoriteStocks:       []string{},
		NotificationSettings: map[string]string{},
	}
}
