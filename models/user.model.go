package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                 string    `json:"name" gorm:"default:''"`
	Email                string    `json:"email" gorm:"unique;not null"`
	Role                 string    `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	Password             string    `json:"-" gorm:"not null"`
	Points               int       `json:"points" gorm:"default:0"`
	Coins                int       `json:"coins" gorm:"default:0"`
	LevelNumber          int       `json:"level_number" gorm:"default:1"` // cached derivation of Points
	NotificationsEnabled bool      `json:"notifications_enabled" gorm:"default:true"`
	AvatarBorder         string    `json:"avatar_border" gorm:"default:'novice'"`
	LastLogin            time.Time `json:"last_login" gorm:"default:NULL"`
}

// Points thresholds for user levels 1..5
const (
	Level2Points = 50
	Level3Points = 150
	Level4Points = 300
	Level5Points = 500
)

// GetLevelNumber derives the user's level from points
func (u *User) GetLevelNumber() int {
	return LevelNumberForPoints(u.Points)
}

// LevelNumberForPoints maps total points to a level number
func LevelNumberForPoints(points int) int {
	switch {
	case points < Level2Points:
		return 1
	case points < Level3Points:
		return 2
	case points < Level4Points:
		return 3
	case points < Level5Points:
		return 4
	default:
		return 5
	}
}

// GetLevelTitle returns the display title for the user's current level
func (u *User) GetLevelTitle() string {
	switch u.GetLevelNumber() {
	case 1:
		return "Новичок"
	case 2:
		return "Ученик"
	case 3:
		return "Защитник"
	case 4:
		return "Эксперт"
	default:
		return "Мастер"
	}
}

// GetLevelProgress returns progress through the current level band in percent
func (u *User) GetLevelProgress() int {
	p := u.Points
	switch {
	case p < Level2Points:
		return p * 100 / Level2Points
	case p < Level3Points:
		return (p - Level2Points) * 100 / (Level3Points - Level2Points)
	case p < Level4Points:
		return (p - Level3Points) * 100 / (Level4Points - Level3Points)
	case p < Level5Points:
		return (p - Level4Points) * 100 / (Level5Points - Level4Points)
	default:
		return 100
	}
}
