package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelNumberForPoints(t *testing.T) {
	tests := []struct {
		points int
		level  int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{149, 2},
		{150, 3},
		{299, 3},
		{300, 4},
		{499, 4},
		{500, 5},
		{5000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelNumberForPoints(tt.points), "points=%d", tt.points)
	}
}

func TestGetLevelTitle(t *testing.T) {
	titles := map[int]string{
		0:   "Новичок",
		60:  "Ученик",
		200: "Защитник",
		350: "Эксперт",
		700: "Мастер",
	}
	for points, title := range titles {
		u := User{Points: points}
		assert.Equal(t, title, u.GetLevelTitle(), "points=%d", points)
	}
}

func TestGetLevelProgress(t *testing.T) {
	assert.Equal(t, 0, (&User{Points: 0}).GetLevelProgress())
	assert.Equal(t, 50, (&User{Points: 25}).GetLevelProgress())
	assert.Equal(t, 0, (&User{Points: 50}).GetLevelProgress())
	assert.Equal(t, 100, (&User{Points: 999}).GetLevelProgress())
}
