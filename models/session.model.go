package models

import (
	"encoding/json"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LevelSession is the per-user per-level slot carrying in-progress
// multi-question answers, the current quest step and the one-shot
// level-up banner. Rows are short-lived: cleared when the level attempt
// finishes and the banner has been consumed.
type LevelSession struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"uniqueIndex:idx_user_level_session;not null"`
	LevelID        uint           `json:"level_id" gorm:"uniqueIndex:idx_user_level_session;not null"`
	Answers        datatypes.JSON `json:"answers"` // question index -> percentage
	Step           int            `json:"step" gorm:"default:0"`
	PendingLevelUp int            `json:"pending_level_up" gorm:"default:0"`
}

// AnswerMap decodes the accumulated per-question percentages
func (s *LevelSession) AnswerMap() map[int]int {
	answers := map[int]int{}
	if len(s.Answers) == 0 {
		return answers
	}
	raw := map[string]int{}
	if err := json.Unmarshal(s.Answers, &raw); err != nil {
		return answers
	}
	for k, v := range raw {
		if idx, err := strconv.Atoi(k); err == nil {
			answers[idx] = v
		}
	}
	return answers
}

// SetAnswerMap encodes the accumulated per-question percentages
func (s *LevelSession) SetAnswerMap(answers map[int]int) {
	raw := map[string]int{}
	for k, v := range answers {
		raw[strconv.Itoa(k)] = v
	}
	data, _ := json.Marshal(raw)
	s.Answers = data
}
