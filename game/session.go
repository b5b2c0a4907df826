package game

import (
	"errors"

	"finquest/models"

	"gorm.io/gorm"
)

// GetSession loads or lazily creates the per-user per-level session slot
func GetSession(db *gorm.DB, userID, levelID uint) (*models.LevelSession, error) {
	var session models.LevelSession
	err := db.Where("user_id = ? AND level_id = ?", userID, levelID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.LevelSession{UserID: userID, LevelID: levelID}
		if err := db.Create(&session).Error; err != nil {
			return nil, err
		}
		return &session, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// RecordQuestionAnswer stores one question's percentage in the session and
// reports whether all questions are now answered. When they are, it returns
// the arithmetic mean of the per-question percentages and clears the
// accumulated answers.
func RecordQuestionAnswer(db *gorm.DB, session *models.LevelSession, questionIndex, percentage, totalQuestions int) (int, bool, error) {
	answers := session.AnswerMap()
	answers[questionIndex] = percentage

	if len(answers) < totalQuestions {
		session.SetAnswerMap(answers)
		if err := db.Save(session).Error; err != nil {
			return 0, false, err
		}
		return 0, false, nil
	}

	sum := 0
	for _, p := range answers {
		sum += p
	}
	mean := sum / totalQuestions

	session.SetAnswerMap(map[int]int{})
	if err := db.Save(session).Error; err != nil {
		return 0, false, err
	}
	return mean, true, nil
}

// AdvanceQuestStep moves the quest step pointer forward
func AdvanceQuestStep(db *gorm.DB, session *models.LevelSession) error {
	session.Step++
	return db.Save(session).Error
}

// ResetQuestStep rewinds a finished or failed quest to its first step
func ResetQuestStep(db *gorm.DB, session *models.LevelSession) error {
	if session.Step == 0 {
		return nil
	}
	session.Step = 0
	return db.Save(session).Error
}

// SetPendingLevelUp stores the one-shot level-up banner in the session slot
func SetPendingLevelUp(db *gorm.DB, userID, levelID uint, levelNumber int) error {
	session, err := GetSession(db, userID, levelID)
	if err != nil {
		return err
	}
	session.PendingLevelUp = levelNumber
	return db.Save(session).Error
}

// TakePendingLevelUp consumes the level-up banner: it is returned exactly
// once and cleared. Zero means no pending banner.
func TakePendingLevelUp(db *gorm.DB, userID, levelID uint) (int, error) {
	var session models.LevelSession
	err := db.Where("user_id = ? AND level_id = ?", userID, levelID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	pending := session.PendingLevelUp
	if pending != 0 {
		session.PendingLevelUp = 0
		if err := db.Save(&session).Error; err != nil {
			return 0, err
		}
	}
	return pending, nil
}
