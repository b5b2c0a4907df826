package gameController

import (
	"errors"
	"time"

	"finquest/database"
	"finquest/game"
	"finquest/middleware"
	"finquest/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetLevel returns a level for play with correctness markers stripped and
// lazily creates the (user, level) progress record on first view
func GetLevel(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	levelID, err := c.ParamsInt("id")
	if err != nil || levelID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid level id!", nil)
	}

	db := database.Database.Db

	var level models.Level
	if err := db.First(&level, levelID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Level not found!", nil)
	}

	content, err := level.ParseContent()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Level content is invalid!", nil)
	}

	progress, err := game.EnsureProgress(db, userID, level.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	var hints []models.Hint
	db.Select("id, level_id, cost_coins").Where("level_id = ?", level.ID).Find(&hints)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Level fetched!", fiber.Map{
		"level": fiber.Map{
			"id":            level.ID,
			"topic_id":      level.TopicID,
			"type":          level.Type,
			"title":         level.Title,
			"description":   level.Description,
			"difficulty":    level.Difficulty,
			"reward_points": level.RewardPoints,
			"reward_coins":  level.RewardCoins,
			"content":       content.PlayView(),
		},
		"progress": progress,
		"hints":    hints,
	})
}

// SubmitAnswer runs the evaluate -> record -> streak -> achievements
// pipeline for one validated answer submission
func SubmitAnswer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	level := c.Locals("level").(*models.Level)
	content := c.Locals("levelContent").(*models.LevelContent)
	ans := c.Locals("answer").(game.Answer)
	questionIndex := c.Locals("questionIndex").(int)
	completionTime := c.Locals("completionTime").(int)

	// The progress record is created on first view of the level; its
	// absence here is a broken invariant, not a recoverable state.
	var existing models.UserLevelProgress
	if err := db.Where("user_id = ? AND level_id = ?", userID, level.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Progress record missing!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	session, err := game.GetSession(db, userID, level.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load session!", nil)
	}

	// Quest steps are tracked server-side, the client cannot skip ahead
	if level.Type == models.LevelTypeQuest {
		questionIndex = session.Step
		if questionIndex >= len(content.Steps) {
			questionIndex = 0
		}
	}

	verdict, outcome := game.EvaluateLevel(level, content, questionIndex, ans)

	if outcome == game.OutcomeContinue {
		if err := game.AdvanceQuestStep(db, session); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quest step!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer accepted!", fiber.Map{
			"verdict":  verdict,
			"continue": true,
			"step":     session.Step,
			"steps":    len(content.Steps),
		})
	}

	finalVerdict := verdict
	multiQuestion := (level.Type == models.LevelTypeQuiz || level.Type == models.LevelTypeTest) && len(content.Questions) > 1
	if multiQuestion {
		mean, done, err := game.RecordQuestionAnswer(db, session, questionIndex, verdict.Percentage, len(content.Questions))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save answer!", nil)
		}
		if !done {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer accepted!", fiber.Map{
				"verdict":   verdict,
				"continue":  true,
				"questions": len(content.Questions),
			})
		}
		display := "Уровень пройден!"
		if mean < game.PassThreshold {
			display = "Попробуй еще раз"
		}
		finalVerdict = game.Verdict{IsCorrect: mean >= game.PassThreshold, Percentage: mean, Display: display}
	}

	if level.Type == models.LevelTypeQuest && outcome == game.OutcomePass {
		if err := game.ResetQuestStep(db, session); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset quest!", nil)
		}
	}

	progress, firstPass, err := game.RecordAttempt(db, &user, level, finalVerdict, completionTime)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	streak, err := game.UpdateStreak(db, &user, time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update streak!", nil)
	}

	if err := game.CheckAchievements(db, &user); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check achievements!", nil)
	}

	levelUp, err := game.TakePendingLevelUp(db, userID, level.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read level-up state!", nil)
	}

	data := fiber.Map{
		"verdict":    finalVerdict,
		"progress":   progress,
		"first_pass": firstPass,
		"streak":     streak.CurrentStreak,
		"points":     user.Points,
		"coins":      user.Coins,
	}
	if levelUp > 0 {
		data["level_up"] = levelUp
	}
	if firstPass {
		data["reward"] = fiber.Map{
			"points": level.RewardPoints,
			"coins":  level.RewardCoins,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted!", data)
}

// BuyHint charges coins for a hint, once per user and hint
func BuyHint(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	hintID, err := c.ParamsInt("hintId")
	if err != nil || hintID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid hint id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var hint models.Hint
	if err := db.First(&hint, hintID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Hint not found!", nil)
	}

	// Already purchased: return the text without charging again
	var purchase models.UserHint
	if err := db.Where("user_id = ? AND hint_id = ?", userID, hint.ID).First(&purchase).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Hint fetched!", fiber.Map{"text": hint.Text})
	}

	if user.Coins < hint.CostCoins {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Not enough coins!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.UserHint{UserID: userID, HintID: hint.ID}).Error; err != nil {
			return err
		}
		user.Coins -= hint.CostCoins
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("coins", user.Coins).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to buy hint!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hint purchased!", fiber.Map{
		"text":  hint.Text,
		"coins": user.Coins,
	})
}
