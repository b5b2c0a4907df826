package gameController

import (
	"encoding/json"
	"strings"

	"finquest/database"
	"finquest/middleware"
	"finquest/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreateTopic creates a topic (admin)
func CreateTopic(c *fiber.Ctx) error {
	reqData := new(struct {
		Name            string `json:"name"`
		Description     string `json:"description"`
		Icon            string `json:"icon"`
		MainCategory    string `json:"main_category"`
		OrderInCategory int    `json:"order_in_category"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if strings.TrimSpace(reqData.Name) == "" {
		errors["name"] = "Name is required!"
	}
	switch reqData.MainCategory {
	case models.CategoryBasics, models.CategorySecurity, models.CategoryInvestments, models.CategoryPlanning:
	default:
		errors["main_category"] = "Unknown main category!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	topic := models.Topic{
		Name:            reqData.Name,
		Description:     reqData.Description,
		Icon:            reqData.Icon,
		MainCategory:    reqData.MainCategory,
		OrderInCategory: reqData.OrderInCategory,
		IsActive:        true,
	}
	if topic.Icon == "" {
		topic.Icon = "fa-graduation-cap"
	}

	if err := database.Database.Db.Create(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Failed to create topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Topic created!", topic)
}

// CreateLevel creates a level with a typed content payload (admin).
// The content is validated against the level type's schema up front, so
// authoring errors surface here instead of at answer time.
func CreateLevel(c *fiber.Ctx) error {
	reqData := new(struct {
		TopicID      uint                   `json:"topic_id"`
		Type         string                 `json:"type"`
		Title        string                 `json:"title"`
		Description  string                 `json:"description"`
		Difficulty   int                    `json:"difficulty"`
		OrderInTopic int                    `json:"order_in_topic"`
		RewardPoints int                    `json:"reward_points"`
		RewardCoins  int                    `json:"reward_coins"`
		Content      map[string]interface{} `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	}
	if reqData.TopicID == 0 {
		errors["topic_id"] = "Topic is required!"
	} else if err := database.Database.Db.First(&models.Topic{}, reqData.TopicID).Error; err != nil {
		errors["topic_id"] = "Topic not found!"
	}
	if reqData.Difficulty < 1 || reqData.Difficulty > 3 {
		reqData.Difficulty = 1
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	content, err := json.Marshal(reqData.Content)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content payload!", nil)
	}

	level := models.Level{
		TopicID:      reqData.TopicID,
		Type:         reqData.Type,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Difficulty:   reqData.Difficulty,
		OrderInTopic: reqData.OrderInTopic,
		RewardPoints: reqData.RewardPoints,
		RewardCoins:  reqData.RewardCoins,
		Content:      datatypes.JSON(content),
	}
	if level.Type == "" {
		level.Type = models.LevelTypeQuiz
	}
	if level.RewardPoints == 0 {
		level.RewardPoints = 10
	}
	if level.RewardCoins == 0 {
		level.RewardCoins = 5
	}

	if _, err := level.ParseContent(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Content does not match level type: "+err.Error(), nil)
	}

	if err := database.Database.Db.Create(&level).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create level!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Level created!", level)
}

// UpdateTopic changes topic fields (admin)
func UpdateTopic(c *fiber.Ctx) error {
	topicID, err := c.ParamsInt("id")
	if err != nil || topicID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid topic id!", nil)
	}

	reqData := new(struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		Icon            *string `json:"icon"`
		OrderInCategory *int    `json:"order_in_category"`
		IsActive        *bool   `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var topic models.Topic
	if err := db.First(&topic, topicID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Icon != nil {
		updates["icon"] = *reqData.Icon
	}
	if reqData.OrderInCategory != nil {
		updates["order_in_category"] = *reqData.OrderInCategory
	}
	if reqData.IsActive != nil {
		updates["is_active"] = *reqData.IsActive
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&topic).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic updated!", topic)
}

// UpdateLevel changes level fields (admin). A new content payload is
// validated against the effective level type before it is stored.
func UpdateLevel(c *fiber.Ctx) error {
	levelID, err := c.ParamsInt("id")
	if err != nil || levelID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid level id!", nil)
	}

	reqData := new(struct {
		Title        *string                `json:"title"`
		Description  *string                `json:"description"`
		Difficulty   *int                   `json:"difficulty"`
		OrderInTopic *int                   `json:"order_in_topic"`
		RewardPoints *int                   `json:"reward_points"`
		RewardCoins  *int                   `json:"reward_coins"`
		Content      map[string]interface{} `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var level models.Level
	if err := db.First(&level, levelID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Level not found!", nil)
	}

	if reqData.Title != nil {
		level.Title = *reqData.Title
	}
	if reqData.Description != nil {
		level.Description = *reqData.Description
	}
	if reqData.Difficulty != nil && *reqData.Difficulty >= 1 && *reqData.Difficulty <= 3 {
		level.Difficulty = *reqData.Difficulty
	}
	if reqData.OrderInTopic != nil {
		level.OrderInTopic = *reqData.OrderInTopic
	}
	if reqData.RewardPoints != nil {
		level.RewardPoints = *reqData.RewardPoints
	}
	if reqData.RewardCoins != nil {
		level.RewardCoins = *reqData.RewardCoins
	}
	if reqData.Content != nil {
		content, err := json.Marshal(reqData.Content)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content payload!", nil)
		}
		level.Content = datatypes.JSON(content)
	}

	if _, err := level.ParseContent(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Content does not match level type: "+err.Error(), nil)
	}

	if err := db.Save(&level).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update level!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Level updated!", level)
}

// UpdateDailyQuest changes quest targets, rewards or active state (admin)
func UpdateDailyQuest(c *fiber.Ctx) error {
	questID, err := c.ParamsInt("id")
	if err != nil || questID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quest id!", nil)
	}

	reqData := new(struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		TargetValue  *int    `json:"target_value"`
		RewardCoins  *int    `json:"reward_coins"`
		RewardPoints *int    `json:"reward_points"`
		IsActive     *bool   `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var quest models.DailyQuest
	if err := db.First(&quest, questID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quest not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.TargetValue != nil {
		if *reqData.TargetValue < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"target_value": "Target must be at least 1!"})
		}
		updates["target_value"] = *reqData.TargetValue
	}
	if reqData.RewardCoins != nil {
		updates["reward_coins"] = *reqData.RewardCoins
	}
	if reqData.RewardPoints != nil {
		updates["reward_points"] = *reqData.RewardPoints
	}
	if reqData.IsActive != nil {
		updates["is_active"] = *reqData.IsActive
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&quest).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quest!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quest updated!", quest)
}

// CreateDailyQuest creates a daily quest (admin)
func CreateDailyQuest(c *fiber.Ctx) error {
	reqData := new(struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		QuestType    string `json:"quest_type"`
		TargetValue  int    `json:"target_value"`
		RewardCoins  int    `json:"reward_coins"`
		RewardPoints int    `json:"reward_points"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	}
	switch reqData.QuestType {
	case models.QuestLevelsCompleted, models.QuestArticlesRead, models.QuestPointsEarned,
		models.QuestStreakDays, models.QuestAchievementsEarned:
	default:
		errors["quest_type"] = "Unknown quest type!"
	}
	if reqData.TargetValue < 1 {
		errors["target_value"] = "Target must be at least 1!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	quest := models.DailyQuest{
		Title:        reqData.Title,
		Description:  reqData.Description,
		QuestType:    reqData.QuestType,
		TargetValue:  reqData.TargetValue,
		RewardCoins:  reqData.RewardCoins,
		RewardPoints: reqData.RewardPoints,
		IsActive:     true,
	}
	if err := database.Database.Db.Create(&quest).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quest!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quest created!", quest)
}
