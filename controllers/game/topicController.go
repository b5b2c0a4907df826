package gameController

import (
	"finquest/database"
	"finquest/game"
	"finquest/middleware"
	"finquest/models"
	"finquest/utils"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns the main screen: topics grouped by category, the user's
// summary, today's quests and the currency-rates widget
func Dashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var topics []models.Topic
	db.Where("is_active = true").
		Order("main_category asc, order_in_category asc").
		Find(&topics)

	grouped := map[string][]models.Topic{}
	for _, topic := range topics {
		grouped[topic.MainCategory] = append(grouped[topic.MainCategory], topic)
	}

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = false", userID).Count(&unread)

	quests, err := game.TodayQuestProgress(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load quests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched!", fiber.Map{
		"user": fiber.Map{
			"name":           user.Name,
			"points":         user.Points,
			"coins":          user.Coins,
			"level_number":   user.LevelNumber,
			"level_title":    user.GetLevelTitle(),
			"level_progress": user.GetLevelProgress(),
			"streak":         game.CurrentStreak(db, userID),
		},
		"topics":               grouped,
		"unread_notifications": unread,
		"daily_quests":         quests,
		"currency_rates":       utils.CachedRates(),
	})
}

// GetTopicLevels lists a topic's levels in order with per-user progress
func GetTopicLevels(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	topicID, err := c.ParamsInt("id")
	if err != nil || topicID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid topic id!", nil)
	}

	db := database.Database.Db

	var topic models.Topic
	if err := db.First(&topic, topicID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	var levels []models.Level
	db.Where("topic_id = ?", topic.ID).Order("order_in_topic asc").Find(&levels)

	var progress []models.UserLevelProgress
	levelIDs := make([]uint, len(levels))
	for i, level := range levels {
		levelIDs[i] = level.ID
	}
	db.Where("user_id = ? AND level_id IN ?", userID, levelIDs).Find(&progress)

	byLevel := make(map[uint]models.UserLevelProgress, len(progress))
	for _, p := range progress {
		byLevel[p.LevelID] = p
	}

	type levelView struct {
		ID           uint   `json:"id"`
		Type         string `json:"type"`
		Title        string `json:"title"`
		Difficulty   int    `json:"difficulty"`
		OrderInTopic int    `json:"order_in_topic"`
		RewardPoints int    `json:"reward_points"`
		RewardCoins  int    `json:"reward_coins"`
		Completed    bool   `json:"completed"`
		BestScore    int    `json:"best_score"`
		Attempts     int    `json:"attempts"`
	}

	views := make([]levelView, len(levels))
	for i, level := range levels {
		p := byLevel[level.ID]
		views[i] = levelView{
			ID:           level.ID,
			Type:         level.Type,
			Title:        level.Title,
			Difficulty:   level.Difficulty,
			OrderInTopic: level.OrderInTopic,
			RewardPoints: level.RewardPoints,
			RewardCoins:  level.RewardCoins,
			Completed:    p.Completed,
			BestScore:    p.BestScore,
			Attempts:     p.Attempts,
		}
	}

	var articles []models.Article
	db.Select("id, topic_id, title").Where("topic_id = ?", topic.ID).Find(&articles)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Levels fetched!", fiber.Map{
		"topic":    topic,
		"levels":   views,
		"articles": articles,
	})
}

// GetArticle returns one article; the first read advances the
// articles_read daily quest
func GetArticle(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	articleID, err := c.ParamsInt("id")
	if err != nil || articleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid article id!", nil)
	}

	db := database.Database.Db

	var article models.Article
	if err := db.First(&article, articleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	var read models.UserArticleRead
	if err := db.Where("user_id = ? AND article_id = ?", userID, article.ID).First(&read).Error; err != nil {
		if err := db.Create(&models.UserArticleRead{UserID: userID, ArticleID: article.ID}).Error; err == nil {
			var user models.User
			if err := db.First(&user, userID).Error; err == nil {
				if err := game.UpdateQuestProgress(db, &user, models.QuestArticlesRead, 1); err != nil {
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quests!", nil)
				}
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article fetched!", fiber.Map{
		"article": article,
	})
}
