package game

import (
	"fmt"
	"strings"
	"testing"

	"finquest/database"
	"finquest/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database, one per test
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	database.RunMigrations(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:                 "Вика",
		Email:                strings.ToLower(strings.ReplaceAll(t.Name(), "/", "_")) + "@example.com",
		Password:             "hash",
		LevelNumber:          1,
		NotificationsEnabled: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTopic(t *testing.T, db *gorm.DB, name string) *models.Topic {
	t.Helper()
	topic := &models.Topic{Name: name, MainCategory: models.CategoryBasics, IsActive: true}
	require.NoError(t, db.Create(topic).Error)
	return topic
}

func createTestLevel(t *testing.T, db *gorm.DB, topicID uint, levelType string, order int) *models.Level {
	t.Helper()
	level := &models.Level{
		TopicID:      topicID,
		Type:         levelType,
		Title:        fmt.Sprintf("Уровень %d", order),
		OrderInTopic: order,
		RewardPoints: 10,
		RewardCoins:  5,
	}
	require.NoError(t, db.Create(level).Error)
	return level
}

func createTestQuest(t *testing.T, db *gorm.DB, questType string, target, coins, points int) *models.DailyQuest {
	t.Helper()
	quest := &models.DailyQuest{
		Title:        fmt.Sprintf("Задание %s", questType),
		QuestType:    questType,
		TargetValue:  target,
		RewardCoins:  coins,
		RewardPoints: points,
		IsActive:     true,
	}
	require.NoError(t, db.Create(quest).Error)
	return quest
}

func notificationTexts(t *testing.T, db *gorm.DB, userID uint) []string {
	t.Helper()
	var rows []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("id").Find(&rows).Error)
	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.Text
	}
	return texts
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}
