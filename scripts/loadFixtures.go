package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"finquest/config"
	"finquest/database"
	"finquest/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Fixture file shape: topics with nested levels, articles and hints,
// plus the daily quest catalog. Run from the repo root:
//
//	go run scripts/loadFixtures.go fixtures/levels.json
type fixtureFile struct {
	Topics []fixtureTopic       `json:"topics"`
	Quests []fixtureQuest       `json:"daily_quests"`
	Badges []models.Achievement `json:"achievements"`
}

type fixtureTopic struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Icon            string           `json:"icon"`
	MainCategory    string           `json:"main_category"`
	OrderInCategory int              `json:"order_in_category"`
	Levels          []fixtureLevel   `json:"levels"`
	Articles        []fixtureArticle `json:"articles"`
}

type fixtureLevel struct {
	Type         string          `json:"type"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Difficulty   int             `json:"difficulty"`
	OrderInTopic int             `json:"order_in_topic"`
	RewardPoints int             `json:"reward_points"`
	RewardCoins  int             `json:"reward_coins"`
	Content      json.RawMessage `json:"content"`
	Hints        []fixtureHint   `json:"hints"`
}

type fixtureHint struct {
	Text      string `json:"text"`
	CostCoins int    `json:"cost_coins"`
}

type fixtureArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type fixtureQuest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	QuestType    string `json:"quest_type"`
	TargetValue  int    `json:"target_value"`
	RewardCoins  int    `json:"reward_coins"`
	RewardPoints int    `json:"reward_points"`
}

func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	path := "fixtures/levels.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to open fixture file: %v", err)
	}

	var fixtures fixtureFile
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		log.Fatalf("Failed to parse fixture file: %v", err)
	}

	log.Printf("Loading %d topics, %d quests, %d achievements from %s",
		len(fixtures.Topics), len(fixtures.Quests), len(fixtures.Badges), path)

	topics, levels := loadTopics(db, fixtures.Topics)
	quests := loadQuests(db, fixtures.Quests)
	badges := loadAchievements(db, fixtures.Badges)

	log.Printf("Done: %d topics, %d levels, %d quests, %d achievements", topics, levels, quests, badges)
}

func loadTopics(db *gorm.DB, fixtures []fixtureTopic) (topics, levels int) {
	for _, ft := range fixtures {
		topic := models.Topic{Name: ft.Name}
		if err := db.Where("name = ?", ft.Name).First(&topic).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			topic = models.Topic{
				Name:            ft.Name,
				Description:     ft.Description,
				Icon:            ft.Icon,
				MainCategory:    ft.MainCategory,
				OrderInCategory: ft.OrderInCategory,
				IsActive:        true,
			}
			if err := db.Create(&topic).Error; err != nil {
				log.Fatalf("Failed to create topic %q: %v", ft.Name, err)
			}
			topics++
		} else if err != nil {
			log.Fatalf("Failed to look up topic %q: %v", ft.Name, err)
		}

		for _, fl := range ft.Levels {
			levels += loadLevel(db, topic.ID, fl)
		}
		for _, fa := range ft.Articles {
			loadArticle(db, topic.ID, fa)
		}
	}
	return topics, levels
}

func loadLevel(db *gorm.DB, topicID uint, fl fixtureLevel) int {
	var existing models.Level
	err := db.Where("topic_id = ? AND title = ?", topicID, fl.Title).First(&existing).Error
	if err == nil {
		return 0
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up level %q: %v", fl.Title, err)
	}

	level := models.Level{
		TopicID:      topicID,
		Type:         fl.Type,
		Title:        fl.Title,
		Description:  fl.Description,
		Difficulty:   fl.Difficulty,
		OrderInTopic: fl.OrderInTopic,
		RewardPoints: fl.RewardPoints,
		RewardCoins:  fl.RewardCoins,
		Content:      datatypes.JSON(fl.Content),
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

	// Reject malformed content before it can reach players
	if _, err := level.ParseContent(); err != nil {
		log.Fatalf("Invalid content in level %q: %v", fl.Title, err)
	}

	if err := db.Create(&level).Error; err != nil {
		log.Fatalf("Failed to create level %q: %v", fl.Title, err)
	}

	for _, fh := range fl.Hints {
		hint := models.Hint{LevelID: level.ID, Text: fh.Text, CostCoins: fh.CostCoins}
		if hint.CostCoins == 0 {
			hint.CostCoins = 5
		}
		if err := db.Create(&hint).Error; err != nil {
			log.Fatalf("Failed to create hint for level %q: %v", fl.Title, err)
		}
	}
	return 1
}

func loadArticle(db *gorm.DB, topicID uint, fa fixtureArticle) {
	var existing models.Article
	err := db.Where("topic_id = ? AND title = ?", topicID, fa.Title).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up article %q: %v", fa.Title, err)
	}
	article := models.Article{TopicID: topicID, Title: fa.Title, Content: fa.Content}
	if err := db.Create(&article).Error; err != nil {
		log.Fatalf("Failed to create article %q: %v", fa.Title, err)
	}
}

func loadQuests(db *gorm.DB, fixtures []fixtureQuest) int {
	created := 0
	for _, fq := range fixtures {
		var existing models.DailyQuest
		err := db.Where("title = ?", fq.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up quest %q: %v", fq.Title, err)
		}
		quest := models.DailyQuest{
			Title:        fq.Title,
			Description:  fq.Description,
			QuestType:    fq.QuestType,
			TargetValue:  fq.TargetValue,
			RewardCoins:  fq.RewardCoins,
			RewardPoints: fq.RewardPoints,
			IsActive:     true,
		}
		if err := db.Create(&quest).Error; err != nil {
			log.Fatalf("Failed to create quest %q: %v", fq.Title, err)
		}
		created++
	}
	return created
}

func loadAchievements(db *gorm.DB, fixtures []models.Achievement) int {
	created := 0
	for _, fb := range fixtures {
		var existing models.Achievement
		err := db.Where("name = ?", fb.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up achievement %q: %v", fb.Name, err)
		}
		badge := models.Achievement{
			Name:         fb.Name,
			Description:  fb.Description,
			Rarity:       fb.Rarity,
			Category:     fb.Category,
			Icon:         fb.Icon,
			PointsReward: fb.PointsReward,
			CoinsReward:  fb.CoinsReward,
		}
		if err := db.Create(&badge).Error; err != nil {
			log.Fatalf("Failed to create achievement %q: %v", fb.Name, err)
		}
		created++
	}
	return created
}
