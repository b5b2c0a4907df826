package utils

import (
	"log"
	"time"

	"finquest/database"
	"finquest/game"
	"finquest/models"

	"github.com/robfig/cron/v3"
)

// InitializeDailySchedulers sets up the recurring platform jobs
func InitializeDailySchedulers() {
	log.Println("[DAILY-SCHEDULER] Initializing daily schedulers...")

	c := cron.New()

	// Refresh currency rates for the dashboard widget every morning
	c.AddFunc("0 8 * * *", func() {
		log.Println("[DAILY-SCHEDULER] Refreshing currency rates...")
		FetchDailyRates()
	})

	// Rebuild the leaderboard snapshot nightly
	c.AddFunc("30 0 * * *", func() {
		log.Println("[DAILY-SCHEDULER] Rebuilding leaderboard snapshot...")
		RebuildLeaderboard()
	})

	// Credit streak-based daily quests for users who studied today
	c.AddFunc("0 21 * * *", func() {
		log.Println("[DAILY-SCHEDULER] Crediting streak quests...")
		CreditStreakQuests()
	})

	// Remind users whose streak is about to break
	c.AddFunc("0 19 * * *", func() {
		log.Println("[DAILY-SCHEDULER] Sending streak reminders...")
		SendStreakReminders()
	})

	c.Start()
	log.Println("[DAILY-SCHEDULER] Daily schedulers started")

	// Warm the rates cache so the dashboard has data right away
	go FetchDailyRates()
}

// RebuildLeaderboard refreshes the snapshot rows for every user
func RebuildLeaderboard() {
	db := database.Database.Db

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		log.Printf("[DAILY-SCHEDULER] Error fetching users: %v", err)
		return
	}

	for i := range users {
		if _, err := game.RefreshLeaderboard(db, &users[i]); err != nil {
			log.Printf("[DAILY-SCHEDULER] Error refreshing leaderboard for user %d: %v", users[i].ID, err)
		}
	}

	log.Printf("[DAILY-SCHEDULER] Leaderboard rebuilt for %d users", len(users))
}

// CreditStreakQuests advances the streak_days quest for users active today
func CreditStreakQuests() {
	db := database.Database.Db
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var streaks []models.Streak
	if err := db.Where("last_activity IS NOT NULL AND last_activity >= ?", today).Find(&streaks).Error; err != nil {
		log.Printf("[DAILY-SCHEDULER] Error fetching streaks: %v", err)
		return
	}

	for _, streak := range streaks {
		var user models.User
		if err := db.First(&user, streak.UserID).Error; err != nil {
			continue
		}
		// Daily quest rows start at zero each day, so the delta is the full streak length
		if err := game.UpdateQuestProgress(db, &user, models.QuestStreakDays, streak.CurrentStreak); err != nil {
			log.Printf("[DAILY-SCHEDULER] Error crediting streak quest for user %d: %v", user.ID, err)
		}
	}

	log.Printf("[DAILY-SCHEDULER] Streak quests credited for %d users", len(streaks))
}

// SendStreakReminders emails users who studied yesterday but not yet today
func SendStreakReminders() {
	db := database.Database.Db

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	var streaks []models.Streak
	if err := db.
		Where("current_streak > 0 AND last_activity >= ? AND last_activity < ?", yesterday, today).
		Find(&streaks).Error; err != nil {
		log.Printf("[DAILY-SCHEDULER] Error fetching idle streaks: %v", err)
		return
	}

	sent := 0
	for _, streak := range streaks {
		var user models.User
		if err := db.First(&user, streak.UserID).Error; err != nil {
			continue
		}
		if !user.NotificationsEnabled || user.Email == "" {
			continue
		}
		go SendStreakReminderEmail(user.Email, user.Name, streak.CurrentStreak)
		sent++
	}

	log.Printf("[DAILY-SCHEDULER] Streak reminders queued for %d users", sent)
}
