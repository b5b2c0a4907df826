package models

import "gorm.io/gorm"

// Article is a reading material attached to a topic
type Article struct {
	gorm.Model
	TopicID uint   `json:"topic_id" gorm:"index;not null"`
	Topic   Topic  `json:"-"`
	Title   string `json:"title" gorm:"not null"`
	Content string `json:"content" gorm:"type:text"`
}

// UserArticleRead marks that a user has read an article; the first read
// advances the articles_read daily quest
type UserArticleRead struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_user_article;not null"`
	ArticleID uint `json:"article_id" gorm:"uniqueIndex:idx_user_article;not null"`
}
