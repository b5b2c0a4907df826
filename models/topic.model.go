package models

import "gorm.io/gorm"

// Main categories for topics
const (
	CategoryBasics      = "basics"
	CategorySecurity    = "security"
	CategoryInvestments = "investments"
	CategoryPlanning    = "planning"
)

// Topic groups levels into a named learning theme
type Topic struct {
	gorm.Model
	Name            string `json:"name" gorm:"unique;not null"`
	Description     string `json:"description" gorm:"type:text"`
	Icon            string `json:"icon" gorm:"default:'fa-graduation-cap'"`
	MainCategory    string `json:"main_category" gorm:"default:'basics'"` // basics, security, investments, planning
	OrderInCategory int    `json:"order_in_category" gorm:"default:1"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
	IsSubcategory   bool   `json:"is_subcategory" gorm:"default:false"`
	ParentID        *uint  `json:"parent_id" gorm:"index"`
}
