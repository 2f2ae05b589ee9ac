package model

import "time"

// Link is a stored short-link record. Its ID doubles as the public short
// identifier resolved at GET /:id. Clicks is only ever mutated through the
// repository's atomic increment.
type Link struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	URL         string    `json:"url" gorm:"type:text;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	CategoryID  *string   `json:"categoryId" gorm:"size:36;index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Clicks      int64     `json:"clicks" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime;index"`
}
