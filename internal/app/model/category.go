package model

import "time"

// Category is a named grouping that links may optionally reference. Names are
// not required to be unique.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// CategoryWithCount pairs a category with the number of links referencing it.
type CategoryWithCount struct {
	Category
	LinkCount int64 `json:"linkCount" gorm:"column:link_count"`
}
