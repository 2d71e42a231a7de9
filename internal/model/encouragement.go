package model

import "time"

// Encouragement is a short calm phrase shown in the learner space. One
// phrase is "currently used" at a time and the selection rotates among the
// enabled ones.
// swagger:model Encouragement
type Encouragement struct {
	BaseModel
	Content         string    `gorm:"type:text;not null" json:"content"`
	IsEnabled       bool      `gorm:"default:true" json:"isEnabled"`
	IsCurrentlyUsed bool      `gorm:"default:false" json:"isCurrentlyUsed"`
	LastUsedAt      time.Time `json:"lastUsedAt"`
}

func (Encouragement) TableName() string {
	return "encouragements"
}
