package model

// HelpRequest is a message from a learner to one of their linked grown-ups.
// swagger:model HelpRequest
type HelpRequest struct {
	BaseModel
	LearnerID uint   `gorm:"index;not null" json:"learnerId"`
	ToUserID  uint   `gorm:"index;not null" json:"toUserId"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Resolved  bool   `gorm:"default:false" json:"resolved"`

	Learner User `gorm:"foreignKey:LearnerID" json:"-"`
	ToUser  User `gorm:"foreignKey:ToUserID" json:"-"`
}

func (HelpRequest) TableName() string {
	return "help_requests"
}
