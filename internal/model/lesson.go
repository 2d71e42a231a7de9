package model

type LessonKind string

const (
	LessonChapter LessonKind = "chapter"
	LessonStory   LessonKind = "story"
)

// Lesson is a piece of learning material authored by a teacher or parent.
// OriginalText is what the author pasted in; FriendlyText is the gentle,
// step-by-step rewrite shown to learners. Steps are never stored: they are
// derived from FriendlyText line by line when the lesson is read.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	OwnerID       uint       `gorm:"index;not null" json:"ownerId"`
	OwnerRole     UserRole   `gorm:"size:20" json:"ownerRole"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Kind          LessonKind `gorm:"size:20;default:'chapter'" json:"kind"`
	OriginalText  string     `gorm:"type:text" json:"originalText"`
	FriendlyText  string     `gorm:"type:text" json:"friendlyText"`
	ImageURL      string     `gorm:"size:500" json:"imageUrl"`
	VideoURL      string     `gorm:"size:500" json:"videoUrl"`
	VideoPoster   string     `gorm:"size:500" json:"videoPoster"`
	VideoDuration float64    `json:"videoDuration"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}
