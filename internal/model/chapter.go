package model

// swagger:model Chapter
type Chapter struct {
	BaseModel
	Name        string `gorm:"size:80;not null" json:"chapter_name"`
	Description string `gorm:"size:255;not null" json:"chapter_description"`
	SubjectID   uint   `gorm:"index;not null" json:"subject_id"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"-"`
}

func (Chapter) TableName() string {
	return "chapters"
}
