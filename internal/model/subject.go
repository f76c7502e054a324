package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string    `gorm:"size:80;uniqueIndex;not null" json:"subject_name"`
	Description string    `gorm:"size:255;not null" json:"subject_description"`
	Chapters    []Chapter `gorm:"foreignKey:SubjectID" json:"chapters,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}
