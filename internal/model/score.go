package model

import (
	"fmt"
	"time"
)

// Score 一次测验作答的成绩记录，创建后不可变更。
// SubjectID/ChapterID 在创建时从测验谱系冗余，测验之后被移动也不影响历史报表。
// AttemptKey 仅在单次作答策略下填充 "<userID>:<quizID>"，
// 其上的唯一索引是并发提交防重的最终仲裁（NULL 之间不冲突，
// 可重复作答的测验因此不受限制）。
// swagger:model Score
type Score struct {
	BaseModel
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	QuizID       uint      `gorm:"index;not null" json:"quiz_id"`
	ChapterID    uint      `gorm:"index;not null" json:"chapter_id"`
	SubjectID    uint      `gorm:"index;not null" json:"subject_id"`
	ScoreOfUser  int       `gorm:"not null" json:"score_of_user"`
	MaximumScore int       `gorm:"not null" json:"maximum_score"`
	Percentage   float64   `gorm:"not null" json:"score_percentage"`
	ReleaseDate  time.Time `gorm:"not null" json:"score_release_date"`
	AttemptKey   *string   `gorm:"size:64;uniqueIndex" json:"-"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Quiz    *Quiz    `gorm:"foreignKey:QuizID" json:"-"`
	Chapter *Chapter `gorm:"foreignKey:ChapterID" json:"-"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"-"`
}

func (Score) TableName() string {
	return "scores"
}

// AttemptKeyFor 单次作答策略下的唯一键取值。
func AttemptKeyFor(userID, quizID uint) string {
	return fmt.Sprintf("%d:%d", userID, quizID)
}
