package model

import (
	"time"
)

// Quiz 测验，归属于一个章节。
// Duration 为 "HH:MM:SS" 形式的作答时限，仅用于前端倒计时展示，
// 提交侧不做超时判定。
// IsAttempted 三态：nil/false 表示可重复作答，true 表示每人仅限一次。
// swagger:model Quiz
type Quiz struct {
	BaseModel
	Name        string    `gorm:"size:80;uniqueIndex;not null" json:"quiz_name"`
	Description string    `gorm:"size:255;not null" json:"quiz_description"`
	ChapterID   uint      `gorm:"index;not null" json:"chapter_id"`
	// IsActive 不带列默认值：带 default 标签时 gorm 在插入中省略零值字段，
	// 停用状态的新测验会被建成启用状态。启用与否始终由服务层显式赋值。
	IsActive    bool      `gorm:"not null" json:"quiz_is_active"`
	ReleaseDate time.Time `gorm:"not null" json:"quiz_release_date"`
	Duration    string    `gorm:"size:8;not null" json:"quiz_duration"`
	IsAttempted *bool     `json:"quiz_is_attempted"`

	Chapter *Chapter `gorm:"foreignKey:ChapterID" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// SingleAttempt 是否启用单次作答策略。
func (q *Quiz) SingleAttempt() bool {
	return q.IsAttempted != nil && *q.IsAttempted
}
