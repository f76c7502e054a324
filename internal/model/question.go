package model

// Question 四选一题目。ChapterID 冗余自所属测验的章节，便于章节维度统计。
// Answer 约定与四个选项之一语义一致，由管理端保证。
// swagger:model Question
type Question struct {
	BaseModel
	QuizID    uint   `gorm:"index;not null" json:"quiz_id"`
	ChapterID uint   `gorm:"index;not null" json:"chapter_id"`
	Tag       string `gorm:"size:120;not null" json:"question_tag"`
	Text      string `gorm:"type:text;not null" json:"question_text"`
	OptionA   string `gorm:"size:255;not null" json:"question_option_a"`
	OptionB   string `gorm:"size:255;not null" json:"question_option_b"`
	OptionC   string `gorm:"size:255;not null" json:"question_option_c"`
	OptionD   string `gorm:"size:255;not null" json:"question_option_d"`
	Answer    string `gorm:"size:255;not null" json:"question_answer"`
}

func (Question) TableName() string {
	return "questions"
}
