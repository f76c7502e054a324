package repository

import (
	"quizdom_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// Create 单条插入。单次作答策略下 attempt_key 的唯一索引在并发时兜底，
// 重复键由 gorm 翻译为 gorm.ErrDuplicatedKey，调用方负责映射。
func (r *ScoreRepository) Create(score *model.Score) error {
	return r.DB.Create(score).Error
}

func (r *ScoreRepository) FindByUserAndQuiz(userID, quizID uint) (*model.Score, error) {
	var score model.Score
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// ListByUser 某用户的全部成绩，携带科目/章节/测验名用于成绩单。
func (r *ScoreRepository) ListByUser(userID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Preload("Subject").Preload("Chapter").Preload("Quiz").
		Where("user_id = ?", userID).Order("id asc").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) CountByQuiz(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Score{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

// SubjectAggregate 按科目聚合的统计行
type SubjectAggregate struct {
	SubjectName    string  `gorm:"column:subject_name"`
	Attempts       int64   `gorm:"column:attempts"`
	BestPercentage float64 `gorm:"column:best_percentage"`
}

// AggregateBySubject 按科目统计作答次数与最高百分比。
// userID 为 0 时统计全平台，否则仅统计该用户。
func (r *ScoreRepository) AggregateBySubject(userID uint) ([]SubjectAggregate, error) {
	query := r.DB.Model(&model.Score{}).
		Select("subjects.name as subject_name, count(scores.id) as attempts, max(scores.percentage) as best_percentage").
		Joins("JOIN subjects ON subjects.id = scores.subject_id").
		Where("subjects.deleted_at IS NULL")

	if userID > 0 {
		query = query.Where("scores.user_id = ?", userID)
	}

	var rows []SubjectAggregate
	err := query.Group("subjects.name").Order("subjects.name asc").Scan(&rows).Error
	return rows, err
}

// ExportRow 成绩导出 CSV 的一行
type ExportRow struct {
	QuizID       uint      `gorm:"column:quiz_id"`
	QuizName     string    `gorm:"column:quiz_name"`
	ScoreOfUser  int       `gorm:"column:score_of_user"`
	MaximumScore int       `gorm:"column:maximum_score"`
	ReleaseDate  time.Time `gorm:"column:release_date"`
}

func (r *ScoreRepository) ListForExport(userID uint) ([]ExportRow, error) {
	var rows []ExportRow
	err := r.DB.Model(&model.Score{}).
		Select("scores.quiz_id as quiz_id, quizzes.name as quiz_name, scores.score_of_user as score_of_user, scores.maximum_score as maximum_score, scores.release_date as release_date").
		Joins("JOIN quizzes ON quizzes.id = scores.quiz_id").
		Where("scores.user_id = ?", userID).
		Order("scores.id asc").
		Scan(&rows).Error
	return rows, err
}

// MonthlySummary 月报所需的汇总数据
type MonthlySummary struct {
	TotalQuizzes  int64
	AvgPercentage float64
}

func (r *ScoreRepository) SummarizeByUser(userID uint) (*MonthlySummary, error) {
	var summary MonthlySummary

	if err := r.DB.Model(&model.Score{}).
		Where("user_id = ?", userID).
		Count(&summary.TotalQuizzes).Error; err != nil {
		return nil, err
	}

	if summary.TotalQuizzes > 0 {
		if err := r.DB.Model(&model.Score{}).
			Where("user_id = ?", userID).
			Select("avg(percentage)").
			Scan(&summary.AvgPercentage).Error; err != nil {
			return nil, err
		}
	}

	return &summary, nil
}

// ListAttemptedQuizIDs 用户已作答过的测验 id，每日提醒用来求未作答集合。
func (r *ScoreRepository) ListAttemptedQuizIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Score{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("quiz_id", &ids).Error
	return ids, err
}
