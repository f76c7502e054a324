package service

import (
	"fmt"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/util"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quizdom_backend/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db      *gorm.DB
	attempt *AttemptService
	scores  *repository.ScoreRepository
	user    *model.User
	quiz    *model.Quiz
}

// newFixture 建立一套最小谱系：科目-章节-测验，外加一个普通用户。
func newFixture(t *testing.T, singleAttempt bool, questionCount int) *fixture {
	t.Helper()
	db := newTestDB(t)

	user := &model.User{Name: "alice", Email: "alice@example.com", Password: "x", FullName: "Alice", Role: model.RoleUser}
	require.NoError(t, db.Create(user).Error)

	subject := &model.Subject{Name: "Geography", Description: "maps"}
	require.NoError(t, db.Create(subject).Error)

	chapter := &model.Chapter{SubjectID: subject.ID, Name: "Capitals", Description: "capitals"}
	require.NoError(t, db.Create(chapter).Error)

	quiz := &model.Quiz{
		Name:        "Capitals Quiz",
		Description: "capitals of the world",
		ChapterID:   chapter.ID,
		IsActive:    true,
		ReleaseDate: time.Now(),
		Duration:    "00:30:00",
		IsAttempted: &singleAttempt,
	}
	require.NoError(t, db.Create(quiz).Error)

	answers := []string{"A", "B", "C", "D"}
	for i := 0; i < questionCount; i++ {
		q := &model.Question{
			QuizID:    quiz.ID,
			ChapterID: chapter.ID,
			Tag:       fmt.Sprintf("tag-%d", i),
			Text:      fmt.Sprintf("question %d", i),
			OptionA:   "opt a", OptionB: "opt b", OptionC: "opt c", OptionD: "opt d",
			Answer: answers[i%len(answers)],
		}
		require.NoError(t, db.Create(q).Error)
	}

	scores := repository.NewScoreRepository(db)
	attempt := NewAttemptService(
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		scores,
		repository.NewChapterRepository(db),
		repository.NewUserRepository(db),
	)

	return &fixture{db: db, attempt: attempt, scores: scores, user: user, quiz: quiz}
}

func (f *fixture) answersFor(t *testing.T, correct int) map[string]string {
	t.Helper()
	var questions []model.Question
	require.NoError(t, f.db.Where("quiz_id = ?", f.quiz.ID).Order("id asc").Find(&questions).Error)

	answers := make(map[string]string, len(questions))
	for i, q := range questions {
		key := strconv.FormatUint(uint64(q.ID), 10)
		if i < correct {
			answers[key] = q.Answer
		} else {
			answers[key] = "wrong"
		}
	}
	return answers
}

func TestStartAttempt(t *testing.T) {
	f := newFixture(t, false, 4)

	resp, err := f.attempt.StartAttempt(f.quiz.ID, f.user.ID)
	require.NoError(t, err)

	assert.Equal(t, f.quiz.ID, resp.QuizID)
	assert.Equal(t, "Capitals Quiz", resp.QuizName)
	assert.Equal(t, 1800, resp.TimeLimit)
	require.Len(t, resp.Questions, 4)
	assert.Equal(t, "A", resp.Questions[0].Answer)

	// 开卷无状态变更，可重复
	_, err = f.attempt.StartAttempt(f.quiz.ID, f.user.ID)
	assert.NoError(t, err)
}

func TestStartAttemptUnknownQuiz(t *testing.T) {
	f := newFixture(t, false, 1)

	_, err := f.attempt.StartAttempt(9999, f.user.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestStartAttemptUnknownUser(t *testing.T) {
	f := newFixture(t, false, 1)

	_, err := f.attempt.StartAttempt(f.quiz.ID, 9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestSubmitAttemptGrades(t *testing.T) {
	f := newFixture(t, false, 4)

	result, err := f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 2))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 4, result.MaximumScore)
	assert.InDelta(t, 50.0, result.Percentage, 0.001)

	score, err := f.scores.FindByUserAndQuiz(f.user.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, score.ScoreOfUser)
	assert.Equal(t, 4, score.MaximumScore)
	assert.InDelta(t, 50.0, score.Percentage, 0.001)
	// 可重复作答的测验不带防重键
	assert.Nil(t, score.AttemptKey)
}

func TestSubmitAttemptRecordsLineage(t *testing.T) {
	f := newFixture(t, false, 2)

	_, err := f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, nil)
	require.NoError(t, err)

	score, err := f.scores.FindByUserAndQuiz(f.user.ID, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, f.quiz.ChapterID, score.ChapterID)
	assert.NotZero(t, score.SubjectID)
}

func TestSubmitAttemptNoQuestions(t *testing.T) {
	f := newFixture(t, false, 0)

	_, err := f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, map[string]string{})
	assert.ErrorIs(t, err, util.ErrNoQuestions)

	// 空测验不落成绩
	_, err = f.scores.FindByUserAndQuiz(f.user.ID, f.quiz.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSingleAttemptPolicy(t *testing.T) {
	f := newFixture(t, true, 2)

	_, err := f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 2))
	require.NoError(t, err)

	// 再次开卷与再次提交都被拒
	_, err = f.attempt.StartAttempt(f.quiz.ID, f.user.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyAttempted)

	_, err = f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 2))
	assert.ErrorIs(t, err, util.ErrAlreadyAttempted)

	var count int64
	require.NoError(t, f.db.Model(&model.Score{}).Where("user_id = ? AND quiz_id = ?", f.user.ID, f.quiz.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRepeatableQuizAllowsMultipleScores(t *testing.T) {
	f := newFixture(t, false, 2)

	_, err := f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 1))
	require.NoError(t, err)
	_, err = f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 2))
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&model.Score{}).Where("user_id = ? AND quiz_id = ?", f.user.ID, f.quiz.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

// blindScoreStore 让资格检查永远看不到已有成绩，
// 模拟两个请求同时通过检查后赛跑落库的场景。
type blindScoreStore struct {
	real *repository.ScoreRepository
}

func (s *blindScoreStore) FindByUserAndQuiz(userID, quizID uint) (*model.Score, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *blindScoreStore) Create(score *model.Score) error {
	return s.real.Create(score)
}

func TestConcurrentSubmitLosesToUniqueIndex(t *testing.T) {
	f := newFixture(t, true, 2)

	racing := NewAttemptService(
		repository.NewQuizRepository(f.db),
		repository.NewQuestionRepository(f.db),
		&blindScoreStore{real: f.scores},
		repository.NewChapterRepository(f.db),
		repository.NewUserRepository(f.db),
	)

	_, err := racing.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 2))
	require.NoError(t, err)

	// 资格检查被蒙蔽，唯一索引仍然拦下第二次落库
	_, err = racing.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 2))
	assert.ErrorIs(t, err, util.ErrAlreadyAttempted)

	var count int64
	require.NoError(t, f.db.Model(&model.Score{}).Where("user_id = ? AND quiz_id = ?", f.user.ID, f.quiz.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
