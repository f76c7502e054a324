package repository

import (
	"fmt"
	"quizdom_backend/internal/model"
	"quizdom_backend/pkg/database"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
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

func seedSubject(t *testing.T, db *gorm.DB, name string) *model.Subject {
	t.Helper()
	subject := &model.Subject{Name: name, Description: name}
	require.NoError(t, db.Create(subject).Error)
	return subject
}

func seedScore(t *testing.T, db *gorm.DB, userID, quizID, subjectID uint, percentage float64) {
	t.Helper()
	score := &model.Score{
		UserID:       userID,
		QuizID:       quizID,
		ChapterID:    1,
		SubjectID:    subjectID,
		ScoreOfUser:  int(percentage / 10),
		MaximumScore: 10,
		Percentage:   percentage,
		ReleaseDate:  time.Now(),
	}
	require.NoError(t, db.Create(score).Error)
}

func TestScoreCreateDuplicateAttemptKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepository(db)

	key := model.AttemptKeyFor(1, 1)
	first := &model.Score{UserID: 1, QuizID: 1, ChapterID: 1, SubjectID: 1, MaximumScore: 5, ReleaseDate: time.Now(), AttemptKey: &key}
	require.NoError(t, repo.Create(first))

	dupKey := model.AttemptKeyFor(1, 1)
	second := &model.Score{UserID: 1, QuizID: 1, ChapterID: 1, SubjectID: 1, MaximumScore: 5, ReleaseDate: time.Now(), AttemptKey: &dupKey}
	err := repo.Create(second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestScoreCreateNilAttemptKeysDoNotCollide(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepository(db)

	for i := 0; i < 3; i++ {
		score := &model.Score{UserID: 1, QuizID: 1, ChapterID: 1, SubjectID: 1, MaximumScore: 5, ReleaseDate: time.Now()}
		require.NoError(t, repo.Create(score))
	}

	count, err := repo.CountByQuiz(1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestAggregateBySubject(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepository(db)

	geo := seedSubject(t, db, "Geography")
	maths := seedSubject(t, db, "Math")

	seedScore(t, db, 1, 1, geo.ID, 50)
	seedScore(t, db, 1, 2, geo.ID, 80)
	seedScore(t, db, 1, 3, maths.ID, 90)
	seedScore(t, db, 2, 1, geo.ID, 100)

	t.Run("per user", func(t *testing.T) {
		rows, err := repo.AggregateBySubject(1)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Geography", rows[0].SubjectName)
		assert.EqualValues(t, 2, rows[0].Attempts)
		assert.InDelta(t, 80, rows[0].BestPercentage, 0.001)

		assert.Equal(t, "Math", rows[1].SubjectName)
		assert.EqualValues(t, 1, rows[1].Attempts)
		assert.InDelta(t, 90, rows[1].BestPercentage, 0.001)
	})

	t.Run("platform wide", func(t *testing.T) {
		rows, err := repo.AggregateBySubject(0)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.EqualValues(t, 3, rows[0].Attempts)
		assert.InDelta(t, 100, rows[0].BestPercentage, 0.001)
	})
}

func TestSummarizeByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepository(db)

	subject := seedSubject(t, db, "Geography")
	seedScore(t, db, 1, 1, subject.ID, 50)
	seedScore(t, db, 1, 2, subject.ID, 100)

	summary, err := repo.SummarizeByUser(1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.TotalQuizzes)
	assert.InDelta(t, 75, summary.AvgPercentage, 0.001)

	empty, err := repo.SummarizeByUser(99)
	require.NoError(t, err)
	assert.EqualValues(t, 0, empty.TotalQuizzes)
	assert.InDelta(t, 0, empty.AvgPercentage, 0.001)
}

func TestListAttemptedQuizIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewScoreRepository(db)

	subject := seedSubject(t, db, "Geography")
	seedScore(t, db, 1, 1, subject.ID, 50)
	seedScore(t, db, 1, 1, subject.ID, 70)
	seedScore(t, db, 1, 2, subject.ID, 90)

	ids, err := repo.ListAttemptedQuizIDs(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2}, ids)
}
