package service

import (
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(t *testing.T) (*QuizService, *fixture) {
	t.Helper()
	f := newFixture(t, false, 2)
	svc := NewQuizService(
		repository.NewQuizRepository(f.db),
		repository.NewQuestionRepository(f.db),
		repository.NewChapterRepository(f.db),
		f.scores,
	)
	return svc, f
}

func TestQuizCreateValidatesDuration(t *testing.T) {
	svc, f := newQuizService(t)

	params := QuizParams{
		Name:        "Bad Duration",
		Description: "d",
		ChapterID:   f.quiz.ChapterID,
		IsActive:    true,
		ReleaseDate: time.Now(),
	}

	for _, duration := range []string{"", "30:00", "00:00:00", "xx:yy:zz"} {
		params.Duration = duration
		_, err := svc.Create(params)
		assert.ErrorIs(t, err, util.ErrInvalidDuration, duration)
	}
}

func TestQuizCreateUnknownChapter(t *testing.T) {
	svc, _ := newQuizService(t)

	_, err := svc.Create(QuizParams{
		Name:        "Orphan",
		Description: "d",
		ChapterID:   9999,
		IsActive:    true,
		ReleaseDate: time.Now(),
		Duration:    "00:10:00",
	})
	assert.ErrorIs(t, err, util.ErrChapterNotFound)
}

func TestQuizCreateSingleAttemptFlag(t *testing.T) {
	svc, f := newQuizService(t)

	quiz, err := svc.Create(QuizParams{
		Name:          "One Shot",
		Description:   "d",
		ChapterID:     f.quiz.ChapterID,
		IsActive:      true,
		ReleaseDate:   time.Now(),
		Duration:      "00:10:00",
		SingleAttempt: true,
	})
	require.NoError(t, err)
	assert.True(t, quiz.SingleAttempt())
}

func TestQuizCreateInactivePersists(t *testing.T) {
	svc, f := newQuizService(t)

	quiz, err := svc.Create(QuizParams{
		Name:        "Draft",
		Description: "d",
		ChapterID:   f.quiz.ChapterID,
		IsActive:    false,
		ReleaseDate: time.Now(),
		Duration:    "00:10:00",
	})
	require.NoError(t, err)

	// 停用状态必须原样落库，不得被列默认值吞掉
	var stored model.Quiz
	require.NoError(t, f.db.First(&stored, quiz.ID).Error)
	assert.False(t, stored.IsActive)

	summaries, err := svc.ListForUser(f.user.ID)
	require.NoError(t, err)
	for _, summary := range summaries {
		assert.NotEqual(t, quiz.ID, summary.QuizID)
	}
}

func TestListForUser(t *testing.T) {
	svc, f := newQuizService(t)

	// 停用的测验不进用户列表
	inactive := &model.Quiz{
		Name: "Hidden", Description: "d", ChapterID: f.quiz.ChapterID,
		IsActive: false, ReleaseDate: time.Now(), Duration: "00:05:00",
	}
	require.NoError(t, f.db.Create(inactive).Error)

	_, err := f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 1))
	require.NoError(t, err)

	summaries, err := svc.ListForUser(f.user.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, f.quiz.ID, summary.QuizID)
	assert.Equal(t, "Capitals", summary.ChapterName)
	assert.Equal(t, "Geography", summary.SubjectName)
	assert.EqualValues(t, 1, summary.AttemptCount)
	assert.True(t, summary.Attempted)
	assert.False(t, summary.SingleAttempt)
}

func TestListForAdmin(t *testing.T) {
	svc, f := newQuizService(t)

	single := true
	oneShot := &model.Quiz{
		Name: "One Shot", Description: "d", ChapterID: f.quiz.ChapterID,
		IsActive: true, ReleaseDate: time.Now(), Duration: "00:05:00",
		IsAttempted: &single,
	}
	require.NoError(t, f.db.Create(oneShot).Error)

	_, err := f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 1))
	require.NoError(t, err)
	_, err = f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 2))
	require.NoError(t, err)

	rows, err := svc.ListForAdmin()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[uint]AdminQuizRow, len(rows))
	for _, row := range rows {
		byID[row.QuizID] = row
	}

	repeatable := byID[f.quiz.ID]
	assert.EqualValues(t, 2, repeatable.AttemptCount)
	assert.True(t, repeatable.IsActive)
	assert.Equal(t, "Capitals", repeatable.ChapterName)
	assert.Equal(t, "Geography", repeatable.SubjectName)

	// 未被作答的单次测验仍然启用
	untouched := byID[oneShot.ID]
	assert.True(t, untouched.IsActive)
	assert.EqualValues(t, 0, untouched.AttemptCount)

	// 有人作答后转为停用
	attemptSvc := NewAttemptService(
		repository.NewQuizRepository(f.db),
		repository.NewQuestionRepository(f.db),
		f.scores,
		repository.NewChapterRepository(f.db),
		repository.NewUserRepository(f.db),
	)
	q := &model.Question{QuizID: oneShot.ID, ChapterID: oneShot.ChapterID, Tag: "t", Text: "q",
		OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Answer: "A"}
	require.NoError(t, f.db.Create(q).Error)
	_, err = attemptSvc.SubmitAttempt(oneShot.ID, f.user.ID, nil)
	require.NoError(t, err)

	rows, err = svc.ListForAdmin()
	require.NoError(t, err)
	for _, row := range rows {
		if row.QuizID == oneShot.ID {
			assert.False(t, row.IsActive)
			assert.EqualValues(t, 1, row.AttemptCount)
		}
	}
}

func TestQuizDeleteRemovesQuestions(t *testing.T) {
	svc, f := newQuizService(t)

	require.NoError(t, svc.Delete(f.quiz.ID))

	var count int64
	require.NoError(t, f.db.Model(&model.Question{}).Where("quiz_id = ?", f.quiz.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	err := svc.Delete(f.quiz.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
