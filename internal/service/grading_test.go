package service

import (
	"quizdom_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func question(id uint, answer string) model.Question {
	q := model.Question{Answer: answer}
	q.ID = id
	return q
}

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "paris", NormalizeAnswer("  Paris "))
	assert.Equal(t, "a", NormalizeAnswer("A"))
	assert.Equal(t, "", NormalizeAnswer("   "))
}

func TestGradeQuiz(t *testing.T) {
	questions := []model.Question{
		question(1, "A"),
		question(2, "b"),
		question(3, "Paris"),
		question(4, "D"),
		question(5, "C"),
	}

	t.Run("normalized comparison", func(t *testing.T) {
		correct, total := GradeQuiz(questions, map[string]string{
			"1": "a ",
			"2": " B",
			"3": "paris",
			"4": "C",
			"5": "d",
		})
		assert.Equal(t, 3, correct)
		assert.Equal(t, 5, total)
	})

	t.Run("missing answers count as wrong", func(t *testing.T) {
		correct, total := GradeQuiz(questions, map[string]string{"1": "A"})
		assert.Equal(t, 1, correct)
		assert.Equal(t, 5, total)
	})

	t.Run("empty answer map", func(t *testing.T) {
		correct, total := GradeQuiz(questions, map[string]string{})
		assert.Equal(t, 0, correct)
		assert.Equal(t, 5, total)
	})

	t.Run("unknown question ids are ignored", func(t *testing.T) {
		correct, total := GradeQuiz(questions, map[string]string{
			"1":   "A",
			"999": "A",
		})
		assert.Equal(t, 1, correct)
		assert.Equal(t, 5, total)
	})

	t.Run("no questions", func(t *testing.T) {
		correct, total := GradeQuiz(nil, map[string]string{"1": "A"})
		assert.Equal(t, 0, correct)
		assert.Equal(t, 0, total)
	})
}

func TestScorePercentage(t *testing.T) {
	assert.InDelta(t, 42.86, ScorePercentage(3, 7), 0.001)
	assert.InDelta(t, 50.0, ScorePercentage(1, 2), 0.001)
	assert.InDelta(t, 0.0, ScorePercentage(0, 5), 0.001)
	assert.InDelta(t, 100.0, ScorePercentage(5, 5), 0.001)
	assert.InDelta(t, 33.33, ScorePercentage(1, 3), 0.001)
	assert.InDelta(t, 66.67, ScorePercentage(2, 3), 0.001)
}
