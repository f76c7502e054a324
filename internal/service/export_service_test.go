package service

import (
	"quizdom_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScoreReport(t *testing.T) {
	rows := []repository.ExportRow{
		{QuizID: 1, QuizName: "Capitals Quiz", ScoreOfUser: 3, MaximumScore: 4, ReleaseDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{QuizID: 2, QuizName: "Rivers, Lakes", ScoreOfUser: 2, MaximumScore: 2, ReleaseDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)},
	}

	out, err := BuildScoreReport(rows)
	require.NoError(t, err)

	expected := "quiz_id,quiz_name,score,maximum_score,date\n" +
		"1,Capitals Quiz,3,4,2025-03-01\n" +
		"2,\"Rivers, Lakes\",2,2,2025-04-02\n"
	assert.Equal(t, expected, string(out))
}

func TestBuildScoreReportEmpty(t *testing.T) {
	out, err := BuildScoreReport(nil)
	require.NoError(t, err)
	assert.Equal(t, "quiz_id,quiz_name,score,maximum_score,date\n", string(out))
}
