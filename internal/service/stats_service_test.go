package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStats(t *testing.T) {
	f := newFixture(t, false, 4)
	svc := NewStatsService(f.scores)

	_, err := f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 2))
	require.NoError(t, err)
	_, err = f.attempt.SubmitAttempt(f.quiz.ID, f.user.ID, f.answersFor(t, 3))
	require.NoError(t, err)

	stats, err := svc.UserStats(f.user.ID)
	require.NoError(t, err)

	require.Equal(t, []string{"Geography"}, stats.AttemptsBySubject.Labels)
	assert.InDelta(t, 2, stats.AttemptsBySubject.Values[0], 0.001)

	require.Equal(t, []string{"Geography"}, stats.BestBySubject.Labels)
	assert.InDelta(t, 75.0, stats.BestBySubject.Values[0], 0.001)
}

func TestUserStatsEmpty(t *testing.T) {
	f := newFixture(t, false, 1)
	svc := NewStatsService(f.scores)

	stats, err := svc.UserStats(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, stats.AttemptsBySubject.Labels)
	assert.Empty(t, stats.BestBySubject.Labels)
}
