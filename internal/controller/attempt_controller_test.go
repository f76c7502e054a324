package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/repository"
	"quizdom_backend/internal/service"
	"quizdom_backend/internal/util"
	"quizdom_backend/pkg/database"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAttemptRouter(t *testing.T, singleAttempt bool, questionCount int) (*gin.Engine, *gorm.DB, *model.User, *model.Quiz) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := &model.User{Name: "alice", Email: "alice@example.com", Password: "x", FullName: "Alice", Role: model.RoleUser}
	require.NoError(t, db.Create(user).Error)

	subject := &model.Subject{Name: "Geography", Description: "d"}
	require.NoError(t, db.Create(subject).Error)
	chapter := &model.Chapter{SubjectID: subject.ID, Name: "Capitals", Description: "d"}
	require.NoError(t, db.Create(chapter).Error)

	quiz := &model.Quiz{
		Name: "Capitals Quiz", Description: "d", ChapterID: chapter.ID,
		IsActive: true, ReleaseDate: time.Now(), Duration: "00:30:00",
		IsAttempted: &singleAttempt,
	}
	require.NoError(t, db.Create(quiz).Error)

	answers := []string{"A", "B", "C", "D"}
	for i := 0; i < questionCount; i++ {
		q := &model.Question{
			QuizID: quiz.ID, ChapterID: chapter.ID,
			Tag: "tag", Text: fmt.Sprintf("q%d", i),
			OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d",
			Answer: answers[i%len(answers)],
		}
		require.NoError(t, db.Create(q).Error)
	}

	attempt := service.NewAttemptService(
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewScoreRepository(db),
		repository.NewChapterRepository(db),
		repository.NewUserRepository(db),
	)
	ctrl := NewAttemptController(attempt)

	router := gin.New()
	// 测试路由直接注入身份，跳过 JWT 中间件
	router.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: user.ID, Role: user.Role, Name: user.Name})
	})
	router.GET("/api/quizzes/:quizId/start", ctrl.StartQuiz)
	router.POST("/api/quizzes/:quizId/submit", ctrl.SubmitQuiz)

	return router, db, user, quiz
}

func TestStartQuizEndpoint(t *testing.T) {
	router, _, _, quiz := setupAttemptRouter(t, false, 2)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/quizzes/%d/start", quiz.ID), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.StartQuizResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, quiz.ID, resp.Data.QuizID)
	assert.Equal(t, 1800, resp.Data.TimeLimit)
	assert.Len(t, resp.Data.Questions, 2)
}

func TestStartQuizEndpointNotFound(t *testing.T) {
	router, _, _, _ := setupAttemptRouter(t, false, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quizzes/9999/start", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitQuizEndpoint(t *testing.T) {
	router, db, _, quiz := setupAttemptRouter(t, false, 2)

	var questions []model.Question
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("id asc").Find(&questions).Error)

	body := fmt.Sprintf(`{"question_answer":{"%d":"a ","%d":"C"}}`, questions[0].ID, questions[1].ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/quizzes/%d/submit", quiz.ID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.SubmitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Score)
	assert.Equal(t, 2, resp.Data.MaximumScore)
	assert.InDelta(t, 50.0, resp.Data.Percentage, 0.001)
}

func TestSubmitQuizEndpointSingleAttempt(t *testing.T) {
	router, _, _, quiz := setupAttemptRouter(t, true, 1)

	submit := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/quizzes/%d/submit", quiz.ID), strings.NewReader(`{"question_answer":{}}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, submit().Code)
	assert.Equal(t, http.StatusForbidden, submit().Code)
}

func TestSubmitQuizEndpointNoQuestions(t *testing.T) {
	router, _, _, quiz := setupAttemptRouter(t, false, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/quizzes/%d/submit", quiz.ID), strings.NewReader(`{"question_answer":{}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
