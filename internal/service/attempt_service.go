package service

import (
	"errors"
	"quizdom_backend/internal/model"
	"quizdom_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// 作答流程只依赖这几个窄接口，仓储层的具体实现由 app 装配时注入。
type QuizFinder interface {
	FindByID(id uint) (*model.Quiz, error)
}

type QuestionLister interface {
	ListByQuiz(quizID uint) ([]model.Question, error)
}

type ScoreStore interface {
	FindByUserAndQuiz(userID, quizID uint) (*model.Score, error)
	Create(score *model.Score) error
}

type ChapterFinder interface {
	FindByID(id uint) (*model.Chapter, error)
}

type UserFinder interface {
	FindByID(id uint) (*model.User, error)
}

// AttemptService 作答编排：开卷资格、判分、成绩落库。
type AttemptService struct {
	Quizzes   QuizFinder
	Questions QuestionLister
	Scores    ScoreStore
	Chapters  ChapterFinder
	Users     UserFinder
}

func NewAttemptService(quizzes QuizFinder, questions QuestionLister, scores ScoreStore, chapters ChapterFinder, users UserFinder) *AttemptService {
	return &AttemptService{
		Quizzes:   quizzes,
		Questions: questions,
		Scores:    scores,
		Chapters:  chapters,
		Users:     users,
	}
}

type StartQuestion struct {
	ID      uint   `json:"question_id"`
	Tag     string `json:"question_tag"`
	Text    string `json:"question_text"`
	OptionA string `json:"question_option_a"`
	OptionB string `json:"question_option_b"`
	OptionC string `json:"question_option_c"`
	OptionD string `json:"question_option_d"`
	Answer  string `json:"question_answer"`
}

type StartQuizResponse struct {
	QuizID    uint            `json:"quiz_id"`
	QuizName  string          `json:"quiz_name"`
	TimeLimit int             `json:"time_limit"`
	Questions []StartQuestion `json:"questions"`
}

type SubmitResult struct {
	Message      string  `json:"message"`
	Score        int     `json:"score"`
	MaximumScore int     `json:"maximum_score"`
	Percentage   float64 `json:"score_percentage"`
}

// CanStart 开卷资格。开卷与交卷各自独立查询一次，不复用开卷时的结论：
// 两次请求之间可能间隔任意久，也可能并发交卷。
func (s *AttemptService) CanStart(quizID, userID uint) error {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return err
	}
	return s.checkEligibility(quiz, userID)
}

// CanSubmit 交卷资格，判定逻辑与 CanStart 一致。
func (s *AttemptService) CanSubmit(quizID, userID uint) error {
	return s.CanStart(quizID, userID)
}

// StartAttempt 返回开卷载荷，不产生任何状态变更，资格允许期间可重复调用。
func (s *AttemptService) StartAttempt(quizID, userID uint) (*StartQuizResponse, error) {
	if _, err := s.loadUser(userID); err != nil {
		return nil, err
	}

	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.checkEligibility(quiz, userID); err != nil {
		return nil, err
	}

	questions, err := s.Questions.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	timeLimit, err := util.ParseClockSeconds(quiz.Duration)
	if err != nil {
		return nil, err
	}

	resp := &StartQuizResponse{
		QuizID:    quiz.ID,
		QuizName:  quiz.Name,
		TimeLimit: timeLimit,
		Questions: make([]StartQuestion, len(questions)),
	}
	for i, q := range questions {
		resp.Questions[i] = StartQuestion{
			ID:      q.ID,
			Tag:     q.Tag,
			Text:    q.Text,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
			Answer:  q.Answer,
		}
	}
	return resp, nil
}

// SubmitAttempt 判分并落库。answers 以题目 id 字符串为键。
// 资格检查只是快路径，最终仲裁是 attempt_key 唯一索引：
// 并发提交双双通过检查时，落库只会成功一次，输掉的一方拿到
// ErrAlreadyAttempted 而不是服务端错误。
func (s *AttemptService) SubmitAttempt(quizID, userID uint, answers map[string]string) (*SubmitResult, error) {
	if _, err := s.loadUser(userID); err != nil {
		return nil, err
	}

	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.checkEligibility(quiz, userID); err != nil {
		return nil, err
	}

	questions, err := s.Questions.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	chapter, err := s.Chapters.FindByID(quiz.ChapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	correct, total := GradeQuiz(questions, answers)
	percentage := ScorePercentage(correct, total)

	now := time.Now()
	score := &model.Score{
		UserID:       userID,
		QuizID:       quizID,
		ChapterID:    chapter.ID,
		SubjectID:    chapter.SubjectID,
		ScoreOfUser:  correct,
		MaximumScore: total,
		Percentage:   percentage,
		ReleaseDate:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}
	if quiz.SingleAttempt() {
		key := model.AttemptKeyFor(userID, quizID)
		score.AttemptKey = &key
	}

	if err := s.Scores.Create(score); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyAttempted
		}
		return nil, err
	}

	return &SubmitResult{
		Message:      "Quiz submitted successfully",
		Score:        correct,
		MaximumScore: total,
		Percentage:   percentage,
	}, nil
}

func (s *AttemptService) loadUser(userID uint) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AttemptService) loadQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *AttemptService) checkEligibility(quiz *model.Quiz, userID uint) error {
	if !quiz.SingleAttempt() {
		return nil
	}

	_, err := s.Scores.FindByUserAndQuiz(userID, quiz.ID)
	if err == nil {
		return util.ErrAlreadyAttempted
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
