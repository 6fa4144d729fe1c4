package service

import (
	"career_assess_backend/internal/model"
	"career_assess_backend/internal/repository"
	"career_assess_backend/internal/util"
	"career_assess_backend/pkg/logger"
	"career_assess_backend/pkg/monitoring"
	"career_assess_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// RecordStore 持久化协作方，调用均为尽力而为
type RecordStore interface {
	StoreSession(ctx context.Context, record *model.TestSessionRecord) error
	StoreAnswer(ctx context.Context, record *model.QuizAnswerRecord) error
	StoreResults(ctx context.Context, record *model.TestResultRecord, endTime time.Time) error
}

// SessionLimits 可热更新的限制
type SessionLimits struct {
	DefaultTimeLimit int
	MaxQuestionCount int
	SourceTimeout    time.Duration
}

type InitializeParams struct {
	TestType      string
	Level         string
	QuestionCount int
	TimeLimit     *int
	Domain        string
}

// QuestionView 对外展示的题目，不含正确答案
type QuestionView struct {
	QuestionNumber int       `json:"questionNumber,omitempty"`
	Question       string    `json:"question"`
	Options        [4]string `json:"options"`
}

type InitializeResult struct {
	SessionID      string       `json:"sessionId"`
	TotalQuestions int          `json:"totalQuestions"`
	TimeLimit      int          `json:"timeLimit"`
	FirstQuestion  QuestionView `json:"firstQuestion"`
}

type CurrentQuestion struct {
	Completed         bool          `json:"completed"`
	QuestionNumber    int           `json:"questionNumber,omitempty"`
	TotalQuestions    int           `json:"totalQuestions"`
	AnsweredQuestions *int          `json:"answeredQuestions,omitempty"`
	Question          *QuestionView `json:"question,omitempty"`
}

type SubmitAnswerResult struct {
	Completed       bool `json:"completed"`
	CurrentQuestion int  `json:"currentQuestion"`
	TotalQuestions  int  `json:"totalQuestions"`
}

type SessionResults struct {
	TestType model.TestType    `json:"testType"`
	Level    model.Level       `json:"level"`
	Domain   string            `json:"domain"`
	Results  *model.TestResult `json:"results"`
}

type SessionStatus struct {
	SessionID          string         `json:"sessionId"`
	TestType           model.TestType `json:"testType"`
	Level              model.Level    `json:"level"`
	TotalQuestions     int            `json:"totalQuestions"`
	CurrentQuestion    int            `json:"currentQuestion"`
	AnsweredQuestions  int            `json:"answeredQuestions"`
	TimeElapsedSeconds int            `json:"timeElapsedSeconds"`
	TimeLimitSeconds   int            `json:"timeLimitSeconds"`
}

// TestSessionService 测评会话生命周期
type TestSessionService struct {
	Store    repository.SessionStore
	Source   QuestionSource
	Records  RecordStore
	Archive  *ResultArchiveService
	Recorder *AsyncRecorder
	Now      func() time.Time

	mu     sync.RWMutex
	limits SessionLimits
}

func NewTestSessionService(store repository.SessionStore, source QuestionSource, records RecordStore, archive *ResultArchiveService, recorder *AsyncRecorder, limits SessionLimits) *TestSessionService {
	return &TestSessionService{
		Store:    store,
		Source:   source,
		Records:  records,
		Archive:  archive,
		Recorder: recorder,
		Now:      time.Now,
		limits:   limits,
	}
}

func (s *TestSessionService) Limits() SessionLimits {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limits
}

func (s *TestSessionService) UpdateLimits(limits SessionLimits) {
	s.mu.Lock()
	s.limits = limits
	s.mu.Unlock()
	logger.Log.Info("Assessment limits updated",
		zap.Int("defaultTimeLimit", limits.DefaultTimeLimit),
		zap.Int("maxQuestionCount", limits.MaxQuestionCount),
		zap.Duration("sourceTimeout", limits.SourceTimeout))
}

func (s *TestSessionService) ActiveSessions() int {
	return s.Store.Len()
}

func newSessionID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("test_%d_%s", now.UnixMilli(), random[:12])
}

func (s *TestSessionService) Initialize(ctx context.Context, p InitializeParams) (*InitializeResult, error) {
	limits := s.Limits()

	testType, ok := model.ParseTestType(p.TestType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown testType %q", util.ErrInvalidInput, p.TestType)
	}
	level, ok := model.ParseLevel(p.Level)
	if !ok {
		return nil, fmt.Errorf("%w: unknown level %q", util.ErrInvalidInput, p.Level)
	}
	if p.QuestionCount <= 0 || p.QuestionCount > limits.MaxQuestionCount {
		return nil, fmt.Errorf("%w: questionCount must be between 1 and %d", util.ErrInvalidInput, limits.MaxQuestionCount)
	}
	timeLimit := limits.DefaultTimeLimit
	if p.TimeLimit != nil {
		if *p.TimeLimit <= 0 {
			return nil, fmt.Errorf("%w: timeLimit must be positive", util.ErrInvalidInput)
		}
		timeLimit = *p.TimeLimit
	}
	domain := strings.TrimSpace(p.Domain)
	if domain == "" {
		domain = util.DomainAll
	}

	now := s.Now()
	id := newSessionID(now)

	questions, err := s.loadQuestions(ctx, limits.SourceTimeout, QuestionRequest{
		QuizType:     testType.QuizCode(),
		NumQuestions: p.QuestionCount,
		Duration:     timeLimit,
		Level:        level.Label(),
		Domain:       domain,
		SessionID:    id,
	})
	if err != nil {
		return nil, err
	}

	session := model.NewTestSession(id, testType, level, p.QuestionCount, timeLimit, domain, questions, now)
	s.Store.Put(session)
	monitoring.SessionsCreated.WithLabelValues(string(testType)).Inc()
	monitoring.SessionsActive.Set(float64(s.Store.Len()))

	logger.Log.Info("Test session initialized",
		zap.String("sessionId", id),
		zap.String("testType", string(testType)),
		zap.String("level", string(level)),
		zap.Int("questions", len(questions)))

	s.recordSession(session)

	first := questions[0]
	return &InitializeResult{
		SessionID:      id,
		TotalQuestions: len(questions),
		TimeLimit:      timeLimit,
		FirstQuestion: QuestionView{
			QuestionNumber: 1,
			Question:       first.Prompt,
			Options:        first.Options,
		},
	}, nil
}

// loadQuestions 在超时内从题源取题，并把失败归类为对外错误
func (s *TestSessionService) loadQuestions(ctx context.Context, timeout time.Duration, req QuestionRequest) ([]model.Question, error) {
	ctx, span := tracing.Tracer().Start(ctx, "QuestionSource.LoadQuestions")
	defer span.End()
	span.SetAttributes(
		attribute.String("quiz_type", req.QuizType),
		attribute.Int("num_questions", req.NumQuestions),
		attribute.String("level", req.Level),
		attribute.String("domain", req.Domain),
	)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type loadResult struct {
		questions []model.Question
		err       error
	}
	done := make(chan loadResult, 1)

	start := time.Now()
	go func() {
		q, err := s.Source.LoadQuestions(ctx, req)
		done <- loadResult{questions: q, err: err}
	}()

	var questions []model.Question
	var err error
	select {
	case r := <-done:
		questions, err = r.questions, r.err
	case <-ctx.Done():
		err = ctx.Err()
	}
	monitoring.QuestionLoadDuration.Observe(time.Since(start).Seconds())

	var reason string
	switch {
	case errors.Is(err, context.DeadlineExceeded) || (err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded)):
		reason = "timeout"
		err = fmt.Errorf("%w after %s", util.ErrQuestionSourceTimeout, timeout)
	case errors.Is(err, errMalformedQuestion):
		reason = "malformed"
		err = fmt.Errorf("%w: %v", util.ErrNoQuestionsAvailable, err)
	case err != nil:
		reason = "error"
		err = fmt.Errorf("%w: %v", util.ErrQuestionSourceFailure, err)
	case len(questions) == 0:
		reason = "empty"
		err = util.ErrNoQuestionsAvailable
	}

	if err != nil {
		monitoring.QuestionLoadFailures.WithLabelValues(reason).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		logger.Log.Warn("Failed to load questions",
			zap.String("sessionId", req.SessionID),
			zap.String("reason", reason),
			zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int("loaded", len(questions)))
	return questions, nil
}

func (s *TestSessionService) GetCurrentQuestion(id string) (*CurrentQuestion, error) {
	session, ok := s.Store.Get(id)
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	session.Lock()
	defer session.Unlock()

	total := session.Total()
	if session.Completed() {
		answered := session.AnsweredCount()
		return &CurrentQuestion{
			Completed:         true,
			TotalQuestions:    total,
			AnsweredQuestions: &answered,
		}, nil
	}

	q := session.Questions[session.Cursor]
	return &CurrentQuestion{
		Completed:      false,
		QuestionNumber: session.Cursor + 1,
		TotalQuestions: total,
		Question: &QuestionView{
			Question: q.Prompt,
			Options:  q.Options,
		},
	}, nil
}

func (s *TestSessionService) SubmitAnswer(id string, questionNumber int, answer model.Answer) (*SubmitAnswerResult, error) {
	session, ok := s.Store.Get(id)
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	session.Lock()
	total := session.Total()
	if questionNumber < 1 || questionNumber > total {
		session.Unlock()
		return nil, fmt.Errorf("%w: questionNumber must be between 1 and %d", util.ErrInvalidInput, total)
	}
	if answer.Option < 0 || answer.Option > 3 {
		session.Unlock()
		return nil, fmt.Errorf("%w: answer out of range", util.ErrInvalidInput)
	}

	index := questionNumber - 1
	session.RecordAnswer(index, answer)
	question := session.Questions[index]
	result := &SubmitAnswerResult{
		Completed:       session.Completed(),
		CurrentQuestion: session.Cursor + 1,
		TotalQuestions:  total,
	}
	quizType := session.TestType.QuizCode()
	elapsed := elapsedSeconds(session.CreatedAt, s.Now())
	session.Unlock()

	monitoring.AnswersSubmitted.Inc()
	s.recordAnswer(&model.QuizAnswerRecord{
		SessionID:     id,
		QuestionNo:    questionNumber,
		Question:      question.Prompt,
		OptionA:       question.Options[0],
		OptionB:       question.Options[1],
		OptionC:       question.Options[2],
		OptionD:       question.Options[3],
		CorrectOption: question.CorrectOption,
		ChosenOption:  answer.Letter(),
		IsCorrect:     answer.Matches(question.CorrectOption),
		TimeTaken:     elapsed,
		Level:         question.Level,
		Domain:        question.Domain,
		Skill:         question.Skill,
		QuizType:      quizType,
	})
	return result, nil
}

// GetResults 一次性读取：会话被原子取出后计算结果
func (s *TestSessionService) GetResults(id string) (*SessionResults, error) {
	session, ok := s.Store.Take(id)
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	monitoring.SessionsActive.Set(float64(s.Store.Len()))

	// 可能仍有并发的 SubmitAnswer 持有锁
	session.Lock()
	defer session.Unlock()

	now := s.Now()
	result, err := ScoreSession(session, now)
	if err != nil {
		logger.Log.Error("Cannot score test session", zap.String("sessionId", id), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Test session completed",
		zap.String("sessionId", id),
		zap.Int("score", result.Score),
		zap.Int("correct", result.CorrectAnswers),
		zap.Int("total", result.TotalQuestions))

	out := &SessionResults{
		TestType: session.TestType,
		Level:    session.Level,
		Domain:   session.Domain,
		Results:  result,
	}
	s.recordResults(session, result, now)
	return out, nil
}

func (s *TestSessionService) GetStatus(id string) (*SessionStatus, error) {
	session, ok := s.Store.Get(id)
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	session.Lock()
	defer session.Unlock()

	return &SessionStatus{
		SessionID:          session.ID,
		TestType:           session.TestType,
		Level:              session.Level,
		TotalQuestions:     session.Total(),
		CurrentQuestion:    session.Cursor + 1,
		AnsweredQuestions:  session.AnsweredCount(),
		TimeElapsedSeconds: elapsedSeconds(session.CreatedAt, s.Now()),
		TimeLimitSeconds:   session.TimeLimit * 60,
	}, nil
}

func elapsedSeconds(from, to time.Time) int {
	d := int(math.Round(to.Sub(from).Seconds()))
	if d < 0 {
		return 0
	}
	return d
}

// submit 以会话ID为 key，保证同一会话的记录按提交顺序落库
func (s *TestSessionService) submit(sessionID, name string, fn RecordFunc) {
	if s.Recorder == nil {
		return
	}
	s.Recorder.Submit(sessionID, name, fn)
}

func (s *TestSessionService) recordSession(session *model.TestSession) {
	if s.Records == nil {
		return
	}
	record := &model.TestSessionRecord{
		SessionID:     session.ID,
		TestType:      string(session.TestType),
		Level:         session.Level.Label(),
		Domain:        session.Domain,
		QuestionCount: session.QuestionCount,
		TimeLimit:     session.TimeLimit,
		StartTime:     session.CreatedAt,
	}
	s.submit(session.ID, "store_session", func(ctx context.Context) error {
		return s.Records.StoreSession(ctx, record)
	})
}

func (s *TestSessionService) recordAnswer(record *model.QuizAnswerRecord) {
	if s.Records == nil {
		return
	}
	s.submit(record.SessionID, "store_answer", func(ctx context.Context) error {
		return s.Records.StoreAnswer(ctx, record)
	})
}

func (s *TestSessionService) recordResults(session *model.TestSession, result *model.TestResult, now time.Time) {
	if s.Records != nil {
		record := &model.TestResultRecord{
			SessionID:       session.ID,
			Score:           result.Score,
			CorrectAnswers:  result.CorrectAnswers,
			TotalQuestions:  result.TotalQuestions,
			TimeTaken:       result.TimeTaken,
			Strengths:       result.Strengths,
			Weaknesses:      result.Weaknesses,
			Recommendations: result.Recommendations,
			CareerPaths:     result.CareerPaths,
		}
		s.submit(session.ID, "store_results", func(ctx context.Context) error {
			return s.Records.StoreResults(ctx, record, now)
		})
	}

	if s.Archive.Enabled() {
		report := ResultReport{
			SessionID:   session.ID,
			TestType:    session.TestType,
			Level:       session.Level,
			Domain:      session.Domain,
			StartedAt:   session.CreatedAt.Format(time.RFC3339),
			CompletedAt: now.Format(time.RFC3339),
			Result:      result,
		}
		s.submit(session.ID, "archive_results", func(ctx context.Context) error {
			_, err := s.Archive.Archive(ctx, report, now)
			return err
		})
	}
}
