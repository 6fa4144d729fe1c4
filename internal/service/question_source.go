package service

import (
	"career_assess_backend/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"
)

// QuestionRequest 出题参数，也是外部命令接收的 JSON 配置
type QuestionRequest struct {
	QuizType     string `json:"quiz_type"`
	NumQuestions int    `json:"num_questions"`
	Duration     int    `json:"duration"`
	Level        string `json:"level"`
	Domain       string `json:"domain"`
	SessionID    string `json:"session_id"`
}

// QuestionSource 题目来源，需遵守 ctx 的截止时间
type QuestionSource interface {
	LoadQuestions(ctx context.Context, req QuestionRequest) ([]model.Question, error)
}

// 题目记录格式不合法
var errMalformedQuestion = errors.New("malformed question record")

// QuestionRecord 题库/外部命令返回的单条题目
type QuestionRecord struct {
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
	Level         string `json:"level,omitempty"`
	Domain        string `json:"domain,omitempty"`
	Skills        string `json:"skills,omitempty"`
	Skill         string `json:"skill,omitempty"`
}

func (r QuestionRecord) ToQuestion() (model.Question, error) {
	if strings.TrimSpace(r.Question) == "" {
		return model.Question{}, fmt.Errorf("%w: empty question text", errMalformedQuestion)
	}
	if _, err := model.LetterAnswer(r.CorrectOption); err != nil {
		return model.Question{}, fmt.Errorf("%w: correct option %q", errMalformedQuestion, r.CorrectOption)
	}

	return model.Question{
		Prompt:        strings.TrimSpace(r.Question),
		Options:       [4]string{r.OptionA, r.OptionB, r.OptionC, r.OptionD},
		CorrectOption: strings.ToUpper(strings.TrimSpace(r.CorrectOption)),
		Level:         r.Level,
		Domain:        r.Domain,
		Skill:         r.Skill,
	}, nil
}

func recordsToQuestions(records []QuestionRecord) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(records))
	for i, r := range records {
		q, err := r.ToQuestion()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
