package model

import (
	"strings"
	"sync"
	"time"
)

// TestType 测评类型
type TestType string

const (
	TestTypeCognitive  TestType = "cognitive"
	TestTypeTechnical  TestType = "technical"
	TestTypeSoftSkills TestType = "soft-skills"
)

// 前端旧版本使用的别名
var testTypeAliases = map[string]TestType{
	"cognitive":   TestTypeCognitive,
	"aptitude":    TestTypeCognitive,
	"technical":   TestTypeTechnical,
	"soft-skills": TestTypeSoftSkills,
	"softskills":  TestTypeSoftSkills,
	"soft_skills": TestTypeSoftSkills,
}

func ParseTestType(s string) (TestType, bool) {
	t, ok := testTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// QuizCode 题库使用的题型代码
func (t TestType) QuizCode() string {
	switch t {
	case TestTypeCognitive:
		return "1"
	case TestTypeTechnical:
		return "2"
	case TestTypeSoftSkills:
		return "3"
	}
	return ""
}

func (t TestType) DisplayName() string {
	switch t {
	case TestTypeCognitive:
		return "Cognitive Skills"
	case TestTypeTechnical:
		return "Technical Skills"
	case TestTypeSoftSkills:
		return "Soft Skills"
	}
	return string(t)
}

// Level 难度等级
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func ParseLevel(s string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	}
	return "", false
}

// Label 题库中的难度标签
func (l Level) Label() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	}
	return ""
}

// Question 加载后不可变
type Question struct {
	Prompt        string    `json:"question"`
	Options       [4]string `json:"options"`
	CorrectOption string    `json:"-"`

	// 题库元数据，仅用于落库
	Level  string `json:"-"`
	Domain string `json:"-"`
	Skill  string `json:"-"`
}

// TestSession 单次测评的服务端状态
type TestSession struct {
	sync.Mutex `json:"-"`

	ID            string
	TestType      TestType
	Level         Level
	QuestionCount int
	TimeLimit     int // 分钟
	Domain        string
	Questions     []Question
	Answers       []*Answer // 稀疏，长度等于题目数
	Cursor        int
	CreatedAt     time.Time
}

func NewTestSession(id string, testType TestType, level Level, questionCount, timeLimit int, domain string, questions []Question, now time.Time) *TestSession {
	return &TestSession{
		ID:            id,
		TestType:      testType,
		Level:         level,
		QuestionCount: questionCount,
		TimeLimit:     timeLimit,
		Domain:        domain,
		Questions:     questions,
		Answers:       make([]*Answer, len(questions)),
		CreatedAt:     now,
	}
}

func (s *TestSession) Total() int {
	return len(s.Questions)
}

func (s *TestSession) Completed() bool {
	return s.Cursor >= len(s.Questions)
}

func (s *TestSession) AnsweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a != nil {
			n++
		}
	}
	return n
}

// RecordAnswer 写入 index 处的答案；仅当 index 等于游标时前进一步
func (s *TestSession) RecordAnswer(index int, a Answer) (advanced bool) {
	s.Answers[index] = &a
	if index == s.Cursor {
		s.Cursor++
		return true
	}
	return false
}
