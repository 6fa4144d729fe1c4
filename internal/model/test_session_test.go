package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newSession(n int) *TestSession {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{Prompt: "q", Options: [4]string{"a", "b", "c", "d"}, CorrectOption: "A"}
	}
	return NewTestSession("s1", TestTypeTechnical, LevelBeginner, n, 30, "all", qs, time.Now())
}

func TestRecordAnswerAdvancesOnlyAtCursor(t *testing.T) {
	s := newSession(3)
	a, _ := LetterAnswer("A")

	assert.True(t, s.RecordAnswer(0, a))
	assert.Equal(t, 1, s.Cursor)

	// 重复回答已过去的题目不前进
	assert.False(t, s.RecordAnswer(0, a))
	assert.Equal(t, 1, s.Cursor)

	// 跳到后面的题目只记录答案
	assert.False(t, s.RecordAnswer(2, a))
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, 2, s.AnsweredCount())

	assert.True(t, s.RecordAnswer(1, a))
	assert.Equal(t, 2, s.Cursor)
	assert.False(t, s.Completed())
}

func TestRecordAnswerOverwrites(t *testing.T) {
	s := newSession(1)
	a, _ := LetterAnswer("A")
	b, _ := IndexAnswer(1)

	s.RecordAnswer(0, a)
	s.RecordAnswer(0, b)

	assert.Equal(t, 1, s.Cursor)
	assert.True(t, s.Completed())
	assert.Equal(t, 1, s.Answers[0].Option)
}

func TestParseTestTypeAliases(t *testing.T) {
	cases := map[string]TestType{
		"cognitive":   TestTypeCognitive,
		"aptitude":    TestTypeCognitive,
		"Technical":   TestTypeTechnical,
		"soft-skills": TestTypeSoftSkills,
		"softSkills":  TestTypeSoftSkills,
	}
	for in, want := range cases {
		got, ok := ParseTestType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseTestType("history")
	assert.False(t, ok)

	assert.Equal(t, "2", TestTypeTechnical.QuizCode())
	assert.Equal(t, "Intermediate", LevelIntermediate.Label())
}
