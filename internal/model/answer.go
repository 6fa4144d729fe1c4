package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	errAnswerMissing = errors.New("answer is required")
	errAnswerRange   = errors.New("answer must be a letter A-D or an index 0-3")
	errIntParam      = errors.New("value must be an integer")
)

var optionLetters = [4]string{"A", "B", "C", "D"}

// AnswerKind 记录答案在请求中的原始形式
type AnswerKind int

const (
	AnswerLetter AnswerKind = iota + 1
	AnswerIndex
)

// Answer 字母 A-D 或下标 0-3，统一归一化为选项下标
type Answer struct {
	Kind   AnswerKind
	Option int
}

func LetterAnswer(letter string) (Answer, error) {
	l := strings.ToUpper(strings.TrimSpace(letter))
	for i, o := range optionLetters {
		if l == o {
			return Answer{Kind: AnswerLetter, Option: i}, nil
		}
	}
	return Answer{}, errAnswerRange
}

func IndexAnswer(index int) (Answer, error) {
	if index < 0 || index > 3 {
		return Answer{}, errAnswerRange
	}
	return Answer{Kind: AnswerIndex, Option: index}, nil
}

func (a Answer) Letter() string {
	return optionLetters[a.Option]
}

// Matches 与正确选项比较，大小写不敏感
func (a Answer) Matches(correctOption string) bool {
	return strings.EqualFold(strings.TrimSpace(correctOption), a.Letter())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errAnswerMissing
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := LetterAnswer(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}

	n, err := strconv.Atoi(string(data))
	if err != nil {
		return errAnswerRange
	}
	parsed, err := IndexAnswer(n)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Kind == AnswerIndex {
		return []byte(strconv.Itoa(a.Option)), nil
	}
	return json.Marshal(a.Letter())
}

// IntParam 接受 JSON 数字或数字字符串
type IntParam int

func (p *IntParam) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errIntParam
	}
	*p = IntParam(n)
	return nil
}
