package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerUnmarshal(t *testing.T) {
	tests := []struct {
		input    string
		wantKind AnswerKind
		want     int
		wantErr  bool
	}{
		{`"A"`, AnswerLetter, 0, false},
		{`"b"`, AnswerLetter, 1, false},
		{`" d "`, AnswerLetter, 3, false},
		{`0`, AnswerIndex, 0, false},
		{`3`, AnswerIndex, 3, false},
		{`4`, 0, 0, true},
		{`-1`, 0, 0, true},
		{`"E"`, 0, 0, true},
		{`""`, 0, 0, true},
		{`1.5`, 0, 0, true},
		{`true`, 0, 0, true},
	}

	for _, tc := range tests {
		var a Answer
		err := json.Unmarshal([]byte(tc.input), &a)
		if tc.wantErr {
			assert.Error(t, err, "input %s", tc.input)
			continue
		}
		require.NoError(t, err, "input %s", tc.input)
		assert.Equal(t, tc.wantKind, a.Kind, "input %s", tc.input)
		assert.Equal(t, tc.want, a.Option, "input %s", tc.input)
	}
}

func TestAnswerNullIsMissing(t *testing.T) {
	var req struct {
		Answer *Answer `json:"answer"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"answer":null}`), &req))
	assert.Nil(t, req.Answer)

	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.Nil(t, req.Answer)
}

func TestAnswerMatches(t *testing.T) {
	letter, err := LetterAnswer("c")
	require.NoError(t, err)
	index, err := IndexAnswer(2)
	require.NoError(t, err)

	assert.True(t, letter.Matches("C"))
	assert.True(t, letter.Matches(" c "))
	assert.True(t, index.Matches("c"))
	assert.False(t, index.Matches("B"))
	assert.Equal(t, "C", index.Letter())
}

func TestAnswerMarshalKeepsForm(t *testing.T) {
	letter, _ := LetterAnswer("b")
	index, _ := IndexAnswer(1)

	out, err := json.Marshal(letter)
	require.NoError(t, err)
	assert.Equal(t, `"B"`, string(out))

	out, err = json.Marshal(index)
	require.NoError(t, err)
	assert.Equal(t, `1`, string(out))
}

func TestIntParam(t *testing.T) {
	var req struct {
		Count *IntParam `json:"count"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"count":5}`), &req))
	require.NotNil(t, req.Count)
	assert.Equal(t, IntParam(5), *req.Count)

	req.Count = nil
	require.NoError(t, json.Unmarshal([]byte(`{"count":"12"}`), &req))
	require.NotNil(t, req.Count)
	assert.Equal(t, IntParam(12), *req.Count)

	assert.Error(t, json.Unmarshal([]byte(`{"count":"ten"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"count":2.5}`), &req))
}
