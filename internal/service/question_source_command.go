package service

import (
	"bytes"
	"career_assess_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandQuestionSource 调用外部出题程序，配置 JSON 作为最后一个参数，stdout 返回题目数组
type CommandQuestionSource struct {
	Command string
	Args    []string
}

func NewCommandQuestionSource(command string, args []string) *CommandQuestionSource {
	return &CommandQuestionSource{Command: command, Args: args}
}

func (s *CommandQuestionSource) LoadQuestions(ctx context.Context, req QuestionRequest) ([]model.Question, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	args := append(append([]string{}, s.Args...), string(payload))
	cmd := exec.CommandContext(ctx, s.Command, args...)
	// 子进程被杀后不再等待其后代关闭输出管道
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// 超时被杀掉时返回 ctx 错误，便于上层区分
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("question command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parseCommandOutput(stdout.Bytes())
}

func parseCommandOutput(out []byte) ([]model.Question, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}

	if out[0] == '{' {
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(out, &failure); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedQuestion, err)
		}
		if failure.Error == "" {
			return nil, fmt.Errorf("%w: unexpected object output", errMalformedQuestion)
		}
		return nil, errors.New(failure.Error)
	}

	var records []QuestionRecord
	if err := json.Unmarshal(out, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedQuestion, err)
	}
	return recordsToQuestions(records)
}
