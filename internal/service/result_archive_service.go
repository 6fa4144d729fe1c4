package service

import (
	"career_assess_backend/internal/model"
	"career_assess_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ResultReport 归档到对象存储的测评报告
type ResultReport struct {
	SessionID   string            `json:"sessionId"`
	TestType    model.TestType    `json:"testType"`
	Level       model.Level       `json:"level"`
	Domain      string            `json:"domain"`
	StartedAt   string            `json:"startedAt"`
	CompletedAt string            `json:"completedAt"`
	Result      *model.TestResult `json:"results"`
}

type ResultArchiveService struct {
	Storage *StorageService
}

func NewResultArchiveService(storage *StorageService) *ResultArchiveService {
	return &ResultArchiveService{Storage: storage}
}

func (s *ResultArchiveService) Enabled() bool {
	return s != nil && s.Storage != nil && s.Storage.Enabled()
}

// ReportKey 按完成日期分目录
func ReportKey(sessionID string, completedAt time.Time) string {
	return fmt.Sprintf("reports/%s/%s.json", completedAt.Format(util.DateFormat), sessionID)
}

func (s *ResultArchiveService) Archive(ctx context.Context, report ResultReport, completedAt time.Time) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return s.Storage.UploadBytes(ctx, ReportKey(report.SessionID, completedAt), data, util.MimeJSON)
}
