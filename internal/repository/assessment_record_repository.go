package repository

import (
	"career_assess_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type AssessmentRecordRepository struct {
	DB *gorm.DB
}

func NewAssessmentRecordRepository(db *gorm.DB) *AssessmentRecordRepository {
	return &AssessmentRecordRepository{DB: db}
}

func (r *AssessmentRecordRepository) StoreSession(ctx context.Context, record *model.TestSessionRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

func (r *AssessmentRecordRepository) StoreAnswer(ctx context.Context, record *model.QuizAnswerRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// StoreResults 写入结果并关闭对应的会话记录
func (r *AssessmentRecordRepository) StoreResults(ctx context.Context, record *model.TestResultRecord, endTime time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Model(&model.TestSessionRecord{}).
			Where("session_id = ?", record.SessionID).
			Updates(map[string]interface{}{
				"end_time":         endTime,
				"score":            record.Score,
				"total_time_taken": record.TimeTaken,
			}).Error
	})
}

// Ping 健康检查使用
func (r *AssessmentRecordRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
