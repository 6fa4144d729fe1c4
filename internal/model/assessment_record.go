package model

import "time"

// TestSessionRecord 测评会话的落库记录
type TestSessionRecord struct {
	SessionID      string     `gorm:"primaryKey;size:100" json:"sessionId"`
	TestType       string     `gorm:"size:20;not null;index" json:"testType"`
	Level          string     `gorm:"size:20;not null" json:"level"`
	Domain         string     `gorm:"size:50;not null" json:"domain"`
	QuestionCount  int        `gorm:"not null" json:"questionCount"`
	TimeLimit      int        `gorm:"not null" json:"timeLimit"`
	StartTime      time.Time  `gorm:"not null" json:"startTime"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	Score          *int       `json:"score,omitempty"`
	TotalTimeTaken *int       `json:"totalTimeTaken,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (TestSessionRecord) TableName() string {
	return "test_sessions"
}

// QuizAnswerRecord 每次提交答案一行
type QuizAnswerRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID     string    `gorm:"size:100;not null;index" json:"sessionId"`
	QuestionNo    int       `gorm:"not null" json:"questionNumber"`
	Question      string    `gorm:"type:text;not null" json:"question"`
	OptionA       string    `gorm:"type:text;not null" json:"optionA"`
	OptionB       string    `gorm:"type:text;not null" json:"optionB"`
	OptionC       string    `gorm:"type:text;not null" json:"optionC"`
	OptionD       string    `gorm:"type:text;not null" json:"optionD"`
	CorrectOption string    `gorm:"size:1;not null" json:"correctOption"`
	ChosenOption  string    `gorm:"size:1" json:"chosenOption"`
	IsCorrect     bool      `json:"isCorrect"`
	TimeTaken     int       `json:"timeTaken"`
	Level         string    `gorm:"size:20;index" json:"level"`
	Domain        string    `gorm:"size:50;index" json:"domain"`
	Skill         string    `gorm:"size:50;index" json:"skill"`
	QuizType      string    `gorm:"size:20;not null" json:"quizType"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (QuizAnswerRecord) TableName() string {
	return "quiz_results"
}

// TestResultRecord 测评结果
type TestResultRecord struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID       string    `gorm:"size:100;not null;index" json:"sessionId"`
	Score           int       `gorm:"not null" json:"score"`
	CorrectAnswers  int       `gorm:"not null" json:"correctAnswers"`
	TotalQuestions  int       `gorm:"not null" json:"totalQuestions"`
	TimeTaken       int       `gorm:"not null" json:"timeTaken"`
	Strengths       []string  `gorm:"serializer:json;type:text" json:"strengths"`
	Weaknesses      []string  `gorm:"serializer:json;type:text" json:"weaknesses"`
	Recommendations []string  `gorm:"serializer:json;type:text" json:"recommendations"`
	CareerPaths     []string  `gorm:"serializer:json;type:text" json:"careerPaths"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (TestResultRecord) TableName() string {
	return "test_results"
}
