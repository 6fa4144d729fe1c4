package model

// TestResult 由会话计算得出，不存储在会话中
// swagger:model TestResult
type TestResult struct {
	Score                  int      `json:"score"`
	PerformanceLevel       string   `json:"performanceLevel"`
	CorrectAnswers         int      `json:"correctAnswers"`
	TotalQuestions         int      `json:"totalQuestions"`
	Accuracy               int      `json:"accuracy"`
	TimeTaken              int      `json:"timeTaken"` // 秒
	AverageTimePerQuestion int      `json:"averageTimePerQuestion"`
	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
	Recommendations        []string `json:"recommendations"`
	CareerPaths            []string `json:"careerPaths"`
}

const (
	PerformanceExcellent        = "Excellent"
	PerformanceGood             = "Good"
	PerformanceAverage          = "Average"
	PerformanceNeedsImprovement = "Needs Improvement"
)
