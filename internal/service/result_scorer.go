package service

import (
	"career_assess_backend/internal/model"
	"career_assess_backend/internal/util"
	"math"
	"time"
)

// ScoreSession 根据会话答题情况计算结果，调用方需持有会话锁或独占会话
func ScoreSession(session *model.TestSession, now time.Time) (*model.TestResult, error) {
	total := session.Total()
	if total == 0 {
		return nil, util.ErrInvalidSession
	}

	correct := 0
	for i, q := range session.Questions {
		if a := session.Answers[i]; a != nil && a.Matches(q.CorrectOption) {
			correct++
		}
	}

	score := int(math.Round(float64(correct) * 100 / float64(total)))
	timeTaken := int(math.Round(now.Sub(session.CreatedAt).Seconds()))
	if timeTaken < 0 {
		timeTaken = 0
	}

	result := &model.TestResult{
		Score:                  score,
		PerformanceLevel:       performanceLevel(score),
		CorrectAnswers:         correct,
		TotalQuestions:         total,
		Accuracy:               score,
		TimeTaken:              timeTaken,
		AverageTimePerQuestion: int(math.Round(float64(timeTaken) / float64(total))),
		Strengths:              []string{},
		Weaknesses:             []string{},
		Recommendations:        []string{},
		CareerPaths:            []string{},
	}

	if rule, ok := careerRules[session.TestType]; ok {
		band := rule.bands[bandIndex(score)]
		result.Strengths = cloneStrings(band.strengths)
		result.Weaknesses = cloneStrings(band.weaknesses)
		result.Recommendations = cloneStrings(band.recommendations)
		result.CareerPaths = cloneStrings(rule.careerPaths)
	}
	return result, nil
}
