package service

import "career_assess_backend/internal/model"

// feedbackBand 某一分数段的评语
type feedbackBand struct {
	strengths       []string
	weaknesses      []string
	recommendations []string
}

// careerRule 每个测评类型的评语规则，bands 依次对应 >=80、>=60、其余
type careerRule struct {
	bands       [3]feedbackBand
	careerPaths []string
}

var careerRules = map[model.TestType]careerRule{
	model.TestTypeCognitive: {
		bands: [3]feedbackBand{
			{
				strengths:       []string{"Strong analytical thinking", "Excellent problem-solving abilities", "Good pattern recognition"},
				recommendations: []string{"Consider advanced cognitive challenges", "Explore leadership roles"},
			},
			{
				strengths:       []string{"Decent analytical thinking", "Good problem-solving in some areas"},
				weaknesses:      []string{"Could improve pattern recognition"},
				recommendations: []string{"Practice more logic puzzles", "Work on time management"},
			},
			{
				weaknesses:      []string{"Needs improvement in analytical thinking", "Difficulty with complex problem-solving"},
				recommendations: []string{"Start with basic logic exercises", "Consider a structured learning approach"},
			},
		},
		careerPaths: []string{"Data Analyst", "Business Analyst", "Research Scientist", "Software Engineer"},
	},
	model.TestTypeTechnical: {
		bands: [3]feedbackBand{
			{
				strengths:       []string{"Strong technical knowledge", "Good understanding of programming concepts", "Solid problem-solving skills"},
				recommendations: []string{"Consider specializing in advanced technologies", "Mentor junior developers"},
			},
			{
				strengths:       []string{"Decent technical foundation"},
				weaknesses:      []string{"Some gaps in technical knowledge"},
				recommendations: []string{"Focus on strengthening core concepts", "Practice coding regularly"},
			},
			{
				weaknesses:      []string{"Significant gaps in technical knowledge", "Needs improvement in programming fundamentals"},
				recommendations: []string{"Start with basics and build up gradually", "Take structured programming courses"},
			},
		},
		careerPaths: []string{"Software Developer", "Web Developer", "DevOps Engineer", "Database Administrator"},
	},
	model.TestTypeSoftSkills: {
		bands: [3]feedbackBand{
			{
				strengths:       []string{"Excellent communication skills", "Strong interpersonal abilities", "Good emotional intelligence"},
				recommendations: []string{"Consider team leadership roles", "Develop coaching skills"},
			},
			{
				strengths:       []string{"Decent communication skills"},
				weaknesses:      []string{"Could improve active listening"},
				recommendations: []string{"Practice more group discussions", "Work on conflict resolution"},
			},
			{
				weaknesses:      []string{"Needs improvement in communication", "Difficulty with conflict resolution"},
				recommendations: []string{"Consider communication workshops", "Practice public speaking"},
			},
		},
		careerPaths: []string{"Project Manager", "Team Lead", "Customer Success Manager", "HR Specialist"},
	},
}

func bandIndex(score int) int {
	switch {
	case score >= 80:
		return 0
	case score >= 60:
		return 1
	}
	return 2
}

func performanceLevel(score int) string {
	switch {
	case score >= 80:
		return model.PerformanceExcellent
	case score >= 70:
		return model.PerformanceGood
	case score >= 60:
		return model.PerformanceAverage
	}
	return model.PerformanceNeedsImprovement
}

// 返回副本，避免调用方修改规则表
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
