package service

import (
	"career_assess_backend/internal/model"
	"career_assess_backend/internal/repository"
	"career_assess_backend/internal/util"
	"career_assess_backend/pkg/logger"
	"context"
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var requiredBankColumns = []string{"question", "option_a", "option_b", "option_c", "option_d", "correct_option"}

// FileQuestionSource 从题库文件出题，每个题型代码对应一个 CSV 或 XLSX 文件
type FileQuestionSource struct {
	BankDir string
	Files   map[string]string
	Tracker repository.RecentQuestionTracker
	Now     func() time.Time
}

func NewFileQuestionSource(bankDir string, files map[string]string, tracker repository.RecentQuestionTracker) *FileQuestionSource {
	return &FileQuestionSource{
		BankDir: bankDir,
		Files:   files,
		Tracker: tracker,
		Now:     time.Now,
	}
}

func (s *FileQuestionSource) LoadQuestions(ctx context.Context, req QuestionRequest) ([]model.Question, error) {
	name, ok := s.Files[req.QuizType]
	if !ok {
		return nil, fmt.Errorf("no question bank configured for quiz type %q", req.QuizType)
	}

	records, err := readQuestionBank(filepath.Join(s.BankDir, name))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filtered := filterRecords(records, req)
	selected, err := s.selectRecords(ctx, filtered, req)
	if err != nil {
		return nil, err
	}
	return recordsToQuestions(selected)
}

// filterRecords 按难度和领域过滤，不足时放宽为整个题库
func filterRecords(all []QuestionRecord, req QuestionRequest) []QuestionRecord {
	filtered := make([]QuestionRecord, 0, len(all))
	domain := strings.ToLower(strings.TrimSpace(req.Domain))
	byDomain := req.QuizType == model.TestTypeTechnical.QuizCode() && domain != "" && domain != util.DomainAll

	for _, r := range all {
		if req.Level != util.LevelMixed && r.Level != req.Level {
			continue
		}
		if byDomain && !strings.Contains(strings.ToLower(r.Skills), domain) {
			continue
		}
		filtered = append(filtered, r)
	}

	if len(filtered) < req.NumQuestions {
		return all
	}
	return filtered
}

// selectRecords 冷却期内未出过的题优先随机抽取，不够时按最早使用时间补齐
func (s *FileQuestionSource) selectRecords(ctx context.Context, records []QuestionRecord, req QuestionRequest) ([]QuestionRecord, error) {
	if len(records) <= req.NumQuestions {
		return records, nil
	}

	now := s.Now()
	recent := map[string]time.Time{}
	if s.Tracker != nil {
		r, err := s.Tracker.Recent(ctx, req.QuizType, now)
		if err != nil {
			// 冷却记录不可用时退化为纯随机
			logger.Log.Warn("Failed to read recently used questions", zap.String("quizType", req.QuizType), zap.Error(err))
		} else {
			recent = r
		}
	}

	var fresh, used []QuestionRecord
	for _, r := range records {
		if _, ok := recent[questionID(r.Question)]; ok {
			used = append(used, r)
		} else {
			fresh = append(fresh, r)
		}
	}
	sort.SliceStable(used, func(i, j int) bool {
		return recent[questionID(used[i].Question)].Before(recent[questionID(used[j].Question)])
	})

	rng := rand.New(rand.NewSource(sessionSeed(req.SessionID, now)))
	var selected []QuestionRecord
	if len(fresh) >= req.NumQuestions {
		rng.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })
		selected = fresh[:req.NumQuestions]
	} else {
		selected = append(fresh, used[:req.NumQuestions-len(fresh)]...)
	}

	// 请求已超时或取消时不再记录冷却，避免未下发的题目被锁定
	if s.Tracker != nil && ctx.Err() == nil {
		ids := make([]string, 0, len(selected))
		for _, r := range selected {
			ids = append(ids, questionID(r.Question))
		}
		if err := s.Tracker.MarkUsed(ctx, req.QuizType, ids, now); err != nil {
			logger.Log.Warn("Failed to mark questions as used", zap.String("quizType", req.QuizType), zap.Error(err))
		}
	}
	return selected, nil
}

func questionID(text string) string {
	h := fnv.New64a()
	h.Write([]byte(text))
	return strconv.FormatUint(h.Sum64(), 16)
}

func sessionSeed(sessionID string, now time.Time) int64 {
	if sessionID == "" {
		return now.UnixNano()
	}
	h := fnv.New64a()
	h.Write([]byte(sessionID))
	return int64(h.Sum64())
}

func readQuestionBank(path string) ([]QuestionRecord, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		return nil, fmt.Errorf("unsupported question bank format: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return parseBankRows(rows)
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("question bank %s has no sheets", path)
	}
	return f.GetRows(sheets[0])
}

func parseBankRows(rows [][]string) ([]QuestionRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredBankColumns {
		if _, ok := columns[c]; !ok {
			return nil, fmt.Errorf("question bank is missing column %q", c)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]QuestionRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if cell(row, "question") == "" {
			continue
		}
		records = append(records, QuestionRecord{
			Question:      cell(row, "question"),
			OptionA:       cell(row, "option_a"),
			OptionB:       cell(row, "option_b"),
			OptionC:       cell(row, "option_c"),
			OptionD:       cell(row, "option_d"),
			CorrectOption: cell(row, "correct_option"),
			Level:         cell(row, "level"),
			Domain:        cell(row, "domain"),
			Skills:        cell(row, "skills"),
			Skill:         cell(row, "skill"),
		})
	}
	return records, nil
}
