package repositories

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/xuri/excelize/v2"
)

// Column layout expected on the first sheet of a question workbook.
// Header row: id, topic, type, difficulty, text, correct_answer, points,
// options (pipe-separated), hint. Column order is free; matching is by
// header name.
var requiredColumns = []string{"id", "topic", "type", "difficulty", "text", "correct_answer"}

// ImportQuestionsFromExcel parses an XLSX workbook into a topic → questions
// mapping suitable for NewQuestionRepository. Rows that fail to parse abort
// the import; a question bank with silently dropped rows is worse than a
// failed load at startup.
func ImportQuestionsFromExcel(reader io.Reader) (map[string][]*models.Question, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook must have a header row and at least one data row")
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := headerMap[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	byTopic := make(map[string][]*models.Question)
	for rowIdx, row := range rows[1:] {
		q, err := parseQuestionRow(row, headerMap)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIdx+2, err)
		}
		byTopic[q.Topic] = append(byTopic[q.Topic], q)
	}
	return byTopic, nil
}

func parseQuestionRow(row []string, headerMap map[string]int) (*models.Question, error) {
	cell := func(name string) string {
		idx, ok := headerMap[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	difficulty, ok := models.ParseDifficulty(strings.ToUpper(cell("difficulty")))
	if !ok {
		ordinal, err := strconv.Atoi(cell("difficulty"))
		if err != nil || !models.Difficulty(ordinal).Valid() {
			return nil, fmt.Errorf("invalid difficulty %q", cell("difficulty"))
		}
		difficulty = models.Difficulty(ordinal)
	}

	points := 10
	if raw := cell("points"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid points %q", raw)
		}
		points = parsed
	}

	q := &models.Question{
		ID:            cell("id"),
		Text:          cell("text"),
		Type:          models.QuestionType(cell("type")),
		CorrectAnswer: cell("correct_answer"),
		Points:        points,
		Difficulty:    difficulty,
		Topic:         cell("topic"),
		Hint:          cell("hint"),
	}
	if q.ID == "" || q.Text == "" || q.Topic == "" {
		return nil, fmt.Errorf("id, text and topic are required")
	}
	if raw := cell("options"); raw != "" {
		for _, option := range strings.Split(raw, "|") {
			q.Options = append(q.Options, strings.TrimSpace(option))
		}
	}
	return q, nil
}
