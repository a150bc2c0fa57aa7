package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/asmec-academy/assessment-engine/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProficiencyPostgreSQL struct {
	db *gorm.DB
}

func NewProficiencyPostgreSQL(db *gorm.DB) repositories.ProficiencyStore {
	return &ProficiencyPostgreSQL{db: db}
}

func (p *ProficiencyPostgreSQL) Load(ctx context.Context, userID string) (map[string]float64, error) {
	var records []models.ProficiencyRecord
	if err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load proficiency for user %s: %w", userID, err)
	}

	levels := make(map[string]float64, len(records))
	for _, record := range records {
		levels[record.Topic] = record.Level
	}
	return levels, nil
}

func (p *ProficiencyPostgreSQL) Save(ctx context.Context, userID string, levels map[string]float64) error {
	if len(levels) == 0 {
		return nil
	}

	records := make([]models.ProficiencyRecord, 0, len(levels))
	for topic, level := range levels {
		records = append(records, models.ProficiencyRecord{
			UserID: userID,
			Topic:  topic,
			Level:  level,
		})
	}

	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic"}},
			DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
		}).
		Create(&records).Error
	if err != nil {
		return fmt.Errorf("failed to save proficiency for user %s: %w", userID, err)
	}
	return nil
}

// LoadQuestionBank reads the full question catalog from the questions table
// into the topic mapping the in-memory repository is built from. Called once
// at startup; the repository itself never touches the database afterwards.
func LoadQuestionBank(ctx context.Context, db *gorm.DB) (map[string][]*models.Question, error) {
	var rows []models.QuestionRow
	if err := db.WithContext(ctx).Order("topic, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}

	byTopic := make(map[string][]*models.Question)
	for _, row := range rows {
		q := &models.Question{
			ID:            row.ID,
			Text:          row.Text,
			Type:          row.Type,
			CorrectAnswer: row.CorrectAnswer,
			Points:        row.Points,
			Difficulty:    models.Difficulty(row.Difficulty),
			Topic:         row.Topic,
			Hint:          row.Hint,
		}
		if len(row.Options) > 0 {
			if err := json.Unmarshal(row.Options, &q.Options); err != nil {
				return nil, fmt.Errorf("question %s: invalid options column: %w", row.ID, err)
			}
		}
		byTopic[row.Topic] = append(byTopic[row.Topic], q)
	}
	return byTopic, nil
}

// SaveQuestionBank writes a topic mapping into the questions table, used by
// the XLSX import path to persist an uploaded bank.
func SaveQuestionBank(ctx context.Context, db *gorm.DB, byTopic map[string][]*models.Question) error {
	for topic, questions := range byTopic {
		for _, q := range questions {
			options, err := json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("question %s: %w", q.ID, err)
			}
			row := models.QuestionRow{
				ID:            q.ID,
				Text:          q.Text,
				Type:          q.Type,
				CorrectAnswer: q.CorrectAnswer,
				Points:        q.Points,
				Difficulty:    int(q.Difficulty),
				Topic:         topic,
				Options:       datatypes.JSON(options),
				Hint:          q.Hint,
			}
			if err := db.WithContext(ctx).
				Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save question %s: %w", q.ID, err)
			}
		}
	}
	return nil
}
