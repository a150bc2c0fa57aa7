package repositories

import (
	"errors"
	"fmt"

	"github.com/asmec-academy/assessment-engine/internal/models"
)

// ErrUnknownTopic is returned when a topic key was never registered with the
// repository. An empty question list for a registered topic is not an error.
var ErrUnknownTopic = errors.New("unknown topic")

// QuestionRepository is a read-only catalog of questions grouped by topic.
// Loading happens once at construction; there are no mutation operations.
type QuestionRepository interface {
	// QuestionsFor returns every question registered under topic, in
	// insertion order.
	QuestionsFor(topic string) ([]*models.Question, error)

	// QuestionsForDifficulty returns the subset of a topic's questions at
	// the given tier.
	QuestionsForDifficulty(topic string, difficulty models.Difficulty) ([]*models.Question, error)

	// Topics returns every registered topic key.
	Topics() []string
}

type memoryQuestionRepository struct {
	byTopic map[string][]*models.Question
	topics  []string
}

// NewQuestionRepository builds a catalog from a topic → questions mapping.
// Topics with empty slices are registered; lookups against them succeed with
// an empty result.
func NewQuestionRepository(byTopic map[string][]*models.Question) QuestionRepository {
	repo := &memoryQuestionRepository{
		byTopic: make(map[string][]*models.Question, len(byTopic)),
		topics:  make([]string, 0, len(byTopic)),
	}
	for topic, questions := range byTopic {
		repo.byTopic[topic] = questions
		repo.topics = append(repo.topics, topic)
	}
	return repo
}

func (r *memoryQuestionRepository) QuestionsFor(topic string) ([]*models.Question, error) {
	questions, ok := r.byTopic[topic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	return questions, nil
}

func (r *memoryQuestionRepository) QuestionsForDifficulty(topic string, difficulty models.Difficulty) ([]*models.Question, error) {
	questions, err := r.QuestionsFor(topic)
	if err != nil {
		return nil, err
	}
	var filtered []*models.Question
	for _, q := range questions {
		if q.Difficulty == difficulty {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

func (r *memoryQuestionRepository) Topics() []string {
	return r.topics
}
