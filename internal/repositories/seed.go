package repositories

import "github.com/asmec-academy/assessment-engine/internal/models"

// SeedQuestionBank returns the built-in catalog. The calculus and statistics
// topics are registered with no questions yet, so sessions can reference them
// without tripping the unknown-topic check.
func SeedQuestionBank() map[string][]*models.Question {
	return map[string][]*models.Question{
		"aritmetica":  arithmeticQuestions(),
		"algebra":     algebraQuestions(),
		"geometria":   geometryQuestions(),
		"calculo":     nil,
		"estadistica": nil,
	}
}

func arithmeticQuestions() []*models.Question {
	return []*models.Question{
		{
			ID:            "arith_001",
			Text:          "¿Cuál es el resultado de 15 + 27?",
			Type:          models.QuestionMultipleChoice,
			CorrectAnswer: "42",
			Points:        10,
			Difficulty:    models.DifficultyEasy,
			Topic:         "aritmetica",
			Options:       []string{"40", "41", "42", "43"},
		},
		{
			ID:            "arith_002",
			Text:          "Calcula: 48 ÷ 6",
			Type:          models.QuestionShortAnswer,
			CorrectAnswer: "8",
			Points:        10,
			Difficulty:    models.DifficultyEasy,
			Topic:         "aritmetica",
		},
		{
			ID:            "arith_003",
			Text:          "Un producto cuesta $120. Si tiene un descuento del 15%, ¿cuál es el precio final?",
			Type:          models.QuestionProblemSolving,
			CorrectAnswer: "102",
			Points:        20,
			Difficulty:    models.DifficultyMedium,
			Topic:         "aritmetica",
			Hint:          "Calcula el 15% de 120 y réstalo del precio original",
		},
		{
			ID:            "arith_004",
			Text:          "Simplifica: (3/4) + (2/5) - (1/2)",
			Type:          models.QuestionCalculation,
			CorrectAnswer: "13/20",
			Points:        30,
			Difficulty:    models.DifficultyHard,
			Topic:         "aritmetica",
		},
	}
}

func algebraQuestions() []*models.Question {
	return []*models.Question{
		{
			ID:            "alg_001",
			Text:          "Resuelve para x: 2x + 5 = 13",
			Type:          models.QuestionShortAnswer,
			CorrectAnswer: "4",
			Points:        15,
			Difficulty:    models.DifficultyEasy,
			Topic:         "algebra",
		},
		{
			ID:            "alg_002",
			Text:          "Resuelve el sistema: x + y = 10, x - y = 2",
			Type:          models.QuestionProblemSolving,
			CorrectAnswer: "x=6, y=4",
			Points:        25,
			Difficulty:    models.DifficultyMedium,
			Topic:         "algebra",
			Hint:          "Usa el método de eliminación o sustitución",
		},
		{
			ID:            "alg_003",
			Text:          "Factoriza completamente: x² - 5x + 6",
			Type:          models.QuestionShortAnswer,
			CorrectAnswer: "(x-2)(x-3)",
			Points:        20,
			Difficulty:    models.DifficultyMedium,
			Topic:         "algebra",
		},
	}
}

func geometryQuestions() []*models.Question {
	return []*models.Question{
		{
			ID:            "geo_001",
			Text:          "El área de un rectángulo es 24 cm². Si el largo es 6 cm, ¿cuál es el ancho?",
			Type:          models.QuestionProblemSolving,
			CorrectAnswer: "4",
			Points:        15,
			Difficulty:    models.DifficultyEasy,
			Topic:         "geometria",
		},
		{
			ID:            "geo_002",
			Text:          "En un triángulo rectángulo, los catetos miden 3 cm y 4 cm. ¿Cuánto mide la hipotenusa?",
			Type:          models.QuestionShortAnswer,
			CorrectAnswer: "5",
			Points:        20,
			Difficulty:    models.DifficultyMedium,
			Topic:         "geometria",
		},
	}
}
