package services

import (
	"fmt"
	"os"

	"github.com/asmec-academy/assessment-engine/internal/models"
	"gopkg.in/yaml.v3"
)

// TemplateTable maps topic → tier → problem templates. Placeholders are
// written {a}..{d} for generic operands, {p} for percentages, {n} for large
// operands and {lista} for a drawn list of integers.
type TemplateTable map[string]map[models.Difficulty][]string

// DefaultTemplates is the built-in exercise template table.
func DefaultTemplates() TemplateTable {
	return TemplateTable{
		"aritmetica": {
			models.DifficultyEasy: {
				"¿Cuánto es {a} + {b}?",
				"{a} + {b} = ?",
				"Calcula: {a} - {b}",
				"{a} × {b} = ?",
				"{a} ÷ {b} = ?",
			},
			models.DifficultyMedium: {
				"Calcula: ({a} + {b}) × {c}",
				"¿Cuál es el {p}% de {n}?",
				"Simplifica: {a}/{b} + {c}/{d}",
				"Resuelve: {a}² - {b}²",
			},
			models.DifficultyHard: {
				"Calcula: √({a} × {b} + {c})",
				"Resuelve: ({a} + {b}i)({c} - {d}i)",
				"Encuentra el MCD de {a}, {b} y {c}",
				"Calcula la media de: {lista}",
			},
		},
		"algebra": {
			models.DifficultyEasy: {
				"Resuelve: {a}x + {b} = {c}",
				"Simplifica: {a}x + {b}x",
				"Evalúa: {a}x² cuando x = {b}",
				"¿Cuál es el coeficiente de x en {a}x + {b}?",
			},
			models.DifficultyMedium: {
				"Resuelve el sistema: x + y = {a}, x - y = {b}",
				"Factoriza: x² + {a}x + {b}",
				"Grafica: y = {a}x + {b}",
				"Resuelve: |x - {a}| = {b}",
			},
			models.DifficultyHard: {
				"Resuelve: {a}x³ + {b}x² + {c}x + {d} = 0",
				"Encuentra la inversa de la matriz [[{a},{b}],[{c},{d}]]",
				"Demuestra que ({a}+{b}i)² = {c}+{d}i",
				"Resuelve la desigualdad: {a}x² + {b}x + {c} > 0",
			},
		},
	}
}

// DefaultHints is the built-in per-topic hint pool.
func DefaultHints() map[string][]string {
	return map[string][]string{
		"aritmetica": {
			"Recuerda el orden de las operaciones (PEMDAS)",
			"Verifica que estés usando los números correctos",
			"Haz los cálculos paso a paso",
			"Revisa las unidades si las hay",
		},
		"algebra": {
			"Aísla la variable en un lado de la ecuación",
			"Realiza la misma operación en ambos lados",
			"Verifica tu respuesta sustituyendo",
			"Simplifica antes de resolver",
		},
		"geometria": {
			"Dibuja la figura si es posible",
			"Identifica las fórmulas necesarias",
			"Asegúrate de usar las unidades correctas",
			"Verifica que todos los datos estén en la misma unidad",
		},
	}
}

// templateFile is the YAML shape of an external template override file.
// Tiers are keyed by ordinal name (EASY..EXPERT).
type templateFile struct {
	Templates map[string]map[string][]string `yaml:"templates"`
	Hints     map[string][]string            `yaml:"hints"`
}

// LoadTemplateFile reads a YAML override file and merges it over the
// defaults. Topics present in the file replace the built-in entry wholesale;
// absent topics keep their defaults.
func LoadTemplateFile(path string) (TemplateTable, map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var parsed templateFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, nil, fmt.Errorf("failed to parse template file: %w", err)
	}

	templates := DefaultTemplates()
	for topic, byTier := range parsed.Templates {
		entry := make(map[models.Difficulty][]string, len(byTier))
		for tierName, list := range byTier {
			tier, ok := models.ParseDifficulty(tierName)
			if !ok {
				return nil, nil, fmt.Errorf("topic %s: unknown difficulty %q", topic, tierName)
			}
			entry[tier] = list
		}
		templates[topic] = entry
	}

	hints := DefaultHints()
	for topic, pool := range parsed.Hints {
		hints[topic] = pool
	}
	return templates, hints, nil
}
