package repository

import "github.com/raida-labs/diag-raida-api/internal/models"

// SampleQuestions returns the built-in diagnostic bank used when no external
// question bank file is configured.
func SampleQuestions() []models.Question {
	return []models.Question{
		{
			ID:         "q1",
			Text:       "Résous l'équation: 2x + 3 = 7",
			Topic:      "solving_equations",
			Difficulty: models.DifficultyEasy,
			Options: []models.AnswerOption{
				{Text: "x = 2", IsCorrect: true, Explanation: "2(2) + 3 = 7"},
				{Text: "x = 3", IsCorrect: false, Explanation: "2(3) + 3 = 9 ≠ 7"},
				{Text: "x = 4", IsCorrect: false, Explanation: "2(4) + 3 = 11 ≠ 7"},
			},
			CorrectAnswer:  "x = 2",
			Explanation:    "Soustrayez 3 des deux côtés: 2x = 4, puis divisez par 2: x = 2",
			MathExpression: "2x + 3 = 7",
		},
		{
			ID:         "q2",
			Text:       "Simplifie la fraction 12/18",
			Topic:      "fractions",
			Difficulty: models.DifficultyMedium,
			Options: []models.AnswerOption{
				{Text: "2/3", IsCorrect: true, Explanation: "12 ÷ 6 = 2 et 18 ÷ 6 = 3"},
				{Text: "3/4", IsCorrect: false, Explanation: "Ce n'est pas la forme simplifiée de 12/18"},
				{Text: "6/9", IsCorrect: false, Explanation: "Peut être simplifiée davantage"},
			},
			CorrectAnswer:  "2/3",
			Explanation:    "Le PGCD de 12 et 18 est 6. 12÷6=2 et 18÷6=3, donc 12/18 = 2/3",
			MathExpression: "\\frac{12}{18} = ?",
		},
		{
			ID:         "q3",
			Text:       "Résous l'équation: x² - 5x + 6 = 0",
			Topic:      "quadratic_equations",
			Difficulty: models.DifficultyHard,
			Options: []models.AnswerOption{
				{Text: "x = 2, x = 3", IsCorrect: true, Explanation: "(x-2)(x-3) = x² - 5x + 6"},
				{Text: "x = -2, x = -3", IsCorrect: false, Explanation: "(-2)² - 5(-2) + 6 = 4 + 10 + 6 = 20 ≠ 0"},
				{Text: "x = 1, x = 6", IsCorrect: false, Explanation: "(1)² - 5(1) + 6 = 2 ≠ 0 et (6)² - 5(6) + 6 = 12 ≠ 0"},
			},
			CorrectAnswer:  "x = 2, x = 3",
			Explanation:    "L'équation se factorise en (x-2)(x-3)=0, donc les solutions sont x=2 et x=3",
			MathExpression: "x^2 - 5x + 6 = 0",
		},
		{
			ID:         "q4",
			Text:       "Calcule l'aire d'un cercle de rayon 4 cm (prends π ≈ 3.14)",
			Topic:      "geometry",
			Difficulty: models.DifficultyMedium,
			Options: []models.AnswerOption{
				{Text: "50.24 cm²", IsCorrect: true, Explanation: "A = πr² = 3.14 × 4² = 50.24"},
				{Text: "25.12 cm²", IsCorrect: false, Explanation: "C'est le périmètre (2πr), pas l'aire"},
				{Text: "12.56 cm²", IsCorrect: false, Explanation: "C'est l'aire d'un cercle de rayon 2 cm"},
			},
			CorrectAnswer:  "50.24 cm²",
			Explanation:    "La formule de l'aire d'un cercle est A = πr². Ici, A = 3.14 × 4² = 50.24 cm²",
			MathExpression: "A = \\pi r^2, r = 4\\text{ cm}",
		},
		{
			ID:         "q5",
			Text:       "Si 5 stylos coûtent 7.50€, combien coûtent 8 stylos ?",
			Topic:      "word_problems",
			Difficulty: models.DifficultyEasy,
			Options: []models.AnswerOption{
				{Text: "12.00€", IsCorrect: true, Explanation: "1 stylo = 1.50€, donc 8 stylos = 12.00€"},
				{Text: "10.50€", IsCorrect: false, Explanation: "C'est le coût de 7 stylos"},
				{Text: "15.00€", IsCorrect: false, Explanation: "C'est le double du prix de 5 stylos"},
			},
			CorrectAnswer:  "12.00€",
			Explanation:    "Prix d'un stylo = 7.50€ ÷ 5 = 1.50€. Donc 8 stylos = 8 × 1.50€ = 12.00€",
			MathExpression: "\\frac{7.50}{5} \\times 8 = ?",
		},
	}
}
