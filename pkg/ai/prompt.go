package ai

import (
	"fmt"
	"strings"
)

// BuildRecommendationPrompt renders the French tutoring prompt sent to the
// model. The wording targets collège-level students (12-15 ans).
func BuildRecommendationPrompt(summary AnalysisSummary) string {
	weakAreas := "Aucun identifié"
	if len(summary.WeakAreas) > 0 {
		weakAreas = strings.Join(summary.WeakAreas, ", ")
	}

	builder := strings.Builder{}
	builder.WriteString("Tu es un assistant pédagogique spécialisé en mathématiques pour les élèves du collège.\n\n")
	builder.WriteString("Contexte de l'élève:\n")
	builder.WriteString(fmt.Sprintf("- Niveau de précision: %.1f%%\n", summary.Accuracy*100))
	builder.WriteString(fmt.Sprintf("- Niveau de difficulté: %s\n", summary.DifficultyLevel))
	builder.WriteString(fmt.Sprintf("- Domaines à améliorer: %s\n\n", weakAreas))
	builder.WriteString("Tâche:\n")
	builder.WriteString("Génère des recommandations personnalisées et encourageantes pour aider cet élève à progresser en mathématiques.\n\n")
	builder.WriteString("Tes recommandations doivent inclure:\n")
	builder.WriteString("1. Un message d'encouragement adapté au niveau de l'élève\n")
	builder.WriteString("2. 3-4 conseils spécifiques pour améliorer les domaines faibles\n")
	builder.WriteString("3. Des suggestions d'exercices ou de ressources appropriées\n")
	builder.WriteString("4. Une stratégie d'apprentissage progressive\n\n")
	builder.WriteString("Format ta réponse de manière claire et structurée. Sois positif, encourageant et constructif.\n")
	builder.WriteString("Adapte ton langage au niveau collège (12-15 ans).\n\n")
	builder.WriteString("Recommandations:")

	return builder.String()
}
