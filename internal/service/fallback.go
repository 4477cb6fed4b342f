package service

import (
	"fmt"
	"strings"

	"github.com/raida-labs/diag-raida-api/pkg/ai"
)

// Rule-based recommendation texts served when the LLM is unavailable. The
// tables are fixed French templates keyed by accuracy band, topic name and
// difficulty tier.

const maxFallbackWeakAreas = 3

var areaTips = map[string]string{
	"algebra":       "Pratique la résolution d'équations simples avant de passer aux plus complexes. Utilise des exemples concrets.",
	"geometry":      "Visualise les figures géométriques. Dessine des schémas pour mieux comprendre les propriétés.",
	"fractions":     "Commence par les fractions simples. Utilise des objets du quotidien pour comprendre les parts.",
	"decimals":      "Pratique les conversions entre fractions et décimaux. Utilise une calculatrice pour vérifier.",
	"equations":     "Isole la variable étape par étape. Vérifie toujours ta solution en la substituant.",
	"word_problems": "Lis attentivement l'énoncé. Identifie les données et ce qui est demandé avant de calculer.",
	"percentages":   "Relie les pourcentages aux fractions (50% = 1/2). Utilise des exemples de la vie quotidienne.",
	"ratios":        "Comprends la relation entre les quantités. Utilise des tableaux pour organiser les données.",
	"statistics":    "Pratique le calcul de moyennes avec des données simples. Crée des graphiques pour visualiser.",
	"probability":   "Commence par des événements simples (pile ou face). Compte toutes les possibilités.",
}

const genericAreaTip = "Révise les concepts de base et pratique régulièrement avec des exercices variés."

var topicResources = map[string][]string{
	"algebra": {
		"Khan Academy - Algèbre",
		"Exercices d'équations en ligne",
		"Vidéos explicatives sur les variables",
	},
	"geometry": {
		"GeoGebra pour visualiser les figures",
		"Exercices de construction géométrique",
		"Vidéos sur les propriétés des formes",
	},
	"fractions": {
		"Jeux interactifs sur les fractions",
		"Exercices de simplification",
		"Vidéos sur les opérations avec fractions",
	},
}

var genericResources = []string{
	"Ressources en ligne recommandées par ton professeur",
	"Exercices du manuel scolaire",
	"Vidéos éducatives sur YouTube",
}

// fallbackRecommendations assembles the rule-based recommendation text from
// the encouragement, weak-area, study-tip and next-step tables.
func fallbackRecommendations(summary ai.AnalysisSummary) string {
	lines := []string{encouragementFor(summary.Accuracy)}

	if len(summary.WeakAreas) > 0 {
		lines = append(lines, "\n📚 Domaines à travailler:")
		for _, area := range truncate(summary.WeakAreas, maxFallbackWeakAreas) {
			lines = append(lines, fmt.Sprintf("\n• %s:", area))
			lines = append(lines, fmt.Sprintf("  %s", tipForArea(area)))
		}
	}

	lines = append(lines, "\n💡 Conseils d'étude:")
	lines = append(lines, studyTipsFor(summary.DifficultyLevel)...)

	lines = append(lines, "\n🎯 Prochaines étapes:")
	lines = append(lines, nextStepsFor(summary.Accuracy, summary.WeakAreas)...)

	return strings.Join(lines, "\n")
}

func encouragementFor(accuracy float64) string {
	switch {
	case accuracy >= 0.8:
		return "🎉 Excellent travail ! Tu maîtrises bien les concepts. Continue à pratiquer pour maintenir ce niveau."
	case accuracy >= 0.6:
		return "👍 Bon travail ! Tu es sur la bonne voie. Avec un peu plus de pratique, tu vas progresser rapidement."
	case accuracy >= 0.4:
		return "💪 Continue tes efforts ! Tu as compris certains concepts. Concentre-toi sur les domaines à améliorer."
	default:
		return "🌟 Ne te décourage pas ! Les mathématiques demandent de la pratique. Commence par les bases et progresse étape par étape."
	}
}

func tipForArea(area string) string {
	if tip, ok := areaTips[strings.ToLower(area)]; ok {
		return tip
	}
	return genericAreaTip
}

func studyTipsFor(difficultyLevel string) []string {
	tips := []string{
		"• Pratique 15-20 minutes par jour plutôt qu'une longue session",
		"• Commence toujours par les exercices les plus faciles",
		"• N'hésite pas à demander de l'aide à ton professeur ou tes camarades",
		"• Utilise des ressources en ligne (vidéos, exercices interactifs)",
	}

	switch strings.ToLower(difficultyLevel) {
	case "easy":
		tips = append(tips,
			"• Concentre-toi sur les bases avant d'avancer",
			"• Utilise des manipulations concrètes (objets, dessins)")
	case "hard":
		tips = append(tips,
			"• Challenge-toi avec des problèmes plus complexes",
			"• Explore les applications réelles des mathématiques")
	default:
		tips = append(tips,
			"• Varie les types d'exercices pour renforcer ta compréhension",
			"• Essaie d'expliquer les concepts à quelqu'un d'autre")
	}

	return tips
}

func nextStepsFor(accuracy float64, weakAreas []string) []string {
	var steps []string

	switch {
	case accuracy < 0.5:
		steps = []string{
			"1. Révise les concepts de base avec ton professeur",
			"2. Pratique des exercices simples pour gagner en confiance",
			"3. Identifie exactement ce que tu ne comprends pas",
		}
	case accuracy < 0.7:
		steps = []string{
			"1. Pratique régulièrement les domaines identifiés",
			"2. Fais des exercices progressifs (du plus simple au plus complexe)",
			"3. Vérifie ta compréhension avec des quiz",
		}
	default:
		steps = []string{
			"1. Continue à pratiquer pour maintenir ton niveau",
			"2. Challenge-toi avec des exercices plus difficiles",
			"3. Aide tes camarades - enseigner renforce l'apprentissage",
		}
	}

	if len(weakAreas) > 0 {
		steps = append(steps, fmt.Sprintf("4. Focus sur: %s", strings.Join(truncate(weakAreas, 2), ", ")))
	}

	return steps
}

// resourcesFor maps each weak area to suggested study resources.
func resourcesFor(weakAreas []string) map[string][]string {
	if len(weakAreas) == 0 {
		return nil
	}

	resources := make(map[string][]string, len(weakAreas))
	for _, area := range truncate(weakAreas, maxFallbackWeakAreas) {
		if entries, ok := topicResources[strings.ToLower(area)]; ok {
			resources[area] = entries
		} else {
			resources[area] = genericResources
		}
	}

	return resources
}

func truncate(values []string, limit int) []string {
	if len(values) <= limit {
		return values
	}
	return values[:limit]
}
