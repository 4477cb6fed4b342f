package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/raida-labs/diag-raida-api/internal/client"
	"github.com/raida-labs/diag-raida-api/internal/dto"
)

type sessionState int

const (
	stateWelcome sessionState = iota
	stateLoading
	stateQuiz
	stateSubmitting
	stateResults
	stateError
)

type testLoadedMsg struct {
	test dto.TestResponse
}

type submitDoneMsg struct {
	result dto.SubmitResponse
}

type recommendationMsg struct {
	response dto.RecommendationResponse
}

type requestFailedMsg struct {
	err error
}

// Model drives the interactive diagnostic session.
type Model struct {
	api          *client.Client
	numQuestions int

	state     sessionState
	studentID textinput.Model
	err       error

	test      dto.TestResponse
	current   int
	selected  int
	answers   []dto.SubmittedResponse
	startedAt time.Time

	result          dto.SubmitResponse
	recommendations *dto.RecommendationResponse

	width  int
	height int
}

// New builds the session model.
func New(api *client.Client, studentID string, numQuestions int) Model {
	input := textinput.New()
	input.Placeholder = "identifiant de l'élève"
	input.CharLimit = 64
	input.SetValue(studentID)
	input.Focus()

	return Model{
		api:          api,
		numQuestions: numQuestions,
		state:        stateWelcome,
		studentID:    input,
	}
}

func (m Model) Init() tea.Cmd {
	return m.studentID.Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case testLoadedMsg:
		if len(msg.test.Questions) == 0 {
			m.state = stateError
			m.err = fmt.Errorf("le serveur n'a renvoyé aucune question")
			return m, nil
		}
		m.test = msg.test
		m.current = 0
		m.selected = 0
		m.answers = make([]dto.SubmittedResponse, 0, len(msg.test.Questions))
		m.startedAt = time.Now()
		m.state = stateQuiz
		return m, nil

	case submitDoneMsg:
		m.result = msg.result
		m.state = stateResults
		return m, m.fetchRecommendations()

	case recommendationMsg:
		response := msg.response
		m.recommendations = &response
		return m, nil

	case requestFailedMsg:
		m.state = stateError
		m.err = msg.err
		return m, nil
	}

	if m.state == stateWelcome {
		var cmd tea.Cmd
		m.studentID, cmd = m.studentID.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateWelcome:
		if msg.String() == "enter" {
			if strings.TrimSpace(m.studentID.Value()) == "" {
				return m, nil
			}
			m.state = stateLoading
			return m, m.fetchTest()
		}
		var cmd tea.Cmd
		m.studentID, cmd = m.studentID.Update(msg)
		return m, cmd

	case stateQuiz:
		question := m.test.Questions[m.current]
		switch msg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(question.Options)-1 {
				m.selected++
			}
		case "enter":
			m.answers = append(m.answers, dto.SubmittedResponse{
				QuestionID: question.ID,
				Answer:     question.Options[m.selected].Text,
				TimeTaken:  time.Since(m.startedAt).Seconds(),
			})
			if m.current+1 < len(m.test.Questions) {
				m.current++
				m.selected = 0
				m.startedAt = time.Now()
				return m, nil
			}
			m.state = stateSubmitting
			return m, m.submit()
		}
		return m, nil

	case stateResults, stateError:
		switch msg.String() {
		case "q", "esc", "enter":
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m Model) fetchTest() tea.Cmd {
	api, count := m.api, m.numQuestions
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		test, err := api.FetchTest(ctx, count)
		if err != nil {
			return requestFailedMsg{err: err}
		}
		return testLoadedMsg{test: test}
	}
}

func (m Model) submit() tea.Cmd {
	api := m.api
	request := dto.SubmitRequest{
		StudentID: strings.TrimSpace(m.studentID.Value()),
		Responses: m.answers,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		result, err := api.SubmitResponses(ctx, request)
		if err != nil {
			return requestFailedMsg{err: err}
		}
		return submitDoneMsg{result: result}
	}
}

func (m Model) fetchRecommendations() tea.Cmd {
	api := m.api
	result := m.result.Result
	request := dto.RecommendationRequest{
		StudentData: map[string]interface{}{
			"student_id": result.StudentID,
		},
		AnalysisResults: map[string]interface{}{
			"accuracy":         result.Score,
			"difficulty_level": string(result.DifficultyLevel),
			"weak_areas":       result.WeakAreas,
		},
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()

		response, err := api.FetchRecommendations(ctx, request)
		if err != nil {
			// Recommendations are best effort; the results screen stays useful
			// without them.
			return recommendationMsg{response: dto.RecommendationResponse{
				Status: "failed",
				Error:  err.Error(),
			}}
		}
		return recommendationMsg{response: response}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	var content string
	switch m.state {
	case stateWelcome:
		content = m.viewWelcome()
	case stateLoading:
		content = m.viewSpinnerText("Préparation du test diagnostique...")
	case stateQuiz:
		content = m.viewQuestion()
	case stateSubmitting:
		content = m.viewSpinnerText("Évaluation de vos réponses...")
	case stateResults:
		content = m.viewResults()
	case stateError:
		content = m.viewError()
	}

	v.SetContent(content)
	return v
}

func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Diag-Raida") + "\n")
	b.WriteString(subtitleStyle.Render("Test diagnostique de mathématiques") + "\n\n")
	b.WriteString("Entrez votre identifiant puis appuyez sur Entrée.\n\n")
	b.WriteString(m.studentID.View() + "\n\n")
	b.WriteString(hintStyle.Render("Entrée: commencer · Ctrl+C: quitter"))
	return cardStyle.Render(b.String())
}

func (m Model) viewSpinnerText(message string) string {
	return cardStyle.Render(subtitleStyle.Render(message))
}

func (m Model) viewQuestion() string {
	question := m.test.Questions[m.current]

	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Question %d/%d · %s · %s",
		m.current+1, len(m.test.Questions), question.Topic, question.Difficulty)) + "\n\n")
	b.WriteString(questionStyle.Render(question.Text) + "\n")
	if question.MathExpression != "" {
		b.WriteString(subtitleStyle.Render(question.MathExpression) + "\n")
	}
	b.WriteString("\n")

	for i, option := range question.Options {
		prefix := "  "
		style := unselectedStyle
		if i == m.selected {
			prefix = "▸ "
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s", prefix, option.Text)) + "\n")
	}

	b.WriteString("\n" + hintStyle.Render("↑↓: naviguer · Entrée: valider · Ctrl+C: quitter"))
	return cardStyle.Render(b.String())
}

func (m Model) viewResults() string {
	result := m.result.Result

	var b strings.Builder
	b.WriteString(titleStyle.Render("Résultats") + "\n\n")
	b.WriteString(fmt.Sprintf("Score: %s\n",
		scoreStyle(result.Score).Render(fmt.Sprintf("%d/%d (%.0f%%)",
			result.CorrectAnswers, result.TotalQuestions, result.Score*100))))
	b.WriteString(fmt.Sprintf("Niveau suggéré: %s\n", string(result.DifficultyLevel)))

	if len(result.WeakAreas) > 0 {
		b.WriteString("\n" + incorrectStyle.Render("À travailler:") + " " + strings.Join(result.WeakAreas, ", ") + "\n")
	}
	if len(result.Strengths) > 0 {
		b.WriteString(correctStyle.Render("Points forts:") + " " + strings.Join(result.Strengths, ", ") + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Recommandations") + "\n")
	switch {
	case m.recommendations == nil:
		b.WriteString(subtitleStyle.Render("Génération des recommandations...") + "\n")
	case m.recommendations.Status == "success":
		b.WriteString(m.recommendations.Recommendations + "\n")
		if m.recommendations.Source == "fallback" {
			b.WriteString(hintStyle.Render("(recommandations générées hors ligne)") + "\n")
		}
	default:
		b.WriteString(subtitleStyle.Render("Recommandations indisponibles: "+m.recommendations.Error) + "\n")
	}

	b.WriteString("\n" + hintStyle.Render("Entrée ou q: quitter"))
	return cardStyle.Render(b.String())
}

func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(incorrectStyle.Render("Erreur") + "\n\n")
	b.WriteString(m.err.Error() + "\n\n")
	b.WriteString(hintStyle.Render("Entrée ou q: quitter"))
	return cardStyle.Render(b.String())
}

func scoreStyle(score float64) lipgloss.Style {
	if score >= 0.5 {
		return correctStyle
	}
	return incorrectStyle
}

// Run starts the interactive session.
func Run(api *client.Client, studentID string, numQuestions int) error {
	program := tea.NewProgram(New(api, studentID, numQuestions))
	_, err := program.Run()
	return err
}
