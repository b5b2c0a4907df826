package game

import (
	"fmt"
	"math"
	"strings"

	"finquest/models"
)

// PassThreshold is the uniform score a level attempt needs to count as passed
const PassThreshold = 80

// Answer is a validated submission payload for one evaluation step.
// Which fields carry data depends on the level type; validators fill it.
type Answer struct {
	Selected    int       // single choice, scenario, story, simulation response
	SelectedSet []int     // multiple choice option indices
	Matches     [][2]int  // matching (left, right) pairs
	Order       []int     // sorting item IDs in submitted order
	Values      []float64 // calculation answers, one per sub-question
	Text        string    // quest / puzzle free text
}

// Verdict is the outcome of scoring one submission step
type Verdict struct {
	IsCorrect  bool   `json:"is_correct"`
	Percentage int    `json:"percentage"` // 0-100
	Display    string `json:"display"`
}

// Outcome distinguishes the quest "continue" state from pass/fail.
// Continue must never be treated as level completion by the caller.
type Outcome int

const (
	OutcomeFail Outcome = iota
	OutcomePass
	OutcomeContinue
)

// EvaluateLevel scores one submission step for a level. questionIndex
// addresses the question, dialogue node or quest step the submission
// answers; the validator guarantees it is in range. An unrecognized level
// type yields a default not-correct verdict with a diagnostic message
// instead of an error, so the pipeline never aborts mid-request.
func EvaluateLevel(level *models.Level, content *models.LevelContent, questionIndex int, ans Answer) (Verdict, Outcome) {
	switch level.Type {
	case models.LevelTypeQuiz, models.LevelTypeTest:
		v := EvaluateQuestion(&content.Questions[questionIndex], ans)
		return v, outcomeFor(v)
	case models.LevelTypeScenario, models.LevelTypeStory:
		v := evaluateScenario(&content.Questions[questionIndex], ans.Selected)
		return v, outcomeFor(v)
	case models.LevelTypeMatching:
		v := evaluateMatching(&content.Questions[questionIndex], ans.Matches)
		return v, outcomeFor(v)
	case models.LevelTypeSorting:
		v := evaluateSorting(&content.Questions[questionIndex], ans.Order)
		return v, outcomeFor(v)
	case models.LevelTypeCalculation:
		v := evaluateCalculation(content.Questions, ans.Values)
		return v, outcomeFor(v)
	case models.LevelTypeSimulation:
		v := evaluateSimulation(&content.Dialogue[questionIndex], ans.Selected)
		return v, outcomeFor(v)
	case models.LevelTypeQuest:
		return evaluateQuestStep(content.Steps, questionIndex, ans.Text)
	case models.LevelTypePuzzle:
		v := evaluateFreeText(content.AcceptedAnswers, ans.Text)
		return v, outcomeFor(v)
	default:
		return Verdict{
			IsCorrect:  false,
			Percentage: 0,
			Display:    fmt.Sprintf("Неизвестный тип уровня: %s", level.Type),
		}, OutcomeFail
	}
}

func outcomeFor(v Verdict) Outcome {
	if v.IsCorrect {
		return OutcomePass
	}
	return OutcomeFail
}

// EvaluateQuestion scores a quiz/test question according to its question type
func EvaluateQuestion(q *models.Question, ans Answer) Verdict {
	switch q.QuestionType() {
	case models.QuestionMultiple:
		return evaluateMultiple(q, ans.SelectedSet)
	case models.QuestionMatching:
		return evaluateMatching(q, ans.Matches)
	case models.QuestionSorting:
		return evaluateSorting(q, ans.Order)
	default:
		return evaluateSingle(q, ans.Selected)
	}
}

// evaluateSingle: correct iff the selected option is flagged correct
func evaluateSingle(q *models.Question, selected int) Verdict {
	if selected >= 0 && selected < len(q.Options) && q.Options[selected].IsCorrect {
		return Verdict{IsCorrect: true, Percentage: 100, Display: "Правильно!"}
	}
	return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильно"}
}

// evaluateMultiple: percentage = selected-correct / total-correct * 100.
// Over-selection is not penalized; the formula only rewards hitting
// correct options. Correct iff percentage reaches the pass threshold.
func evaluateMultiple(q *models.Question, selected []int) Verdict {
	totalCorrect := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			totalCorrect++
		}
	}
	if totalCorrect == 0 {
		return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильно"}
	}

	seen := make(map[int]bool)
	correctSelected := 0
	for _, idx := range selected {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		if idx >= 0 && idx < len(q.Options) && q.Options[idx].IsCorrect {
			correctSelected++
		}
	}

	percentage := correctSelected * 100 / totalCorrect
	if percentage > 100 {
		percentage = 100
	}
	if percentage >= PassThreshold {
		return Verdict{IsCorrect: true, Percentage: percentage, Display: "Правильно!"}
	}
	return Verdict{
		IsCorrect:  false,
		Percentage: percentage,
		Display:    fmt.Sprintf("Выбрано %d из %d верных вариантов", correctSelected, totalCorrect),
	}
}

// evaluateMatching: the set of submitted pairs must equal the set of
// defined correct pairs, order-independent. No partial credit.
func evaluateMatching(q *models.Question, matches [][2]int) Verdict {
	if len(matches) != len(q.CorrectMatches) {
		return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильное сопоставление"}
	}
	want := make(map[[2]int]bool, len(q.CorrectMatches))
	for _, pair := range q.CorrectMatches {
		want[pair] = true
	}
	for _, pair := range matches {
		if !want[pair] {
			return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильное сопоставление"}
		}
		delete(want, pair)
	}
	return Verdict{IsCorrect: true, Percentage: 100, Display: "Правильно!"}
}

// evaluateSorting: submitted order must exactly equal the correct order
func evaluateSorting(q *models.Question, order []int) Verdict {
	if len(order) != len(q.CorrectOrder) {
		return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильный порядок"}
	}
	for i, id := range order {
		if id != q.CorrectOrder[i] {
			return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильный порядок"}
		}
	}
	return Verdict{IsCorrect: true, Percentage: 100, Display: "Правильно!"}
}

// evaluateScenario: one selected option index against the correct_answer index
func evaluateScenario(q *models.Question, selected int) Verdict {
	if selected == int(q.CorrectAnswer) {
		return Verdict{IsCorrect: true, Percentage: 100, Display: "Правильно!"}
	}
	return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильно"}
}

// evaluateCalculation: every sub-question must be within its tolerance.
// Binary at the completion boundary; the display carries the per-question
// tally for the result page.
func evaluateCalculation(questions []models.Question, values []float64) Verdict {
	if len(values) != len(questions) {
		return Verdict{IsCorrect: false, Percentage: 0, Display: "Даны не все ответы"}
	}
	correct := 0
	for i, q := range questions {
		if math.Abs(values[i]-q.CorrectAnswer) <= q.Tolerance {
			correct++
		}
	}
	if correct == len(questions) {
		return Verdict{IsCorrect: true, Percentage: 100, Display: "Правильно!"}
	}
	return Verdict{
		IsCorrect:  false,
		Percentage: 0,
		Display:    fmt.Sprintf("Верно %d из %d расчетов", correct, len(questions)),
	}
}

// evaluateSimulation: correctness is read off the chosen response's result flag
func evaluateSimulation(node *models.DialogueNode, selected int) Verdict {
	if selected >= 0 && selected < len(node.Responses) && node.Responses[selected].Result == models.DialogueResultWin {
		return Verdict{IsCorrect: true, Percentage: 100, Display: "Правильно!"}
	}
	return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильно"}
}

// evaluateQuestStep: case-insensitive match against the step's accepted
// answers. A correct answer on a non-final step yields Continue, which the
// caller must not treat as level completion.
func evaluateQuestStep(steps []models.QuestStep, step int, text string) (Verdict, Outcome) {
	v := evaluateFreeText(steps[step].AcceptedAnswers, text)
	if !v.IsCorrect {
		return v, OutcomeFail
	}
	if step < len(steps)-1 {
		v.Display = "Верно! Следующий шаг"
		return v, OutcomeContinue
	}
	return v, OutcomePass
}

// evaluateFreeText: trimmed, case-insensitive match against accepted answers
func evaluateFreeText(accepted []string, text string) Verdict {
	answer := strings.ToLower(strings.TrimSpace(text))
	for _, a := range accepted {
		if answer == strings.ToLower(strings.TrimSpace(a)) {
			return Verdict{IsCorrect: true, Percentage: 100, Display: "Правильно!"}
		}
	}
	return Verdict{IsCorrect: false, Percentage: 0, Display: "Неправильно"}
}
