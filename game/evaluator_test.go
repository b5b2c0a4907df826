package game

import (
	"testing"

	"finquest/models"

	"github.com/stretchr/testify/assert"
)

func choiceQuestion(correct ...bool) models.Question {
	opts := make([]models.Option, len(correct))
	for i, c := range correct {
		opts[i] = models.Option{Text: "вариант", IsCorrect: c}
	}
	return models.Question{Options: opts}
}

func TestEvaluateSingleChoice(t *testing.T) {
	q := choiceQuestion(false, true, false)

	v := EvaluateQuestion(&q, Answer{Selected: 1})
	assert.True(t, v.IsCorrect)
	assert.Equal(t, 100, v.Percentage)

	v = EvaluateQuestion(&q, Answer{Selected: 0})
	assert.False(t, v.IsCorrect)
	assert.Equal(t, 0, v.Percentage)

	// out of range selection is just wrong, not an error
	v = EvaluateQuestion(&q, Answer{Selected: 7})
	assert.False(t, v.IsCorrect)
}

func TestEvaluateMultipleChoice(t *testing.T) {
	q := models.Question{
		Type:    models.QuestionMultiple,
		Options: []models.Option{{IsCorrect: true}, {IsCorrect: true}, {IsCorrect: true}, {IsCorrect: false}},
	}

	tests := []struct {
		name       string
		selected   []int
		percentage int
		correct    bool
	}{
		{"all correct", []int{0, 1, 2}, 100, true},
		{"two of three fails threshold", []int{0, 1}, 66, false},
		{"one of three", []int{2}, 33, false},
		{"over-selection not penalized", []int{0, 1, 2, 3}, 100, true},
		{"duplicates counted once", []int{0, 0, 1, 1}, 66, false},
		{"nothing selected", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EvaluateQuestion(&q, Answer{SelectedSet: tt.selected})
			assert.Equal(t, tt.percentage, v.Percentage)
			assert.Equal(t, tt.correct, v.IsCorrect)
		})
	}
}

func TestEvaluateMatching(t *testing.T) {
	q := models.Question{
		Type:           models.QuestionMatching,
		LeftItems:      []string{"Акция", "Облигация", "Депозит"},
		RightItems:     []string{"доля", "долг", "вклад"},
		CorrectMatches: [][2]int{{0, 0}, {1, 1}, {2, 2}},
	}

	// pair order does not matter
	v := EvaluateQuestion(&q, Answer{Matches: [][2]int{{2, 2}, {0, 0}, {1, 1}}})
	assert.True(t, v.IsCorrect)

	// one swapped pair fails the whole question
	v = EvaluateQuestion(&q, Answer{Matches: [][2]int{{0, 1}, {1, 0}, {2, 2}}})
	assert.False(t, v.IsCorrect)
	assert.Equal(t, 0, v.Percentage)

	// missing pair fails
	v = EvaluateQuestion(&q, Answer{Matches: [][2]int{{0, 0}, {1, 1}}})
	assert.False(t, v.IsCorrect)

	// duplicate submitted pair cannot substitute for a missing one
	v = EvaluateQuestion(&q, Answer{Matches: [][2]int{{0, 0}, {0, 0}, {2, 2}}})
	assert.False(t, v.IsCorrect)
}

func TestEvaluateSorting(t *testing.T) {
	q := models.Question{
		Type:         models.QuestionSorting,
		Items:        []models.SortItem{{ID: 1}, {ID: 2}, {ID: 3}},
		CorrectOrder: []int{1, 2, 3},
	}

	v := EvaluateQuestion(&q, Answer{Order: []int{1, 2, 3}})
	assert.True(t, v.IsCorrect)

	v = EvaluateQuestion(&q, Answer{Order: []int{1, 3, 2}})
	assert.False(t, v.IsCorrect)

	v = EvaluateQuestion(&q, Answer{Order: []int{1, 2}})
	assert.False(t, v.IsCorrect)
}

func TestEvaluateScenario(t *testing.T) {
	level := &models.Level{Type: models.LevelTypeScenario}
	content := &models.LevelContent{Questions: []models.Question{
		{Options: []models.Option{{}, {}, {}}, CorrectAnswer: 2},
	}}

	v, outcome := EvaluateLevel(level, content, 0, Answer{Selected: 2})
	assert.True(t, v.IsCorrect)
	assert.Equal(t, OutcomePass, outcome)

	v, outcome = EvaluateLevel(level, content, 0, Answer{Selected: 0})
	assert.False(t, v.IsCorrect)
	assert.Equal(t, OutcomeFail, outcome)
}

func TestEvaluateCalculation(t *testing.T) {
	level := &models.Level{Type: models.LevelTypeCalculation}
	content := &models.LevelContent{Questions: []models.Question{
		{CorrectAnswer: 4.0001, Tolerance: 0.01},
		{CorrectAnswer: 1200, Tolerance: 1},
	}}

	v, outcome := EvaluateLevel(level, content, 0, Answer{Values: []float64{4, 1200.5}})
	assert.True(t, v.IsCorrect)
	assert.Equal(t, OutcomePass, outcome)

	v, _ = EvaluateLevel(level, content, 0, Answer{Values: []float64{4, 1300}})
	assert.False(t, v.IsCorrect)
	assert.Equal(t, "Верно 1 из 2 расчетов", v.Display)

	// missing values are a failed verdict, not a crash
	v, _ = EvaluateLevel(level, content, 0, Answer{Values: []float64{4}})
	assert.False(t, v.IsCorrect)
}

func TestEvaluateCalculationZeroTolerance(t *testing.T) {
	level := &models.Level{Type: models.LevelTypeCalculation}
	content := &models.LevelContent{Questions: []models.Question{
		{CorrectAnswer: 4, Tolerance: 0},
	}}

	v, _ := EvaluateLevel(level, content, 0, Answer{Values: []float64{4}})
	assert.True(t, v.IsCorrect)

	v, _ = EvaluateLevel(level, content, 0, Answer{Values: []float64{4.0001}})
	assert.False(t, v.IsCorrect)
}

func TestEvaluateSimulation(t *testing.T) {
	level := &models.Level{Type: models.LevelTypeSimulation}
	content := &models.LevelContent{Dialogue: []models.DialogueNode{
		{Responses: []models.DialogueResponse{{Result: "lose"}, {Result: models.DialogueResultWin}}},
	}}

	v, _ := EvaluateLevel(level, content, 0, Answer{Selected: 1})
	assert.True(t, v.IsCorrect)

	v, _ = EvaluateLevel(level, content, 0, Answer{Selected: 0})
	assert.False(t, v.IsCorrect)
}

func TestEvaluateQuestSteps(t *testing.T) {
	level := &models.Level{Type: models.LevelTypeQuest}
	content := &models.LevelContent{Steps: []models.QuestStep{
		{AcceptedAnswers: []string{"бюджет"}},
		{AcceptedAnswers: []string{"инфляция", "inflation"}},
	}}

	// non-final correct step continues, never passes
	v, outcome := EvaluateLevel(level, content, 0, Answer{Text: "Бюджет "})
	assert.True(t, v.IsCorrect)
	assert.Equal(t, OutcomeContinue, outcome)

	v, outcome = EvaluateLevel(level, content, 1, Answer{Text: "ИНФЛЯЦИЯ"})
	assert.True(t, v.IsCorrect)
	assert.Equal(t, OutcomePass, outcome)

	v, outcome = EvaluateLevel(level, content, 1, Answer{Text: "дефляция"})
	assert.False(t, v.IsCorrect)
	assert.Equal(t, OutcomeFail, outcome)
}

func TestEvaluatePuzzle(t *testing.T) {
	level := &models.Level{Type: models.LevelTypePuzzle}
	content := &models.LevelContent{AcceptedAnswers: []string{"Сложный процент"}}

	v, outcome := EvaluateLevel(level, content, 0, Answer{Text: "  сложный процент  "})
	assert.True(t, v.IsCorrect)
	assert.Equal(t, OutcomePass, outcome)

	v, _ = EvaluateLevel(level, content, 0, Answer{Text: "простой процент"})
	assert.False(t, v.IsCorrect)
}

func TestEvaluateUnknownLevelType(t *testing.T) {
	level := &models.Level{Type: "karaoke"}

	v, outcome := EvaluateLevel(level, &models.LevelContent{}, 0, Answer{})
	assert.False(t, v.IsCorrect)
	assert.Equal(t, OutcomeFail, outcome)
	assert.Contains(t, v.Display, "karaoke")
}
