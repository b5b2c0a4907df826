package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseContentQuiz(t *testing.T) {
	level := Level{
		Type: LevelTypeQuiz,
		Content: datatypes.JSON(`{"questions":[
			{"text":"Что такое бюджет?","options":[{"text":"план доходов и расходов","is_correct":true},{"text":"кредит"}]}
		]}`),
	}

	content, err := level.ParseContent()
	require.NoError(t, err)
	require.Len(t, content.Questions, 1)
	assert.Equal(t, QuestionSingle, content.Questions[0].QuestionType())
}

func TestParseContentRejectsBrokenPayloads(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		wantErr string
	}{
		{
			"malformed json",
			Level{Type: LevelTypeQuiz, Content: datatypes.JSON(`{`)},
			"malformed content",
		},
		{
			"quiz without questions",
			Level{Type: LevelTypeQuiz, Content: datatypes.JSON(`{}`)},
			"no questions",
		},
		{
			"choice question without correct option",
			Level{Type: LevelTypeQuiz, Content: datatypes.JSON(`{"questions":[{"text":"?","options":[{"text":"a"}]}]}`)},
			"no correct option",
		},
		{
			"scenario correct_answer out of range",
			Level{Type: LevelTypeScenario, Content: datatypes.JSON(`{"questions":[{"text":"?","options":[{"text":"a"}],"correct_answer":5}]}`)},
			"out of range",
		},
		{
			"matching pair index out of range",
			Level{Type: LevelTypeMatching, Content: datatypes.JSON(`{"questions":[{"left_items":["a"],"right_items":["b"],"correct_matches":[[0,3]]}]}`)},
			"out of range",
		},
		{
			"sorting order does not cover items",
			Level{Type: LevelTypeSorting, Content: datatypes.JSON(`{"questions":[{"items":[{"id":1},{"id":2}],"correct_order":[1]}]}`)},
			"correct_order",
		},
		{
			"simulation without dialogue",
			Level{Type: LevelTypeSimulation, Content: datatypes.JSON(`{}`)},
			"no dialogue",
		},
		{
			"quest step without accepted answers",
			Level{Type: LevelTypeQuest, Content: datatypes.JSON(`{"steps":[{"question":"?"}]}`)},
			"no accepted answers",
		},
		{
			"puzzle without accepted answers",
			Level{Type: LevelTypePuzzle, Content: datatypes.JSON(`{}`)},
			"no accepted answers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.level.ParseContent()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPlayViewStripsCorrectnessMarkers(t *testing.T) {
	content := LevelContent{
		Questions: []Question{
			{
				Text:    "Выбери верное",
				Options: []Option{{Text: "да", IsCorrect: true}, {Text: "нет"}},
			},
		},
		Dialogue: []DialogueNode{
			{Text: "Клиент звонит", Responses: []DialogueResponse{{Text: "повесить трубку", Result: "win"}, {Text: "назвать код", Result: "lose"}}},
		},
		Steps: []QuestStep{{Prompt: "Первый шаг?", AcceptedAnswers: []string{"секрет"}}},
	}

	view := content.PlayView()

	questions := view["questions"].([]map[string]interface{})
	require.Len(t, questions, 1)
	assert.Equal(t, []string{"да", "нет"}, questions[0]["options"])
	_, hasCorrect := questions[0]["is_correct"]
	assert.False(t, hasCorrect)

	dialogue := view["dialogue"].([]map[string]interface{})
	assert.Equal(t, []string{"повесить трубку", "назвать код"}, dialogue[0]["responses"])

	steps := view["steps"].([]map[string]interface{})
	assert.Equal(t, "Первый шаг?", steps[0]["question"])
	_, hasAnswers := steps[0]["accepted_answers"]
	assert.False(t, hasAnswers)
}
