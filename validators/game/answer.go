package gameValidator

import (
	"sort"
	"strconv"
	"strings"

	"finquest/database"
	"finquest/game"
	"finquest/middleware"
	"finquest/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitAnswer validates the type-specific answer payload for a level
// submission. Malformed or out-of-range values are rejected here with field
// errors, before any progress state mutates; the evaluator only ever sees
// coerced, in-range data.
func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		levelID, err := c.ParamsInt("id")
		if err != nil || levelID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid level id!", nil)
		}

		var level models.Level
		if err := database.Database.Db.First(&level, levelID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Level not found!", nil)
		}

		content, err := level.ParseContent()
		if err != nil {
			// Broken content is a data error, not a user error
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Level content is invalid!", nil)
		}

		raw := map[string]interface{}{}
		if err := c.BodyParser(&raw); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		ans := game.Answer{}

		questionIndex := 0
		if v, ok := raw["question_index"]; ok {
			idx, ok := asInt(v)
			if !ok {
				errors["question_index"] = "Недопустимый индекс вопроса!"
			} else {
				questionIndex = idx
			}
		}
		if total := totalSteps(&level, content); questionIndex < 0 || questionIndex >= total {
			errors["question_index"] = "Индекс вопроса вне диапазона!"
		}

		if len(errors) == 0 {
			switch level.Type {
			case models.LevelTypeQuiz, models.LevelTypeTest:
				validateQuestionAnswer(&content.Questions[questionIndex], raw, &ans, errors)
			case models.LevelTypeScenario:
				validateChoice(raw, "scenario_answer", len(content.Questions[questionIndex].Options), &ans, errors)
			case models.LevelTypeStory:
				validateChoice(raw, "story_choice", len(content.Questions[questionIndex].Options), &ans, errors)
			case models.LevelTypeMatching:
				validateMatching(&content.Questions[questionIndex], raw, &ans, errors)
			case models.LevelTypeSorting:
				validateSorting(&content.Questions[questionIndex], raw, &ans, errors)
			case models.LevelTypeCalculation:
				validateCalculation(content.Questions, raw, &ans, errors)
			case models.LevelTypeSimulation:
				validateChoice(raw, "simulation_response", len(content.Dialogue[questionIndex].Responses), &ans, errors)
			case models.LevelTypeQuest:
				validateFreeText(raw, "quest_answer", &ans, errors)
			case models.LevelTypePuzzle:
				validateFreeText(raw, "puzzle_answer", &ans, errors)
			default:
				// Unknown level type is handled non-fatally by the evaluator
			}
		}

		completionTime := 0
		if v, ok := raw["completion_time"]; ok {
			t, ok := asInt(v)
			if !ok {
				t = 0 // non-numeric time falls back to "not measured"
			}
			if t < 0 || t > 3600 {
				errors["completion_time"] = "Недопустимое время прохождения!"
			} else {
				completionTime = t
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("level", &level)
		c.Locals("levelContent", content)
		c.Locals("answer", ans)
		c.Locals("questionIndex", questionIndex)
		c.Locals("completionTime", completionTime)
		return c.Next()
	}
}

// totalSteps is the number of addressable submission steps for a level
func totalSteps(level *models.Level, content *models.LevelContent) int {
	switch level.Type {
	case models.LevelTypeSimulation:
		return len(content.Dialogue)
	case models.LevelTypeQuest:
		return len(content.Steps)
	case models.LevelTypePuzzle:
		return 1
	default:
		if len(content.Questions) == 0 {
			return 1
		}
		return len(content.Questions)
	}
}

func validateQuestionAnswer(q *models.Question, raw map[string]interface{}, ans *game.Answer, errors map[string]string) {
	switch q.QuestionType() {
	case models.QuestionMultiple:
		validateMultiple(q, raw, ans, errors)
	case models.QuestionMatching:
		validateMatching(q, raw, ans, errors)
	case models.QuestionSorting:
		validateSorting(q, raw, ans, errors)
	default:
		validateChoice(raw, "answer", len(q.Options), ans, errors)
	}
}

func validateChoice(raw map[string]interface{}, field string, optionCount int, ans *game.Answer, errors map[string]string) {
	v, ok := raw[field]
	if !ok {
		errors[field] = "Не указан ответ!"
		return
	}
	idx, ok := asInt(v)
	if !ok {
		errors[field] = "Недопустимый индекс ответа!"
		return
	}
	if idx < 0 || idx >= optionCount {
		errors[field] = "Индекс ответа вне диапазона!"
		return
	}
	ans.Selected = idx
}

func validateMultiple(q *models.Question, raw map[string]interface{}, ans *game.Answer, errors map[string]string) {
	v, ok := raw["answers"]
	if !ok {
		errors["answers"] = "Не указаны ответы!"
		return
	}
	list, ok := v.([]interface{})
	if !ok || len(list) == 0 {
		errors["answers"] = "Выберите хотя бы один вариант!"
		return
	}
	selected := make([]int, 0, len(list))
	for _, item := range list {
		idx, ok := asInt(item)
		if !ok || idx < 0 || idx >= len(q.Options) {
			errors["answers"] = "Недопустимые индексы ответов!"
			return
		}
		selected = append(selected, idx)
	}
	ans.SelectedSet = selected
}

func validateMatching(q *models.Question, raw map[string]interface{}, ans *game.Answer, errors map[string]string) {
	matches := make([][2]int, 0, len(q.RightItems))
	for key, value := range raw {
		if !strings.HasPrefix(key, "match_") {
			continue
		}
		rightIdx, err := strconv.Atoi(strings.TrimPrefix(key, "match_"))
		if err != nil || rightIdx < 0 || rightIdx >= len(q.RightItems) {
			errors[key] = "Недопустимый правый индекс!"
			return
		}
		leftIdx, ok := asInt(value)
		if !ok || leftIdx < 0 || leftIdx >= len(q.LeftItems) {
			errors[key] = "Недопустимый левый индекс!"
			return
		}
		matches = append(matches, [2]int{leftIdx, rightIdx})
	}
	if len(matches) == 0 {
		errors["matches"] = "Не указаны сопоставления!"
		return
	}
	ans.Matches = matches
}

func validateSorting(q *models.Question, raw map[string]interface{}, ans *game.Answer, errors map[string]string) {
	known := make(map[int]bool, len(q.Items))
	for _, item := range q.Items {
		known[item.ID] = true
	}

	// Collect sort_<position> keys in position order
	keys := make([]string, 0, len(q.Items))
	for key := range raw {
		if strings.HasPrefix(key, "sort_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	order := make([]int, 0, len(keys))
	for _, key := range keys {
		id, ok := asInt(raw[key])
		if !ok || !known[id] {
			errors[key] = "Недопустимый ID элемента!"
			return
		}
		order = append(order, id)
	}
	if len(order) == 0 {
		errors["order"] = "Не указан порядок!"
		return
	}
	ans.Order = order
}

func validateCalculation(questions []models.Question, raw map[string]interface{}, ans *game.Answer, errors map[string]string) {
	values := make([]float64, len(questions))
	for i := range questions {
		field := "calculation_answer_" + strconv.Itoa(i)
		v, ok := raw[field]
		if !ok && len(questions) == 1 {
			field = "calculation_answer"
			v, ok = raw[field]
		}
		if !ok {
			errors[field] = "Не указан ответ!"
			return
		}
		value, isNum := asFloat(v)
		if !isNum {
			errors[field] = "Ответ должен быть числом!"
			return
		}
		values[i] = value
	}
	ans.Values = values
}

func validateFreeText(raw map[string]interface{}, field string, ans *game.Answer, errors map[string]string) {
	v, ok := raw[field]
	if !ok {
		errors[field] = "Не указан ответ!"
		return
	}
	text, ok := v.(string)
	if !ok || strings.TrimSpace(text) == "" {
		errors[field] = "Ответ не может быть пустым!"
		return
	}
	ans.Text = text
}

// asInt coerces a JSON value (number or numeric string) to int
func asInt(v interface{}) (int, bool) {
	switch value := v.(type) {
	case float64:
		if value != float64(int(value)) {
			return 0, false
		}
		return int(value), true
	case int:
		return value, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// asFloat coerces a JSON value (number or numeric string) to float64
func asFloat(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
