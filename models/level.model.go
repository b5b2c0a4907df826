package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Level types
const (
	LevelTypeQuiz        = "quiz"
	LevelTypeTest        = "test"
	LevelTypeScenario    = "scenario"
	LevelTypeCalculation = "calculation"
	LevelTypeMatching    = "matching"
	LevelTypeSorting     = "sorting"
	LevelTypeSimulation  = "simulation"
	LevelTypeQuest       = "quest"
	LevelTypePuzzle      = "puzzle"
	LevelTypeStory       = "story"
)

// Question types inside quiz/test content
const (
	QuestionSingle   = "single"
	QuestionMultiple = "multiple"
	QuestionMatching = "matching"
	QuestionSorting  = "sorting"
)

// DialogueResultWin marks a simulation response as the winning one
const DialogueResultWin = "win"

// Level is a single learning activity within a topic
type Level struct {
	gorm.Model
	TopicID      uint           `json:"topic_id" gorm:"index;not null"`
	Topic        Topic          `json:"-"`
	Type         string         `json:"type" gorm:"default:'quiz'"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Difficulty   int            `json:"difficulty" gorm:"default:1"` // 1 easy, 2 medium, 3 hard
	OrderInTopic int            `json:"order_in_topic" gorm:"not null"`
	RewardPoints int            `json:"reward_points" gorm:"default:10"`
	RewardCoins  int            `json:"reward_coins" gorm:"default:5"`
	Content      datatypes.JSON `json:"content"`
}

// Option is one selectable answer of a single/multiple choice question
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Hint      string `json:"hint,omitempty"`
}

// SortItem is one element of a sorting question
type SortItem struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Question is one question of a level's content payload. Which fields are
// meaningful depends on Type.
type Question struct {
	Type           string     `json:"type,omitempty"`
	Text           string     `json:"text"`
	Options        []Option   `json:"options,omitempty"`
	LeftItems      []string   `json:"left_items,omitempty"`
	RightItems     []string   `json:"right_items,omitempty"`
	CorrectMatches [][2]int   `json:"correct_matches,omitempty"`
	Items          []SortItem `json:"items,omitempty"`
	CorrectOrder   []int      `json:"correct_order,omitempty"`
	CorrectAnswer  float64    `json:"correct_answer,omitempty"` // scenario: option index, calculation: value
	Tolerance      float64    `json:"tolerance,omitempty"`
}

// DialogueResponse is one selectable reply in a simulation dialogue
type DialogueResponse struct {
	Text   string `json:"text"`
	Result string `json:"result"` // "win" marks the correct reply
}

// DialogueNode is one step of a simulation dialogue
type DialogueNode struct {
	Text      string             `json:"text"`
	Responses []DialogueResponse `json:"responses"`
}

// QuestStep is one step of a multi-step quest
type QuestStep struct {
	Prompt          string   `json:"question"`
	AcceptedAnswers []string `json:"accepted_answers"`
}

// LevelContent is the parsed form of Level.Content. The populated fields
// depend on the level type.
type LevelContent struct {
	Questions       []Question     `json:"questions,omitempty"`
	Dialogue        []DialogueNode `json:"dialogue,omitempty"`
	Steps           []QuestStep    `json:"steps,omitempty"`
	AcceptedAnswers []string       `json:"accepted_answers,omitempty"`
}

// ParseContent decodes and validates the level content against the schema
// its type requires. A missing expected field is a data error, not a user
// error.
func (l *Level) ParseContent() (*LevelContent, error) {
	var content LevelContent
	if len(l.Content) > 0 {
		if err := json.Unmarshal(l.Content, &content); err != nil {
			return nil, fmt.Errorf("level %d: malformed content: %w", l.ID, err)
		}
	}

	switch l.Type {
	case LevelTypeQuiz, LevelTypeTest:
		if len(content.Questions) == 0 {
			return nil, fmt.Errorf("level %d: %s content has no questions", l.ID, l.Type)
		}
		for i := range content.Questions {
			if err := content.Questions[i].validate(); err != nil {
				return nil, fmt.Errorf("level %d, question %d: %w", l.ID, i, err)
			}
		}
	case LevelTypeScenario, LevelTypeStory:
		if len(content.Questions) == 0 {
			return nil, fmt.Errorf("level %d: %s content has no questions", l.ID, l.Type)
		}
		for i, q := range content.Questions {
			if len(q.Options) == 0 {
				return nil, fmt.Errorf("level %d, question %d: scenario question has no options", l.ID, i)
			}
			if idx := int(q.CorrectAnswer); idx < 0 || idx >= len(q.Options) {
				return nil, fmt.Errorf("level %d, question %d: correct_answer out of range", l.ID, i)
			}
		}
	case LevelTypeCalculation:
		if len(content.Questions) == 0 {
			return nil, fmt.Errorf("level %d: calculation content has no questions", l.ID)
		}
		for i, q := range content.Questions {
			if q.Tolerance < 0 {
				return nil, fmt.Errorf("level %d, question %d: negative tolerance", l.ID, i)
			}
		}
	case LevelTypeMatching:
		if len(content.Questions) == 0 {
			return nil, fmt.Errorf("level %d: matching content has no questions", l.ID)
		}
		for i := range content.Questions {
			q := content.Questions[i]
			q.Type = QuestionMatching
			if err := q.validate(); err != nil {
				return nil, fmt.Errorf("level %d, question %d: %w", l.ID, i, err)
			}
		}
	case LevelTypeSorting:
		if len(content.Questions) == 0 {
			return nil, fmt.Errorf("level %d: sorting content has no questions", l.ID)
		}
		for i := range content.Questions {
			q := content.Questions[i]
			q.Type = QuestionSorting
			if err := q.validate(); err != nil {
				return nil, fmt.Errorf("level %d, question %d: %w", l.ID, i, err)
			}
		}
	case LevelTypeSimulation:
		if len(content.Dialogue) == 0 {
			return nil, fmt.Errorf("level %d: simulation content has no dialogue", l.ID)
		}
		for i, node := range content.Dialogue {
			if len(node.Responses) == 0 {
				return nil, fmt.Errorf("level %d: dialogue node %d has no responses", l.ID, i)
			}
		}
	case LevelTypeQuest:
		if len(content.Steps) == 0 {
			return nil, fmt.Errorf("level %d: quest content has no steps", l.ID)
		}
		for i, step := range content.Steps {
			if len(step.AcceptedAnswers) == 0 {
				return nil, fmt.Errorf("level %d: quest step %d has no accepted answers", l.ID, i)
			}
		}
	case LevelTypePuzzle:
		if len(content.AcceptedAnswers) == 0 {
			return nil, fmt.Errorf("level %d: puzzle content has no accepted answers", l.ID)
		}
	}

	return &content, nil
}

// validate checks a quiz-style question against its question type schema
func (q *Question) validate() error {
	switch q.Type {
	case QuestionMatching:
		if len(q.LeftItems) == 0 || len(q.RightItems) == 0 {
			return fmt.Errorf("matching question missing left_items or right_items")
		}
		if len(q.CorrectMatches) == 0 {
			return fmt.Errorf("matching question missing correct_matches")
		}
		for _, pair := range q.CorrectMatches {
			if pair[0] < 0 || pair[0] >= len(q.LeftItems) || pair[1] < 0 || pair[1] >= len(q.RightItems) {
				return fmt.Errorf("correct_matches index out of range")
			}
		}
	case QuestionSorting:
		if len(q.Items) == 0 {
			return fmt.Errorf("sorting question missing items")
		}
		if len(q.CorrectOrder) != len(q.Items) {
			return fmt.Errorf("correct_order does not cover all items")
		}
	case QuestionMultiple, QuestionSingle, "":
		if len(q.Options) == 0 {
			return fmt.Errorf("choice question has no options")
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return fmt.Errorf("choice question has no correct option")
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}

// QuestionType returns the effective question type, defaulting to single
func (q *Question) QuestionType() string {
	if q.Type == "" {
		return QuestionSingle
	}
	return q.Type
}

// PlayView returns the content with correctness markers stripped, safe to
// hand to the client for rendering the level.
func (c *LevelContent) PlayView() map[string]interface{} {
	view := map[string]interface{}{}

	if len(c.Questions) > 0 {
		questions := make([]map[string]interface{}, len(c.Questions))
		for i, q := range c.Questions {
			qv := map[string]interface{}{
				"type": q.QuestionType(),
				"text": q.Text,
			}
			if len(q.Options) > 0 {
				texts := make([]string, len(q.Options))
				for j, opt := range q.Options {
					texts[j] = opt.Text
				}
				qv["options"] = texts
			}
			if len(q.LeftItems) > 0 {
				qv["left_items"] = q.LeftItems
				qv["right_items"] = q.RightItems
			}
			if len(q.Items) > 0 {
				qv["items"] = q.Items
			}
			questions[i] = qv
		}
		view["questions"] = questions
	}

	if len(c.Dialogue) > 0 {
		dialogue := make([]map[string]interface{}, len(c.Dialogue))
		for i, node := range c.Dialogue {
			responses := make([]string, len(node.Responses))
			for j, r := range node.Responses {
				responses[j] = r.Text
			}
			dialogue[i] = map[string]interface{}{"text": node.Text, "responses": responses}
		}
		view["dialogue"] = dialogue
	}

	if len(c.Steps) > 0 {
		steps := make([]map[string]interface{}, len(c.Steps))
		for i, step := range c.Steps {
			steps[i] = map[string]interface{}{"question": step.Prompt}
		}
		view["steps"] = steps
	}

	return view
}
