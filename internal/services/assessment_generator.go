package services

import (
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"gorm.io/datatypes"
)

// defaultQuestionTypes is the generated set when a request names none.
var defaultQuestionTypes = []models.QuestionType{
	models.MultipleChoice,
	models.FillInBlank,
	models.ShortAnswer,
	models.Matching,
	models.LongAnswer,
}

// mockQuestions builds a fixed question set for material, one question per
// requested type. Text references the material title so generated
// assessments stay distinguishable.
func mockQuestions(material *models.Material, types []models.QuestionType, creatorID string) ([]*models.Question, error) {
	if len(types) == 0 {
		types = defaultQuestionTypes
	}

	seen := make(map[models.QuestionType]bool, len(types))
	questions := make([]*models.Question, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true

		text, content, difficulty := mockContent(material.Title, t)
		if content == nil {
			return nil, fmt.Errorf("%w: %s", ErrQuestionInvalidType, t)
		}
		raw, err := json.Marshal(content)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s content: %w", t, err)
		}

		materialID := material.ID
		questions = append(questions, &models.Question{
			Type:       t,
			Text:       text,
			Points:     pointsFor(t),
			Difficulty: difficulty,
			Content:    datatypes.JSON(raw),
			MaterialID: &materialID,
			CreatedBy:  creatorID,
		})
	}
	return questions, nil
}

func pointsFor(t models.QuestionType) int {
	switch t {
	case models.Matching:
		return 3
	case models.LongAnswer:
		return 5
	default:
		return 1
	}
}

func mockContent(title string, t models.QuestionType) (string, any, models.DifficultyLevel) {
	switch t {
	case models.MultipleChoice:
		return fmt.Sprintf("Which statement best summarizes %q?", title),
			models.MultipleChoiceContent{
				Options: []models.Option{
					{ID: "a", Text: "It introduces the core concepts of the topic"},
					{ID: "b", Text: "It is unrelated to the course"},
					{ID: "c", Text: "It only lists references"},
				},
				CorrectAnswers: []string{"a"},
			}, models.DifficultyEasy
	case models.FillInBlank:
		return "Complete the sentence",
			models.FillBlankContent{
				Template: "SQL is a language for querying {{b1}}.",
				Blanks: map[string]models.BlankDefinition{
					"b1": {AcceptedAnswers: []string{"databases", "relational databases"}, Points: 1},
				},
			}, models.DifficultyEasy
	case models.ShortAnswer:
		return fmt.Sprintf("Name one key term introduced in %q.", title),
			models.ShortAnswerContent{
				AcceptedAnswers: []string{"python", "sql", "html"},
				MaxLength:       100,
			}, models.DifficultyMedium
	case models.Matching:
		return "Match each language to what it is mainly used for",
			models.MatchingContent{
				LeftItems: []models.MatchItem{
					{ID: "python", Text: "Python"},
					{ID: "sql", Text: "SQL"},
					{ID: "html", Text: "HTML"},
				},
				RightItems: []models.MatchItem{
					{ID: "general", Text: "General-purpose programming"},
					{ID: "databases", Text: "Querying databases"},
					{ID: "markup", Text: "Structuring web pages"},
				},
				CorrectPairs: []models.MatchPair{
					{LeftID: "python", RightID: "general"},
					{LeftID: "sql", RightID: "databases"},
					{LeftID: "html", RightID: "markup"},
				},
				EnforceOneToOne: true,
			}, models.DifficultyMedium
	case models.LongAnswer:
		minWords, maxWords := 50, 400
		return fmt.Sprintf("Explain the main ideas of %q in your own words.", title),
			models.LongAnswerContent{
				MinWords: &minWords,
				MaxWords: &maxWords,
				Rubric:   "Covers the main ideas, uses correct terminology, gives an example.",
			}, models.DifficultyHard
	}
	return "", nil, ""
}
