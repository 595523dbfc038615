package validator

import (
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/learning-content-service/internal/models"
)

const (
	maxMatchItems = 10
	maxOptions    = 10
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateContent validates question content based on question type
func (v *QuestionValidator) ValidateContent(questionType models.QuestionType, content interface{}) error {
	if content == nil {
		return fmt.Errorf("content cannot be nil")
	}

	contentBytes, ok := content.([]byte)
	if !ok {
		var err error
		contentBytes, err = json.Marshal(content)
		if err != nil {
			return fmt.Errorf("failed to marshal content: %w", err)
		}
	}

	switch questionType {
	case models.MultipleChoice:
		return v.validateMultipleChoiceContent(contentBytes)
	case models.FillInBlank:
		return v.validateFillBlankContent(contentBytes)
	case models.ShortAnswer:
		return v.validateShortAnswerContent(contentBytes)
	case models.LongAnswer:
		return v.validateLongAnswerContent(contentBytes)
	case models.Matching:
		return v.validateMatchingContent(contentBytes)
	default:
		return fmt.Errorf("unsupported question type: %s", questionType)
	}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.Text == "" {
		return fmt.Errorf("question text is required")
	}

	if question.Points < 1 || question.Points > 100 {
		return fmt.Errorf("question points must be between 1 and 100")
	}

	return v.ValidateContent(question.Type, []byte(question.Content))
}

func (v *QuestionValidator) validateMultipleChoiceContent(contentBytes []byte) error {
	var content models.MultipleChoiceContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid multiple choice content: %w", err)
	}

	if len(content.Options) < 2 {
		return fmt.Errorf("must have at least 2 options")
	}
	if len(content.Options) > maxOptions {
		return fmt.Errorf("cannot have more than %d options", maxOptions)
	}
	if len(content.CorrectAnswers) == 0 {
		return fmt.Errorf("must have at least 1 correct answer")
	}

	optionIDs := make(map[string]bool)
	for _, option := range content.Options {
		if option.ID == "" || option.Text == "" {
			return fmt.Errorf("options must have both ID and text")
		}
		optionIDs[option.ID] = true
	}

	for _, correctID := range content.CorrectAnswers {
		if !optionIDs[correctID] {
			return fmt.Errorf("correct answer ID '%s' does not match any option", correctID)
		}
	}

	if len(content.CorrectAnswers) > 1 && !content.MultipleCorrect {
		return fmt.Errorf("multiple correct answers require MultipleCorrect to be true")
	}

	return nil
}

func (v *QuestionValidator) validateFillBlankContent(contentBytes []byte) error {
	var content models.FillBlankContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid fill-in-blank content: %w", err)
	}

	if content.Template == "" {
		return fmt.Errorf("template is required")
	}
	if len(content.Blanks) == 0 {
		return fmt.Errorf("must have at least 1 blank")
	}

	for blankID, blankDef := range content.Blanks {
		if len(blankDef.AcceptedAnswers) == 0 {
			return fmt.Errorf("blank '%s' must have at least 1 accepted answer", blankID)
		}
		if blankDef.Points < 0 {
			return fmt.Errorf("blank '%s' points cannot be negative", blankID)
		}
	}

	return nil
}

func (v *QuestionValidator) validateShortAnswerContent(contentBytes []byte) error {
	var content models.ShortAnswerContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid short answer content: %w", err)
	}

	if len(content.AcceptedAnswers) == 0 {
		return fmt.Errorf("must have at least 1 accepted answer")
	}
	if content.MaxLength < 1 || content.MaxLength > 500 {
		return fmt.Errorf("max length must be between 1 and 500 characters")
	}

	for i, answer := range content.AcceptedAnswers {
		if answer == "" {
			return fmt.Errorf("accepted answer %d cannot be empty", i+1)
		}
		if len(answer) > content.MaxLength {
			return fmt.Errorf("accepted answer %d exceeds max length of %d", i+1, content.MaxLength)
		}
	}

	return nil
}

func (v *QuestionValidator) validateLongAnswerContent(contentBytes []byte) error {
	var content models.LongAnswerContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid long answer content: %w", err)
	}

	if content.MinWords != nil && *content.MinWords < 0 {
		return fmt.Errorf("minimum word count cannot be negative")
	}
	if content.MaxWords != nil && *content.MaxWords < 0 {
		return fmt.Errorf("maximum word count cannot be negative")
	}
	if content.MinWords != nil && content.MaxWords != nil && *content.MinWords > *content.MaxWords {
		return fmt.Errorf("minimum word count cannot be greater than maximum")
	}

	return nil
}

func (v *QuestionValidator) validateMatchingContent(contentBytes []byte) error {
	var content models.MatchingContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid matching content: %w", err)
	}

	if len(content.LeftItems) < 2 {
		return fmt.Errorf("must have at least 2 left items")
	}
	if len(content.RightItems) < 2 {
		return fmt.Errorf("must have at least 2 right items")
	}
	if len(content.LeftItems) > maxMatchItems || len(content.RightItems) > maxMatchItems {
		return fmt.Errorf("cannot have more than %d items on each side", maxMatchItems)
	}
	if len(content.CorrectPairs) == 0 {
		return fmt.Errorf("must have at least 1 correct pair")
	}

	for _, item := range content.LeftItems {
		if item.ID == "" || item.Text == "" {
			return fmt.Errorf("left items must have both ID and text")
		}
	}
	for _, item := range content.RightItems {
		if item.ID == "" || item.Text == "" {
			return fmt.Errorf("right items must have both ID and text")
		}
	}

	lefts := make(map[string]bool, len(content.CorrectPairs))
	rights := make(map[string]bool, len(content.CorrectPairs))
	for _, pair := range content.CorrectPairs {
		if lefts[pair.LeftID] {
			return fmt.Errorf("left item %s has more than one correct pair", pair.LeftID)
		}
		lefts[pair.LeftID] = true
		if content.EnforceOneToOne && rights[pair.RightID] {
			return fmt.Errorf("right item %s is paired more than once in a one-to-one question", pair.RightID)
		}
		rights[pair.RightID] = true
	}

	// Remaining checks (unique ids across columns, pairs referencing real
	// items) are shared with the controller.
	return content.ToMatchingQuestion().Validate()
}
