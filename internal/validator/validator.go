package validator

import (
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/SAP-F-2025/learning-content-service/internal/errors"
	"github.com/SAP-F-2025/learning-content-service/internal/models"
	"github.com/go-playground/validator/v10"
)

type ValidationErrors = apperrors.ValidationErrors

// Validator is the main validator instance that combines struct tags and
// question content validation
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

var tagNamePattern = regexp.MustCompile(`^[\p{L}\p{N} -]{1,50}$`)

// SupportedContentTypes lists the material types accepted for upload.
var SupportedContentTypes = []string{
	"application/pdf",
	"text/markdown",
	"text/x-markdown",
	"text/plain",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("tag_name", validateTagName)
	validate.RegisterValidation("content_type", validateContentType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	switch models.QuestionType(fl.Field().String()) {
	case models.MultipleChoice, models.FillInBlank, models.ShortAnswer, models.LongAnswer, models.Matching:
		return true
	}
	return false
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	switch models.DifficultyLevel(fl.Field().String()) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}

func validateTagName(fl validator.FieldLevel) bool {
	return tagNamePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateContentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	value = strings.TrimSpace(strings.ToLower(value))
	for _, ct := range SupportedContentTypes {
		if ct == value {
			return true
		}
	}
	return false
}
