package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/xavierca1/call-screener/internal/entity"
)

const (
	maxNameLen      = 200
	maxTopicLen     = 500
	maxNotesLen     = 4000
	maxDocuments    = 10
	maxDocumentSize = 25 << 20
)

var nonDigit = regexp.MustCompile(`\D`)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateSubmitScreeningInput(input SubmitScreeningInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > maxNameLen {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Phone) != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	errors = append(errors, validateScreeningFields(input.Topic, input.Notes, input.Documents)...)
	return errors
}

func ValidateUpdateScreeningInput(input UpdateScreeningInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CallerID) == "" {
		errors = append(errors, ValidationError{"caller_id", "is required"})
	}
	errors = append(errors, validateScreeningFields(input.Topic, input.Notes, input.Documents)...)
	return errors
}

func validateScreeningFields(topic, notes string, docs []DocumentInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(topic) == "" {
		errors = append(errors, ValidationError{"topic", "is required"})
	} else if len(topic) > maxTopicLen {
		errors = append(errors, ValidationError{"topic", "must not exceed 500 characters"})
	}

	if len(notes) > maxNotesLen {
		errors = append(errors, ValidationError{"notes", "must not exceed 4000 characters"})
	}

	if len(docs) > maxDocuments {
		errors = append(errors, ValidationError{"documents", "at most 10 documents per call"})
	}
	for i, d := range docs {
		field := fmt.Sprintf("documents[%d]", i)
		if strings.TrimSpace(d.Name) == "" {
			errors = append(errors, ValidationError{field + ".name", "is required"})
		}
		if d.Size < 0 || d.Size > maxDocumentSize {
			errors = append(errors, ValidationError{field + ".size", "must be between 0 and 25MB"})
		}
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigit.ReplaceAllString(phone, "")
	return len(cleaned) >= 7 && len(cleaned) <= 15
}

func validationFailed(errs []ValidationError) *DomainError {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(msgs, ", "),
	}
}

func toDocuments(in []DocumentInput) []entity.Document {
	docs := make([]entity.Document, 0, len(in))
	for _, d := range in {
		doc := entity.NewDocument(d.Name, d.Size, d.Type)
		if d.ID != "" {
			doc.ID = d.ID
		}
		docs = append(docs, doc)
	}
	return docs
}
