package card

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("cloze", func(fl validator.FieldLevel) bool {
		return HasCloze(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register cloze validation: %v", err))
	}
}

// Validate checks a payload before a new card is created from it.
func Validate(p Payload) error {
	if err := validate.Struct(p); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validate %s: %w", p.Variant(), err)
		}
		var msgs []string
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return fmt.Errorf("invalid %s card: %s", p.Variant().DisplayName(), strings.Join(msgs, "; "))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_without":
		return fe.Field() + " is required when there is no " + fe.Param()
	case "min":
		return fe.Field() + " needs at least " + fe.Param() + " entry"
	case "cloze":
		return fe.Field() + " must contain at least one [[...]] span"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// SplitAnswers parses a comma-separated answer list, trimming each entry and
// dropping empty ones.
func SplitAnswers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TrimDistractors trims every distractor and drops empty ones.
func TrimDistractors(ds []string) []string {
	var out []string
	for _, d := range ds {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
