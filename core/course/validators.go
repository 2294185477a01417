package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
)

var (
	correctAnsTag  = "correct_ans_in_options"
	correctAnsText = "the correct answer must be one of the options"
)

// InitValidators registers the course validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(questionStructValidation, NewQuestion{})
	core.RegisterCustomTranslation(validate, translator, correctAnsTag, correctAnsText)
}

// questionStructValidation checks that NewQuestion.CorrectAns is one of NewQuestion.Options.
func questionStructValidation(sl validator.StructLevel) {
	nq, ok := sl.Current().Interface().(NewQuestion)
	if !ok || nq.CorrectAns == "" {
		return
	}
	for _, opt := range nq.Options {
		if opt == nq.CorrectAns {
			return
		}
	}
	sl.ReportError(nq.CorrectAns, "correct_ans", "CorrectAns", correctAnsTag, "")
}
