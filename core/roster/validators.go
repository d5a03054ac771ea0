package roster

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
)

var (
	// custom validation tags & texts
	rosterCodeTag  = "rostercode"
	rosterCodeText = "must be letters followed by digits (e.g. S001)"

	weekdaysTag  = "weekdays"
	weekdaysText = "must name at least one weekday"
)

// InitValidators registers the roster's custom validations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(rosterCodeTag, rosterCodeValidation)
	core.RegisterCustomTranslation(validate, translator, rosterCodeTag, rosterCodeText)

	_ = validate.RegisterValidation(weekdaysTag, weekdaysValidation)
	core.RegisterCustomTranslation(validate, translator, weekdaysTag, weekdaysText)
}

func rosterCodeValidation(fl validator.FieldLevel) bool {
	return codePattern.MatchString(fl.Field().String())
}

// weekdaysValidation requires the schedule text to name at least one
// recognizable weekday.
func weekdaysValidation(fl validator.FieldLevel) bool {
	return len(calendar.ParseSchedule(fl.Field().String())) > 0
}
