package validation

import (
	"github.com/gin-gonic/gin/binding"

	"github.com/openrds/depositsync/internal/domain/research"

	"github.com/rs/zerolog/log"
	"gopkg.in/go-playground/validator.v9"
)

func SetUpValidators() {
	log.Info().Msg("Setting up custom validators")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation(ResearchIndexValidatorTag, ResearchIndexValidator)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up research Index validator")
		}
	}
}

var ResearchIndexValidatorTag = "researchIndex"
var ResearchIndexValidator validator.Func = func(fl validator.FieldLevel) bool {
	researchIndex, ok := fl.Field().Interface().(research.Index)
	if ok {
		if _, err := research.IndexFromString(string(researchIndex)); err != nil {
			return false
		}
	}
	return true
}
