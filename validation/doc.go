// Package validation checks settings structs using go-playground/validator
// struct tags and reports failures as an INVALID_CONFIG [errors.AppError].
//
//	type PipelineSettings struct {
//	    MaxBuffer int `mapstructure:"max_buffer" validate:"gte=0"`
//	}
//	err := validation.Validate(settings)
package validation
