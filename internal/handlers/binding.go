package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// Custom binding validations shared by all handlers.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// workflow_action rejects unrecognized action names at bind time.
	_ = v.RegisterValidation("workflow_action", func(fl validator.FieldLevel) bool {
		return domain.KnownAction(domain.Action(fl.Field().String()))
	})
}
