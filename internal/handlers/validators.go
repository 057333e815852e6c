package handlers

import (
	"fmt"

	"github.com/SscSPs/clonewander/internal/core/domain"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators teaches gin's binding engine the clone request tags.
func registerValidators(catalog portssvc.CatalogSvc) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("budget_tier", func(fl validator.FieldLevel) bool {
		return domain.BudgetTier(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("register budget_tier: %w", err)
	}
	if err := v.RegisterValidation("adventure_pack", func(fl validator.FieldLevel) bool {
		_, ok := catalog.FindPack(domain.PackID(fl.Field().String()))
		return ok
	}); err != nil {
		return fmt.Errorf("register adventure_pack: %w", err)
	}
	return nil
}
