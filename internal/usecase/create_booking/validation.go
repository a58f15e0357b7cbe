package create_booking

import (
	"github.com/m04kA/consultation-booking/internal/domain"
)

// validateRequest валидирует черновик; слот должен входить в каталог
func validateRequest(req *Request) error {
	if err := req.Draft.Validate(); err != nil {
		return err
	}
	if !domain.IsCatalogSlot(req.Draft.Time) {
		return domain.NewValidationError("time", "must be one of the offered consultation slots")
	}
	return nil
}
