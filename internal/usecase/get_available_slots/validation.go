package get_available_slots

import (
	"fmt"

	"github.com/m04kA/consultation-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if _, err := types.ParseDateKey(req.Date.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return nil
}
