package start_checkout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/m04kA/consultation-booking/internal/domain"
)

// validateRequest валидирует черновик перед оплатой
func validateRequest(req *Request) error {
	if err := req.Draft.Validate(); err != nil {
		return err
	}
	method := strings.TrimSpace(req.Draft.PaymentMethod)
	if method != "" && method != domain.PaymentMethodCard {
		return domain.NewValidationError("paymentMethod", "only card payments are supported")
	}
	return nil
}

// toMinorUnits переводит цену "40" или "40.50" в центы
func toMinorUnits(price string) (int64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %v", price, err)
	}
	if value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("price %q must be positive", price)
	}
	return int64(math.Round(value * 100)), nil
}
