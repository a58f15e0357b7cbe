package complete_checkout

import (
	"fmt"
	"strings"
)

// validateRequest валидирует параметры возврата
func validateRequest(req *Request) error {
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if req.Payment != PaymentSuccess && req.Payment != PaymentCancel {
		return fmt.Errorf("%w: payment must be %q or %q", ErrInvalidInput, PaymentSuccess, PaymentCancel)
	}
	return nil
}
