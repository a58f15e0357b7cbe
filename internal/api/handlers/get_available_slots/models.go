package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/consultation-booking/internal/usecase/get_available_slots"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date   string   `json:"date"`
	Source string   `json:"source"`
	Slots  []string `json:"slots"`
}

// ToUseCaseRequest конвертирует query параметр в модель use case
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDateKey(dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}
	return &AvailableSlotsResponse{
		Date:   resp.Date.String(),
		Source: string(resp.Source),
		Slots:  slots,
	}
}
