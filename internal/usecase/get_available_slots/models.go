package get_available_slots

import (
	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date types.DateKey // Календарная дата в локальной зоне
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date   types.DateKey
	Source domain.AvailabilitySource // Откуда взят набор: переопределение, шаблон или ничего
	Slots  []types.TimeString        // Свободные слоты по возрастанию
}
