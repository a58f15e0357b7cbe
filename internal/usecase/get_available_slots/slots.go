package get_available_slots

import (
	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/pkg/types"
)

// resolveSlots вычисляет слоты, которые можно предложить клиенту на дату.
// Эффективный набор (переопределение, иначе шаблон дня недели, иначе пусто)
// минус уже занятые слоты этой даты. Порядок по возрастанию сохраняется.
func resolveSlots(
	date types.DateKey,
	weekly domain.WeeklyTemplate,
	overrides domain.DateOverrides,
	ledger domain.Ledger,
) (domain.EffectiveAvailability, error) {
	effective, err := domain.ResolveEffective(date, weekly, overrides)
	if err != nil {
		return domain.EffectiveAvailability{}, err
	}

	booked := ledger.BookedSlots(date)
	if len(booked) == 0 {
		return effective, nil
	}

	free := make([]types.TimeString, 0, len(effective.Slots))
	for _, slot := range effective.Slots {
		if _, taken := booked[slot]; taken {
			continue
		}
		free = append(free, slot)
	}
	effective.Slots = free
	return effective, nil
}
