package lifecycle

import (
	"time"

	"agent/internal/entities"
)

type TimelineStep struct {
	Status    entities.OrderStatusType
	Completed bool
	At        *time.Time
}

// Timeline строит шаги прогресса по entities.StatusOrdering. Шаг
// завершен, если текущий статус заказа на нем или дальше; отсутствие
// отметки времени завершенность не отменяет.
func Timeline(order entities.Order) []TimelineStep {
	currentRank := order.Status.Rank()

	steps := make([]TimelineStep, 0, len(entities.StatusOrdering))
	for i, status := range entities.StatusOrdering {
		step := TimelineStep{
			Status:    status,
			Completed: currentRank >= i,
		}
		if at, ok := order.Transitions[status]; ok {
			stamped := at
			step.At = &stamped
		}
		steps = append(steps, step)
	}
	return steps
}
