package check_slot

import "context"

type SlotService interface {
	Check(ctx context.Context, slotID string, guestCount int) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
