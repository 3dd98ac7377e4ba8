package breaks

import "github.com/m04kA/SMC-CalendarService/internal/domain"

type BreakService interface {
	AddBreak(b domain.BreakBlock) (domain.BreakBlock, error)
	UpdateBreak(id string, b domain.BreakBlock) (domain.BreakBlock, error)
	RemoveBreak(id string) error
	Breaks() []domain.BreakBlock
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
