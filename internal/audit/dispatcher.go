package audit

import (
	"go.uber.org/zap"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/logs"
)

type Event struct {
	AccountID uint
	UserID    *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Recorder grava um evento de auditoria; em produção é o Logger gorm.
type Recorder interface {
	Log(accountID uint, userID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	recorder Recorder
	queue    chan Event
}

func NewDispatcher(recorder Recorder) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.recorder.Log(
			ev.AccountID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil && logs.Log != nil {
			logs.Log.Error("audit error", zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		if logs.Log != nil {
			logs.Log.Warn("audit queue full, dropping event")
		}
	}
}
