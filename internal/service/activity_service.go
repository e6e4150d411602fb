package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/chamados-dashboard/internal/events"
)

// ActivityService writes an activity log entry for every domain event the
// stores publish.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventChamadoCriado, a.handle("ChamadoCriado"))
	a.dispatcher.Subscribe(events.EventChamadoFinalizado, a.handle("ChamadoFinalizado"))
	a.dispatcher.Subscribe(events.EventChamadoAtualizado, a.handle("ChamadoAtualizado"))
	a.dispatcher.Subscribe(events.EventChamadoExcluido, a.handle("ChamadoExcluido"))
	a.dispatcher.Subscribe(events.EventClienteCriado, a.handle("ClienteCriado"))
	a.dispatcher.Subscribe(events.EventClienteAtualizado, a.handle("ClienteAtualizado"))
	a.dispatcher.Subscribe(events.EventClienteExcluido, a.handle("ClienteExcluido"))
}

func (a *ActivityService) handle(name string) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		a.logger.Info(name,
			zap.String("user_id", event.UserID),
			zap.String("entity_id", event.EntityID),
			zap.Any("payload", event.Payload))
		return nil
	}
}
