package records

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

func idProblems(id int64) []error {
	if id <= 0 {
		return []error{domain.ErrIDInvalid}
	}
	return nil
}

func (s *Service) validateID(op string, id int64) error {
	return s.validate(op, idProblems(id))
}

func (s *Service) validate(op string, problems []error) error {
	err := domain.Validate(problems)
	if err != nil {
		s.logger.WithError(err).WithField("operation", op).Debug("request rejected by validation")
	}
	return err
}

// fail логирует ошибку хранилища и возвращает её без изменений.
func (s *Service) fail(op string, err error) error {
	entry := s.logger.WithError(err).WithField("operation", op)
	if domain.IsClientError(err) {
		entry.Debug("store rejected request")
	} else {
		entry.Error("store operation failed")
	}
	return err
}

// publish отправляет событие об уже зафиксированном изменении. Ошибка публикации
// не отменяет изменение: она логируется и учитывается в метриках.
func (s *Service) publish(ctx context.Context, entity domain.Entity, id int64, action domain.ChangeAction, payload any) {
	if s.publisher == nil {
		return
	}

	event := domain.ChangeEvent{
		ID:         s.newID(),
		Entity:     entity,
		EntityID:   id,
		Action:     action,
		OccurredAt: s.now(),
		Payload:    payload,
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.eventMetrics.RecordFailed()
		s.logger.WithError(err).WithFields(log.Fields{
			"event_id":  event.ID,
			"entity":    entity,
			"entity_id": id,
			"action":    action,
		}).Warn("failed to publish change event")
		return
	}
	s.eventMetrics.RecordPublished()
}
