// internal/app/status_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_notification_bot/internal/domain/homework"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StatusService runs one poll of the homework review API.
type StatusService interface {
	RunCycle(ctx context.Context) error
}

// APIClient fetches the raw review API answer for the window starting at fromDate.
type APIClient interface {
	GetAPIAnswer(ctx context.Context, fromDate int64) (any, error)
}

// StatusServiceImpl implements the StatusService interface.
type StatusServiceImpl struct {
	api         APIClient
	sender      MessageSender
	stateRepo   homework.StateRepository
	logger      *logrus.Entry
	retryPeriod time.Duration
	now         func() time.Time
}

func NewStatusServiceImpl(
	api APIClient,
	sender MessageSender,
	stateRepo homework.StateRepository,
	logger *logrus.Entry,
	retryPeriod time.Duration,
) *StatusServiceImpl {
	return &StatusServiceImpl{
		api:         api,
		sender:      sender,
		stateRepo:   stateRepo,
		logger:      logger,
		retryPeriod: retryPeriod,
		now:         time.Now,
	}
}

// RunCycle fetches statuses since the stored cursor, notifies the chat when the
// latest homework's rendered status differs from the last one sent, and
// advances the cursor to the API's current_date.
func (s *StatusServiceImpl) RunCycle(ctx context.Context) error {
	logCtx := s.logger.WithField("cycle_id", uuid.NewString())

	state, err := s.loadState(ctx)
	if err != nil {
		return err
	}

	answer, err := s.api.GetAPIAnswer(ctx, state.FromDate)
	if err != nil {
		return fmt.Errorf("get api answer: %w", err)
	}
	if err := homework.CheckResponse(answer); err != nil {
		return fmt.Errorf("check response: %w", err)
	}
	resp := answer.(map[string]any)
	homeworks := resp[homework.KeyHomeworks].([]any)

	if len(homeworks) > 0 {
		message, err := homework.ParseStatus(homeworks[0])
		if err != nil {
			if errors.Is(err, homework.ErrUnknownStatus) {
				logCtx.WithError(err).Error("Undocumented homework status")
			}
			return fmt.Errorf("parse status: %w", err)
		}

		if message != state.LastMessage {
			result := s.sender.SendMessage(ctx, message)
			if !result.Delivered {
				logCtx.WithError(result.Err).Warn("Status change was not delivered")
			}
			// At most once: an undelivered message is not offered again.
			state.LastMessage = message
		} else {
			logCtx.Debug("Homework status unchanged")
		}
	} else {
		logCtx.Debug("Homework status unchanged")
	}

	currentDate, dateErr := homework.CurrentDate(resp)
	if dateErr == nil {
		state.FromDate = currentDate
	}
	state.UpdatedAt = s.now()
	if err := s.stateRepo.Save(ctx, state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if dateErr != nil {
		return fmt.Errorf("advance cursor: %w", dateErr)
	}
	logCtx.WithField("from_date", state.FromDate).Debug("Cursor advanced")
	return nil
}

// loadState starts the cursor one retry period in the past when nothing is stored.
func (s *StatusServiceImpl) loadState(ctx context.Context) (*homework.State, error) {
	state, err := s.stateRepo.Load(ctx)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, homework.ErrStateNotFound) {
		return nil, fmt.Errorf("load state: %w", err)
	}
	from := s.now().Add(-s.retryPeriod).Unix()
	s.logger.WithField("from_date", from).Info("No saved state, polling from one retry period ago")
	return &homework.State{FromDate: from}, nil
}
