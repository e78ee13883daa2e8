package alarms

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/khapa77/gong-dullabha/internal/inflight"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

// API is the subset of the REST client the alarm controller needs.
type API interface {
	ListAlarms(ctx context.Context) ([]models.Alarm, error)
	CreateAlarm(ctx context.Context, in models.AlarmInput) (*models.Alarm, error)
	UpdateAlarm(ctx context.Context, id int, in models.AlarmInput) error
	DeleteAlarm(ctx context.Context, id int) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

const createKey = "create"

// Syncer writes through to the backend and reloads the store after every
// successful mutation. Mutation and reload are not atomic.
type Syncer struct {
	api   API
	store *Store
	log   *zap.Logger
	guard inflight.Guard
}

func NewSyncer(api API, store *Store, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{api: api, store: store, log: log}
}

// Load replaces the store with the backend's list. On failure the previous
// snapshot stays in place.
func (s *Syncer) Load(ctx context.Context) error {
	list, err := s.api.ListAlarms(ctx)
	if err != nil {
		s.log.Debug("alarm reload failed, keeping previous snapshot", zap.Error(err))
		return err
	}
	s.store.Replace(list)
	s.log.Debug("alarms loaded", zap.Int("count", len(list)))
	return nil
}

func (s *Syncer) Create(ctx context.Context, in models.AlarmInput) (*models.Alarm, error) {
	release, ok := s.guard.Acquire(createKey)
	if !ok {
		return nil, ErrBusy
	}
	defer release()

	created, err := s.api.CreateAlarm(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("alarm created", zap.Int("id", created.ID), zap.String("time", in.Time))

	if err := s.Load(ctx); err != nil {
		return created, &ReloadError{Op: "created", Err: err}
	}
	return created, nil
}

func (s *Syncer) Update(ctx context.Context, id int, in models.AlarmInput) error {
	release, ok := s.guard.Acquire(alarmKey(id))
	if !ok {
		return ErrBusy
	}
	defer release()

	if err := s.api.UpdateAlarm(ctx, id, in); err != nil {
		return err
	}
	s.log.Info("alarm updated", zap.Int("id", id))

	if err := s.Load(ctx); err != nil {
		return &ReloadError{Op: "updated", Err: err}
	}
	return nil
}

// Delete asks c for confirmation and only then issues the request.
func (s *Syncer) Delete(ctx context.Context, id int, c Confirmer) error {
	if c == nil || !c.Confirm(fmt.Sprintf("Delete alarm #%d?", id)) {
		return ErrCancelled
	}

	release, ok := s.guard.Acquire(alarmKey(id))
	if !ok {
		return ErrBusy
	}
	defer release()

	if err := s.api.DeleteAlarm(ctx, id); err != nil {
		return err
	}
	s.log.Info("alarm deleted", zap.Int("id", id))

	if err := s.Load(ctx); err != nil {
		return &ReloadError{Op: "deleted", Err: err}
	}
	return nil
}

func alarmKey(id int) string {
	return "alarm:" + strconv.Itoa(id)
}
