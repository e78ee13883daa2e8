package alarms

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khapa77/gong-dullabha/internal/weekday"
)

type Options struct {
	Formatter weekday.Formatter
	Rules     Rules
	Confirmer Confirmer
	Logger    *zap.Logger
}

// Controller ties the store, the form and the syncer together. It is the
// single owner of alarm state for one view.
type Controller struct {
	Store *Store
	Sync  *Syncer
	Form  *Form

	formatter weekday.Formatter
	confirm   Confirmer
}

func NewController(api API, opts Options) *Controller {
	store := NewStore()
	syncer := NewSyncer(api, store, opts.Logger)
	return &Controller{
		Store:     store,
		Sync:      syncer,
		Form:      NewForm(store, syncer, opts.Rules),
		formatter: opts.Formatter,
		confirm:   opts.Confirmer,
	}
}

func (c *Controller) Load(ctx context.Context) error {
	return c.Sync.Load(ctx)
}

// Rows renders the last successful fetch.
func (c *Controller) Rows() []Row {
	return Render(c.Store.Snapshot(), c.formatter)
}

// Dispatch runs a row action.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	switch a.Kind {
	case ActionEdit:
		return c.Form.BeginEdit(ctx, a.AlarmID)
	case ActionDelete:
		if err := c.Sync.Delete(ctx, a.AlarmID, c.confirm); err != nil {
			return err
		}
		// the dialog must not keep editing an alarm that no longer exists
		if id, ok := c.Form.EditingID(); ok && id == a.AlarmID {
			c.Form.Close()
		}
		return nil
	}
	return fmt.Errorf("unknown action %s", a.Kind)
}
