package alarms

import (
	"fmt"
	"strings"

	"github.com/khapa77/gong-dullabha/internal/weekday"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

type ActionKind int

const (
	ActionEdit ActionKind = iota + 1
	ActionDelete
)

func (k ActionKind) String() string {
	switch k {
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is bound to an alarm id, never to a list position, so it stays
// valid across reloads that reorder the list.
type Action struct {
	Kind    ActionKind
	AlarmID int
}

type Row struct {
	ID     int
	Label  string
	Active bool
	Edit   Action
	Delete Action
}

// Render turns alarms into rows, keeping server order.
func Render(list []models.Alarm, f weekday.Formatter) []Row {
	rows := make([]Row, 0, len(list))
	for _, a := range list {
		rows = append(rows, Row{
			ID:     a.ID,
			Label:  Label(a, f),
			Active: a.Active,
			Edit:   Action{Kind: ActionEdit, AlarmID: a.ID},
			Delete: Action{Kind: ActionDelete, AlarmID: a.ID},
		})
	}
	return rows
}

// Label renders one alarm, e.g. "07:30 (Пн, Ср, Пт) — 30s (выкл)".
// Days are expected in canonical numbering.
func Label(a models.Alarm, f weekday.Formatter) string {
	f.Base = weekday.Zero

	var b strings.Builder
	b.WriteString(a.Time)
	if days := f.Format(a.Days); days != "" {
		fmt.Fprintf(&b, " (%s)", days)
	}
	if a.Duration > 0 {
		fmt.Fprintf(&b, " — %ds", a.Duration)
	}
	if a.Label != "" {
		fmt.Fprintf(&b, " — %s", a.Label)
	}
	if !a.Active {
		b.WriteString(" " + weekday.InactiveMarker(f.Locale))
	}
	return b.String()
}
