package alarms

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

// fakeAPI is an in-memory backend that records every call.
type fakeAPI struct {
	mu     sync.Mutex
	alarms []models.Alarm
	nextID int
	calls  []string

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// block, when set, holds mutations until it is closed
	block chan struct{}
}

func newFakeAPI(alarms ...models.Alarm) *fakeAPI {
	return &fakeAPI{alarms: alarms, nextID: 100}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAPI) ListAlarms(context.Context) ([]models.Alarm, error) {
	f.record("GET /api/alarms")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Alarm(nil), f.alarms...), nil
}

func (f *fakeAPI) CreateAlarm(_ context.Context, in models.AlarmInput) (*models.Alarm, error) {
	f.record("POST /api/alarms")
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	a := models.Alarm{ID: f.nextID, Time: in.Time, Days: in.Days, Duration: in.Duration, Active: in.Active, Label: in.Label}
	f.alarms = append(f.alarms, a)
	return &a, nil
}

func (f *fakeAPI) UpdateAlarm(_ context.Context, id int, in models.AlarmInput) error {
	f.record("PUT /api/alarms/" + itoa(id))
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.alarms {
		if f.alarms[i].ID == id {
			f.alarms[i] = models.Alarm{ID: id, Time: in.Time, Days: in.Days, Duration: in.Duration, Active: in.Active, Label: in.Label}
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAPI) DeleteAlarm(_ context.Context, id int) error {
	f.record("DELETE /api/alarms/" + itoa(id))
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.alarms {
		if f.alarms[i].ID == id {
			f.alarms = append(f.alarms[:i], f.alarms[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// remove drops an alarm behind the client's back, as a second client would.
func (f *fakeAPI) remove(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.alarms {
		if f.alarms[i].ID == id {
			f.alarms = append(f.alarms[:i], f.alarms[i+1:]...)
			return
		}
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func count(calls []string, call string) int {
	n := 0
	for _, c := range calls {
		if c == call {
			n++
		}
	}
	return n
}

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

var (
	yes = ConfirmFunc(func(string) bool { return true })
	no  = ConfirmFunc(func(string) bool { return false })
)

func morning() models.Alarm {
	return models.Alarm{ID: 7, Time: "07:30", Days: []int{0, 2, 4}, Duration: 30, Active: true}
}

func evening() models.Alarm {
	return models.Alarm{ID: 8, Time: "21:00", Days: []int{5, 6}, Duration: 10, Active: false}
}
