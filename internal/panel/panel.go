// Package panel implements the manual trigger, audio and settings controls.
// Every command is independent; the only state is the last status line and
// the local settings mirror.
package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/khapa77/gong-dullabha/internal/inflight"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

// MaxVolume is the DFPlayer Mini's upper volume bound.
const MaxVolume = 30

var (
	ErrBusy            = errors.New("command already in progress")
	ErrInvalidArgument = errors.New("invalid argument")
)

type API interface {
	Play(ctx context.Context) (models.StatusResponse, error)
	Stop(ctx context.Context) (models.StatusResponse, error)
	PlayTrack(ctx context.Context, num int) (models.StatusResponse, error)
	SetVolume(ctx context.Context, value int) (models.StatusResponse, error)
	Trigger(ctx context.Context, payload models.TriggerPayload) error
	PushSettings(ctx context.Context, s models.Settings) error
}

type Panel struct {
	api   API
	log   *zap.Logger
	guard inflight.Guard

	mu       sync.RWMutex
	status   string
	settings models.Settings
}

func New(api API, settings models.Settings, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{api: api, settings: settings, log: log}
}

// Status is the one-line result of the last command.
func (p *Panel) Status() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *Panel) Settings() models.Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

func (p *Panel) Play(ctx context.Context) error {
	return p.run("play", "Playback started", "Failed to start playback", func() (string, error) {
		_, err := p.api.Play(ctx)
		return "", err
	})
}

func (p *Panel) Stop(ctx context.Context) error {
	return p.run("stop", "Playback stopped", "Failed to stop playback", func() (string, error) {
		_, err := p.api.Stop(ctx)
		return "", err
	})
}

// Track plays track num (1-based) from the SD card.
func (p *Panel) Track(ctx context.Context, num int) error {
	if num < 1 {
		return p.reject(fmt.Errorf("%w: track number must be 1 or greater", ErrInvalidArgument))
	}
	ok := fmt.Sprintf("Playing track #%d", num)
	return p.run("track", ok, "Failed to play track", func() (string, error) {
		_, err := p.api.PlayTrack(ctx, num)
		return "", err
	})
}

func (p *Panel) Volume(ctx context.Context, value int) error {
	if value < 0 || value > MaxVolume {
		return p.reject(fmt.Errorf("%w: volume must be between 0 and %d", ErrInvalidArgument, MaxVolume))
	}
	return p.run("volume", "", "Failed to set volume", func() (string, error) {
		st, err := p.api.SetVolume(ctx, value)
		if err != nil {
			return "", err
		}
		applied := value
		if st.Volume != nil {
			applied = *st.Volume
		}
		return fmt.Sprintf("Volume set to %d", applied), nil
	})
}

// Trigger sounds the gong now using the duration and volume from the
// settings mirror.
func (p *Panel) Trigger(ctx context.Context) error {
	s := p.Settings()
	ok := fmt.Sprintf("Gong triggered for %ds", s.Duration)
	return p.run("trigger", ok, "Failed to trigger gong", func() (string, error) {
		return "", p.api.Trigger(ctx, models.TriggerPayload{Duration: s.Duration, Volume: s.Volume})
	})
}

// ApplySettings updates the local mirror and pushes it to the device. The
// mirror keeps the new values even if the push fails.
func (p *Panel) ApplySettings(ctx context.Context, s models.Settings) error {
	if err := ValidateSettings(s); err != nil {
		return p.reject(err)
	}

	p.mu.Lock()
	p.settings = s
	p.mu.Unlock()

	return p.run("settings", "Settings saved", "Failed to save settings", func() (string, error) {
		return "", p.api.PushSettings(ctx, s)
	})
}

func ValidateSettings(s models.Settings) error {
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of seconds", ErrInvalidArgument)
	}
	if s.Volume < 0 || s.Volume > MaxVolume {
		return fmt.Errorf("%w: volume must be between 0 and %d", ErrInvalidArgument, MaxVolume)
	}
	return nil
}

// run executes one command behind its in-flight guard and records the
// status line. fn may return its own success message.
func (p *Panel) run(control, okMsg, failMsg string, fn func() (string, error)) error {
	release, ok := p.guard.Acquire(control)
	if !ok {
		return ErrBusy
	}
	defer release()

	msg, err := fn()
	if err != nil {
		p.setStatus(fmt.Sprintf("%s: %v", failMsg, err))
		p.log.Warn("panel command failed", zap.String("control", control), zap.Error(err))
		return err
	}
	if msg == "" {
		msg = okMsg
	}
	p.setStatus(msg)
	p.log.Debug("panel command done", zap.String("control", control))
	return nil
}

func (p *Panel) reject(err error) error {
	p.setStatus(err.Error())
	return err
}

func (p *Panel) setStatus(s string) {
	p.mu.Lock()
	p.status = s
	p.mu.Unlock()
}
