package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khapa77/gong-dullabha/internal/weekday"
)

const requestIDHeader = "X-Request-ID"

type GongClient struct {
	HTTP   *resty.Client
	Config ClientConfig
	log    *zap.Logger
}

type ClientConfig struct {
	BaseURL string        // e.g. http://gong.local or http://localhost:5001
	Timeout time.Duration // 0 keeps the transport default
	DayBase weekday.Base  // numbering the backend uses for Monday
	Logger  *zap.Logger
}

func New(cfg ClientConfig) *GongClient {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	r.SetLogger(log.Sugar())

	// Tag every request so it can be matched against the device log.
	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(requestIDHeader) == "" {
			req.SetHeader(requestIDHeader, uuid.NewString())
		}
		// The firmware does not always label its JSON; without this resty
		// skips decoding and returns an empty result.
		if req.Result != nil {
			req.ForceContentType("application/json")
		}
		return nil
	})
	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Debug("gong api call",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("took", resp.Time()),
			zap.String("request_id", resp.Request.Header.Get(requestIDHeader)),
		)
		return nil
	})

	return &GongClient{
		HTTP:   r,
		Config: cfg,
		log:    log,
	}
}
