package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khapa77/gong-dullabha/internal/client"
	"github.com/khapa77/gong-dullabha/pkg/models"
)

// Variables to hold flag values
var (
	expHost       string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	server    *http.Server
	collector *GongCollector
	log       *zap.Logger
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	go p.run()
	return nil
}

func (p *program) run() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(p.log),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	p.log.Info("gong exporter listening", zap.String("addr", addr))

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		p.log.Error("http server error", zap.Error(err))
	}
}

func (p *program) Stop(s service.Service) error {
	p.log.Info("stopping service")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			p.log.Warn("server forced to shutdown", zap.Error(err))
		}
	}
	return nil
}

// --- COLLECTOR LOGIC ---

// ScrapeAPI is the part of the device API the exporter reads.
type ScrapeAPI interface {
	ListAlarms(ctx context.Context) ([]models.Alarm, error)
	GetTime(ctx context.Context) (models.ServerTime, error)
}

// GongCollector scrapes the device on every Prometheus collection.
type GongCollector struct {
	Client  ScrapeAPI
	Timeout time.Duration
	Log     *zap.Logger
	Mutex   sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"gong_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"gong_scrape_duration_seconds", "Time taken to scrape the device API.", nil, nil,
	)
	clockReachableDesc = prometheus.NewDesc(
		"gong_clock_reachable", "Whether /api/time answered.", nil, nil,
	)
	alarmsCountDesc = prometheus.NewDesc(
		"gong_alarms_total", "Scheduled alarms grouped by state.", []string{"state"}, nil,
	)
	alarmDurationDesc = prometheus.NewDesc(
		"gong_alarm_duration_seconds", "Ring duration of each scheduled alarm.", []string{"id", "time"}, nil,
	)
)

func (c *GongCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- clockReachableDesc
	ch <- alarmsCountDesc
	ch <- alarmDurationDesc
}

func (c *GongCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()

	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	ctx := context.Background()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	// Both scrapes always run to completion; Wait reports the first failure.
	var (
		g       errgroup.Group
		list    []models.Alarm
		clockUp bool
	)
	g.Go(func() error {
		if _, err := c.Client.GetTime(ctx); err != nil {
			log.Warn("error scraping clock", zap.Error(err))
			return err
		}
		clockUp = true
		return nil
	})
	g.Go(func() error {
		res, err := c.Client.ListAlarms(ctx)
		if err != nil {
			log.Warn("error scraping alarms", zap.Error(err))
			return err
		}
		list = res
		return nil
	})
	err := g.Wait()

	ch <- prometheus.MustNewConstMetric(clockReachableDesc, prometheus.GaugeValue, boolToFloat(clockUp))

	if list != nil {
		states := map[string]float64{"active": 0, "inactive": 0}
		seen := make(map[int]bool, len(list))
		for _, a := range list {
			// a repeated id would make the gather fail with a duplicate series
			if seen[a.ID] {
				log.Warn("duplicate alarm id from device, skipping", zap.Int("id", a.ID))
				continue
			}
			seen[a.ID] = true
			st := "inactive"
			if a.Active {
				st = "active"
			}
			states[st]++
			ch <- prometheus.MustNewConstMetric(alarmDurationDesc, prometheus.GaugeValue,
				float64(a.Duration), strconv.Itoa(a.ID), strings.TrimSpace(a.Time))
		}
		for st, cnt := range states {
			ch <- prometheus.MustNewConstMetric(alarmsCountDesc, prometheus.GaugeValue, cnt, st)
		}
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, boolToFloat(err == nil))
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes gong controller metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		host := strings.TrimRight(expHost, "/")
		if host == "" {
			host = cfg.BaseURL
		}

		// Define Service Configuration
		svcConfig := &service.Config{
			Name:        "gong-exporter",
			DisplayName: "Gong Prometheus Exporter",
			Description: "Exposes meditation gong controller metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--host", host,
				"--port", expPort,
			},
		}
		if cfgFile != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--config", cfgFile)
		}

		api := client.New(client.ClientConfig{
			BaseURL: host,
			Timeout: cfg.Timeout,
			DayBase: cfg.DayBaseValue(),
			Logger:  log,
		})
		prg := &program{
			collector: &GongCollector{Client: api, Timeout: cfg.Timeout, Log: log},
			log:       log,
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			fail("creating service", err)
		}

		// Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" && host == "" {
				fail("installing service", fmt.Errorf("no device address; pass --host or run 'gong-cli target' first"))
			}

			if err := service.Control(s, serviceAction); err != nil {
				fail(serviceAction+" service", err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		if host == "" {
			fail("starting exporter", fmt.Errorf("no device address; pass --host or run 'gong-cli target' first"))
		}

		// Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when run interactively without flags
		if err := s.Run(); err != nil {
			log.Error("service run failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expHost, "host", "", "Device base URL (default is base_url from the config)")
	exporterCmd.Flags().StringVar(&expPort, "port", "9100", "Port to listen on")

	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
