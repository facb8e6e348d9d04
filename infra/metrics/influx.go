package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/infra/logger"
)

// InfluxConfig locates the InfluxDB bucket receiving creation events.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxObserver writes creation events to an InfluxDB instance using the official client.
type InfluxObserver struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxObserver creates a new observer configured for the given InfluxDB endpoint.
func NewInfluxObserver(cfg InfluxConfig) *InfluxObserver {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxObserver{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-observer"),
	}
}

// NewInfluxObserverWithFallback tries to ping the InfluxDB instance and
// returns a NopObserver if the health check fails.
func NewInfluxObserverWithFallback(cfg InfluxConfig) factory.Observer {
	obs := NewInfluxObserver(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := obs.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			obs.log.Errorf("influx health check error: %v", err)
		} else {
			obs.log.Errorf("influx health status: %s", health.Status)
		}
		obs.client.Close()
		return factory.NopObserver{}
	}
	return obs
}

// Observe writes ev as a creation_event point. Write failures are logged.
func (o *InfluxObserver) Observe(ev factory.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.writeAPI.WritePoint(ctx, eventPoint(ev)); err != nil {
		o.log.Errorf("influx write: %v", err)
	}
}

// Close releases the client.
func (o *InfluxObserver) Close() error {
	o.client.Close()
	return nil
}

func eventPoint(ev factory.Event) *write.Point {
	p := write.NewPointWithMeasurement("creation_event").
		AddTag("op", string(ev.Op)).
		AddTag("scope", ev.Scope).
		AddTag("outcome", ev.Outcome()).
		AddField("key", ev.Key).
		AddField("duration_ms", round3(float64(ev.Duration.Microseconds())/1000))
	if ev.Err != nil {
		p = p.AddField("error", ev.Err.Error())
	}
	ts := ev.Start
	if ts.IsZero() {
		ts = time.Now()
	}
	return p.SetTime(ts)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
