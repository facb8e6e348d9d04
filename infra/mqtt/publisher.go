package mqtt

import (
	"encoding/json"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/infra/logger"
)

// Message is the JSON payload published for every creation event.
type Message struct {
	ID         string  `json:"id"`
	Op         string  `json:"op"`
	Scope      string  `json:"scope"`
	Key        string  `json:"key"`
	Outcome    string  `json:"outcome"`
	Error      string  `json:"error,omitempty"`
	DurationMS float64 `json:"duration_ms"`
	Timestamp  int64   `json:"timestamp"`
}

// Publisher forwards creation events to an MQTT broker. Each event is
// published to <topic>/<op>.
type Publisher struct {
	cli        pahoClient
	topic      string
	qos        byte
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger
}

// NewPublisher connects to the broker described by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_publisher")
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected") }
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	topic := strings.TrimSuffix(cfg.Topic, "/")
	if topic == "" {
		topic = DefaultTopic
	}
	p := &Publisher{
		cli:        c,
		topic:      topic,
		qos:        cfg.QoS,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		logger:     log,
	}
	if p.maxRetries < 0 {
		p.maxRetries = 0
	}
	if p.backoff <= 0 {
		p.backoff = 100 * time.Millisecond
	}
	return p, nil
}

// NewMessage converts ev into its wire form.
func NewMessage(ev factory.Event) Message {
	m := Message{
		ID:         uuid.NewString(),
		Op:         string(ev.Op),
		Scope:      ev.Scope,
		Key:        ev.Key,
		Outcome:    ev.Outcome(),
		DurationMS: float64(ev.Duration.Microseconds()) / 1000,
		Timestamp:  ev.Start.UnixMilli(),
	}
	if ev.Err != nil {
		m.Error = ev.Err.Error()
	}
	return m
}

// Topic returns the topic ev is published to.
func (p *Publisher) Topic(ev factory.Event) string {
	return p.topic + "/" + string(ev.Op)
}

// Observe publishes ev. Failed publishes are retried with exponential backoff
// and logged once retries are exhausted.
func (p *Publisher) Observe(ev factory.Event) {
	payload, err := json.Marshal(NewMessage(ev))
	if err != nil {
		p.logger.Errorf("encode event: %v", err)
		return
	}
	topic := p.Topic(ev)
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, p.qos, false, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			return
		}
		p.logger.Warnf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < p.maxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	p.logger.Errorf("publish to %s failed: %v", topic, publishErr)
}

// Close gracefully closes the MQTT connection.
func (p *Publisher) Close() error {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
	return nil
}
