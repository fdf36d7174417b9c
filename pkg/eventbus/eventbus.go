// Package eventbus publishes advisory events to an MQTT broker so farm
// dashboards and notification relays can subscribe to weather alerts
// without polling the API.
package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config describes the broker connection.
type Config struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	ClientID string `koanf:"client_id"`
	Topic    string `koanf:"topic"`
}

// Publisher emits advisory events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(event string, payload any) error
	Close()
}

// Envelope wraps every published payload with an id and timestamp so
// subscribers can deduplicate.
type Envelope struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// MQTTPublisher publishes JSON envelopes to a single topic at QoS 0.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	log    zerolog.Logger
}

// Connect dials the broker, retrying with exponential backoff. The
// connection is torn down when ctx is cancelled.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*MQTTPublisher, error) {
	addr := fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(addr)
	opts.SetUsername(cfg.User)
	opts.SetPassword(cfg.Password)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second

	var client mqtt.Client
	err := backoff.Retry(func() error {
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Warn().Err(token.Error()).Str("broker", addr).Msg("mqtt connect failed, retrying")
			return token.Error()
		}
		return nil
	}, backoff.WithMaxRetries(bo, 4))
	if err != nil {
		return nil, fmt.Errorf("connect mqtt broker %s: %w", addr, err)
	}
	log.Info().Str("broker", addr).Str("topic", cfg.Topic).Msg("connected to mqtt broker")

	go func() {
		<-ctx.Done()
		client.Disconnect(250)
	}()

	return &MQTTPublisher{client: client, topic: cfg.Topic, log: log}, nil
}

// Publish serializes payload into an envelope and sends it.
func (p *MQTTPublisher) Publish(event string, payload any) error {
	body, err := json.Marshal(Envelope{
		ID:        uuid.NewString(),
		Event:     event,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event, err)
	}

	token := p.client.Publish(p.topic, 0, false, body)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish event %s: %w", event, token.Error())
	}
	p.log.Debug().Str("event", event).Str("topic", p.topic).Msg("event published")
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(string, any) error { return nil }
func (Nop) Close()                    {}
