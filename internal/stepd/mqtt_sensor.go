package stepd

import (
	"context"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/julianstephens/wellnest/internal/logger"
)

const mqttTimeout = 10 * time.Second

type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
	Username string
	Password string
}

// MQTTSensor subscribes to a wearable bridge topic. Payloads are parsed with
// ParseReading.
type MQTTSensor struct {
	cfg       MQTTConfig
	newClient func(*mqtt.ClientOptions) mqtt.Client
}

func NewMQTTSensor(cfg MQTTConfig) *MQTTSensor {
	return &MQTTSensor{cfg: cfg, newClient: mqtt.NewClient}
}

func (s *MQTTSensor) Name() string { return "mqtt:" + s.cfg.Topic }

func (s *MQTTSensor) Subscribe(ctx context.Context) (<-chan int64, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(s.cfg.Broker).
		SetClientID(s.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttTimeout)
	if s.cfg.Username != "" {
		opts.SetUsername(s.cfg.Username)
		opts.SetPassword(s.cfg.Password)
	}

	client := s.newClient(opts)
	if token := client.Connect(); !token.WaitTimeout(mqttTimeout) {
		return nil, fmt.Errorf("timed out connecting to %s", s.cfg.Broker)
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", s.cfg.Broker, err)
	}

	out := make(chan int64, 8)
	var mu sync.Mutex
	closed := false

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		raw, err := ParseReading(msg.Payload())
		if err != nil {
			logger.Warn("Ignoring step message", "topic", msg.Topic(), "error", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- raw:
		default:
			logger.Debug("Step reading dropped, reader is behind", "raw", raw)
		}
	}

	if token := client.Subscribe(s.cfg.Topic, 1, handler); !token.WaitTimeout(mqttTimeout) {
		client.Disconnect(250)
		return nil, fmt.Errorf("timed out subscribing to %s", s.cfg.Topic)
	} else if err := token.Error(); err != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("failed to subscribe to %s: %w", s.cfg.Topic, err)
	}
	logger.Info("Subscribed to step topic", "broker", s.cfg.Broker, "topic", s.cfg.Topic)

	go func() {
		<-ctx.Done()
		client.Unsubscribe(s.cfg.Topic).WaitTimeout(time.Second)
		client.Disconnect(250)
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()
	return out, nil
}
