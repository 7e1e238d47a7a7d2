package stepd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func TestParseReading(t *testing.T) {
	tests := []struct {
		payload string
		want    int64
		wantErr bool
	}{
		{payload: "1234", want: 1234},
		{payload: " 42\n", want: 42},
		{payload: "980.0", want: 980},
		{payload: `{"steps": 5000}`, want: 5000},
		{payload: `{"count": 12, "battery": 80}`, want: 12},
		{payload: `{"value": 7.9}`, want: 7},
		{payload: "", wantErr: true},
		{payload: "-3", wantErr: true},
		{payload: "abc", wantErr: true},
		{payload: `{"battery": 80}`, wantErr: true},
		{payload: `{"steps": `, wantErr: true},
		{payload: "1e30", wantErr: true},
		{payload: `{"steps": 1e19}`, wantErr: true},
		{payload: "NaN", wantErr: true},
		{payload: "+Inf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, err := ParseReading([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReading() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseReading() = %d, want %d", got, tt.want)
			}
		})
	}
}

func receive(t *testing.T, ch <-chan int64) int64 {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return v
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reading")
	}
	return 0
}

func TestFileSensor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps")
	if err := os.WriteFile(path, []byte("100"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	readings, err := NewFileSensor(path).Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if got := receive(t, readings); got != 100 {
		t.Errorf("initial reading = %d, want 100", got)
	}

	if err := os.WriteFile(path, []byte("250"), 0644); err != nil {
		t.Fatal(err)
	}
	// A single write can surface as more than one event.
	for {
		if got := receive(t, readings); got == 250 {
			break
		}
	}

	cancel()
	for range readings {
	}
}

func TestFileSensorMissingDir(t *testing.T) {
	_, err := NewFileSensor(filepath.Join(t.TempDir(), "nope", "steps")).Subscribe(t.Context())
	if err == nil {
		t.Error("Subscribe() on a missing directory succeeded")
	}
}

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (t *fakeToken) Error() error                   { return t.err }

type fakeClient struct {
	mqtt.Client
	topic        string
	handler      mqtt.MessageHandler
	disconnected bool
}

func (c *fakeClient) Connect() mqtt.Token { return &fakeToken{} }

func (c *fakeClient) Subscribe(topic string, qos byte, cb mqtt.MessageHandler) mqtt.Token {
	c.topic = topic
	c.handler = cb
	return &fakeToken{}
}

func (c *fakeClient) Unsubscribe(topics ...string) mqtt.Token { return &fakeToken{} }

func (c *fakeClient) Disconnect(quiesce uint) { c.disconnected = true }

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string   { return m.topic }
func (m *fakeMessage) Payload() []byte { return m.payload }

func TestMQTTSensor(t *testing.T) {
	client := &fakeClient{}
	sensor := NewMQTTSensor(MQTTConfig{Broker: "tcp://localhost:1883", Topic: "wearable/steps", ClientID: "wellnest-test"})
	sensor.newClient = func(*mqtt.ClientOptions) mqtt.Client { return client }

	ctx, cancel := context.WithCancel(context.Background())
	readings, err := sensor.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if client.topic != "wearable/steps" {
		t.Errorf("subscribed topic = %q", client.topic)
	}

	client.handler(client, &fakeMessage{topic: "wearable/steps", payload: []byte(`{"steps": 321}`)})
	client.handler(client, &fakeMessage{topic: "wearable/steps", payload: []byte("garbage")})
	client.handler(client, &fakeMessage{topic: "wearable/steps", payload: []byte("400")})

	if got := receive(t, readings); got != 321 {
		t.Errorf("first reading = %d, want 321", got)
	}
	if got := receive(t, readings); got != 400 {
		t.Errorf("second reading = %d, want 400", got)
	}

	cancel()
	for range readings {
	}
	if !client.disconnected {
		t.Error("client not disconnected after cancel")
	}
	// Late messages after shutdown are dropped.
	client.handler(client, &fakeMessage{topic: "wearable/steps", payload: []byte("500")})
}

func TestMQTTSensorConnectError(t *testing.T) {
	sensor := NewMQTTSensor(MQTTConfig{Broker: "tcp://localhost:1883", Topic: "steps"})
	sensor.newClient = func(*mqtt.ClientOptions) mqtt.Client { return &failingClient{} }
	if _, err := sensor.Subscribe(t.Context()); err == nil {
		t.Error("Subscribe() succeeded with a failing broker")
	}
}

type failingClient struct {
	mqtt.Client
}

func (c *failingClient) Connect() mqtt.Token {
	return &fakeToken{err: context.DeadlineExceeded}
}

func TestReaderSensor(t *testing.T) {
	input := "100\nnot a number\n{\"steps\": 150}\n\n"
	s := NewReaderSensor("stdin", strings.NewReader(input))

	ch, err := s.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	var got []int64
	for raw := range ch {
		got = append(got, raw)
	}
	if len(got) != 2 || got[0] != 100 || got[1] != 150 {
		t.Errorf("readings = %v, want [100 150]", got)
	}
}

func TestReaderSensorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewReaderSensor("stdin", strings.NewReader("1\n2\n3\n"))
	ch, err := s.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	<-ch
	cancel()
	for range ch {
	}
}
