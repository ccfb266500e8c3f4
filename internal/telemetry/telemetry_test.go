package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/roomsense/roomrank/internal/store"
)

func TestParseSensorSubject(t *testing.T) {
	tests := []struct {
		subject    string
		roomName   string
		sensorType string
		ok         bool
	}{
		{"rooms.sensor.C-201.co2", "C-201", "co2", true},
		{"rooms.sensor.lab_1.temperature", "lab_1", "temperature", true},
		{"rooms.ranking.completed", "", "", false},
		{"rooms.sensor.C-201", "", "", false},
		{"rooms.sensor.C-201.co2.extra", "", "", false},
		{"rooms.sensor..co2", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			room, sensor, ok := ParseSensorSubject(tt.subject)
			if ok != tt.ok || room != tt.roomName || sensor != tt.sensorType {
				t.Errorf("got (%q, %q, %v), want (%q, %q, %v)",
					room, sensor, ok, tt.roomName, tt.sensorType, tt.ok)
			}
		})
	}
}

func TestSensorSubjectRoundTrip(t *testing.T) {
	subject := SubjectSensorReading("C-201", "co2")
	room, sensor, ok := ParseSensorSubject(subject)
	if !ok || room != "C-201" || sensor != "co2" {
		t.Errorf("round trip gave (%q, %q, %v)", room, sensor, ok)
	}
}

func TestSubjectTokenSanitization(t *testing.T) {
	subject := SubjectSensorReading("Room 2.1", "air quality")
	if subject != "rooms.sensor.Room_2_1.air_quality" {
		t.Errorf("got %q", subject)
	}
}

// fake bus that invokes handlers synchronously
type fakeClient struct {
	handlers map[string]func(string, []byte)
}

func newFakeClient() *fakeClient {
	return &fakeClient{handlers: make(map[string]func(string, []byte))}
}
func (f *fakeClient) Publish(_ string, _ interface{}) error { return nil }
func (f *fakeClient) Subscribe(subject string, handler func(string, []byte)) error {
	f.handlers[subject] = handler
	return nil
}
func (f *fakeClient) Close() {}

func (f *fakeClient) deliver(t *testing.T, subject string, payload interface{}) {
	t.Helper()
	h, ok := f.handlers[SubjectSensorWildcard]
	if !ok {
		t.Fatal("no wildcard subscription")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	h(subject, data)
}

type captureStore struct {
	store.Store
	readings []*store.SensorReading
}

func (c *captureStore) InsertReading(_ context.Context, r *store.SensorReading) error {
	c.readings = append(c.readings, r)
	return nil
}

func TestIngestorStoresReadings(t *testing.T) {
	fc := newFakeClient()
	cs := &captureStore{}
	ing := NewIngestor(fc, cs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := ing.Start(); err != nil {
		t.Fatal(err)
	}

	fc.deliver(t, "rooms.sensor.C-201.co2", SensorReadingEvent{Value: 812, Unit: "ppm"})

	if len(cs.readings) != 1 {
		t.Fatalf("stored %d readings, want 1", len(cs.readings))
	}
	r := cs.readings[0]
	if r.RoomName != "C-201" || r.SensorType != "co2" || r.Value != 812 {
		t.Errorf("stored reading %+v", r)
	}
	if r.RecordedAt.IsZero() {
		t.Error("recorded_at should default to now")
	}
}

func TestIngestorPayloadOverridesSubject(t *testing.T) {
	fc := newFakeClient()
	cs := &captureStore{}
	ing := NewIngestor(fc, cs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := ing.Start(); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)
	fc.deliver(t, "rooms.sensor.gateway.temperature", SensorReadingEvent{
		RoomName:   "C-305",
		SensorType: "temperature",
		Value:      21.5,
		RecordedAt: at,
	})

	if len(cs.readings) != 1 {
		t.Fatalf("stored %d readings, want 1", len(cs.readings))
	}
	r := cs.readings[0]
	if r.RoomName != "C-305" {
		t.Errorf("room %q, want payload value", r.RoomName)
	}
	if !r.RecordedAt.Equal(at) {
		t.Errorf("recorded_at %v, want %v", r.RecordedAt, at)
	}
}

func TestIngestorSkipsBadSubjects(t *testing.T) {
	fc := newFakeClient()
	cs := &captureStore{}
	ing := NewIngestor(fc, cs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := ing.Start(); err != nil {
		t.Fatal(err)
	}

	h := fc.handlers[SubjectSensorWildcard]
	h("rooms.ranking.completed", []byte(`{}`))
	h("rooms.sensor.C-201.co2", []byte(`not json`))

	if len(cs.readings) != 0 {
		t.Errorf("stored %d readings, want 0", len(cs.readings))
	}
}
