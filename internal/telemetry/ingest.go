package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/roomsense/roomrank/internal/metrics"
	"github.com/roomsense/roomrank/internal/store"
)

// Ingestor writes sensor readings arriving on the bus into the store.
type Ingestor struct {
	client Client
	store  store.Store
	logger *slog.Logger
}

func NewIngestor(client Client, s store.Store, logger *slog.Logger) *Ingestor {
	return &Ingestor{client: client, store: s, logger: logger}
}

// Start subscribes to the sensor wildcard. Handlers run on the NATS
// callback goroutine; each message gets its own short timeout.
func (i *Ingestor) Start() error {
	return i.client.Subscribe(SubjectSensorWildcard, i.handleReading)
}

func (i *Ingestor) handleReading(subject string, data []byte) {
	roomName, sensorType, ok := ParseSensorSubject(subject)
	if !ok {
		i.logger.Warn("unrecognized sensor subject", "subject", subject)
		return
	}

	var ev SensorReadingEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		i.logger.Warn("bad sensor payload", "subject", subject, "error", err)
		return
	}
	if ev.RoomName == "" {
		ev.RoomName = roomName
	}
	if ev.SensorType == "" {
		ev.SensorType = sensorType
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := i.store.InsertReading(ctx, &store.SensorReading{
		RoomName:   ev.RoomName,
		SensorType: ev.SensorType,
		Value:      ev.Value,
		Unit:       ev.Unit,
		RecordedAt: ev.RecordedAt,
	})
	if err != nil {
		i.logger.Error("failed to store sensor reading",
			"room", ev.RoomName, "sensor", ev.SensorType, "error", err)
		return
	}
	metrics.SensorReadingsIngested.WithLabelValues("nats").Inc()
}
