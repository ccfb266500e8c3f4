package telemetry

import "time"

// SensorReadingEvent is what sensor gateways publish on
// rooms.sensor.<room>.<type>. Room and sensor type fall back to the
// subject tokens when omitted from the payload.
type SensorReadingEvent struct {
	RoomName   string    `json:"room_name,omitempty"`
	SensorType string    `json:"sensor_type,omitempty"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at,omitempty"`
}

// RankingCompletedEvent announces a finished ranking run.
type RankingCompletedEvent struct {
	RoomsEvaluated   int       `json:"rooms_evaluated"`
	BestRoom         string    `json:"best_room,omitempty"`
	BestScore        float64   `json:"best_score,omitempty"`
	ConsistencyRatio float64   `json:"consistency_ratio"`
	Timestamp        time.Time `json:"timestamp"`
}

// EventBookedEvent mirrors a calendar booking onto the bus.
type EventBookedEvent struct {
	RoomName  string    `json:"room_name"`
	Title     string    `json:"title,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
