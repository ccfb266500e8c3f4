package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventConfirmed EventStatus = "confirmed"
	EventTentative EventStatus = "tentative"
	EventCancelled EventStatus = "cancelled"
)

// Facilities describes the fixed equipment of a room.
type Facilities struct {
	SeatingCapacity int  `json:"seating_capacity"`
	Videoprojector  bool `json:"videoprojector"`
	Computers       int  `json:"computers"`
	Whiteboard      bool `json:"whiteboard"`
	Robots          bool `json:"robots"`
}

// Room is a bookable space with its facilities.
type Room struct {
	ID         uuid.UUID  `json:"room_id"`
	Name       string     `json:"name"`
	Building   string     `json:"building,omitempty"`
	Floor      int        `json:"floor"`
	Facilities Facilities `json:"facilities"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SensorReading is a single measurement from one room sensor.
type SensorReading struct {
	ID         uuid.UUID `json:"reading_id"`
	RoomName   string    `json:"room_name"`
	SensorType string    `json:"sensor_type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SensorAverage is the windowed average of a room's recent readings for
// one sensor type.
type SensorAverage struct {
	SensorType string    `json:"sensor_type"`
	Average    float64   `json:"average"`
	Samples    int       `json:"samples"`
	LatestAt   time.Time `json:"latest_at"`
}

// CalendarEvent is a booking in a room's calendar.
type CalendarEvent struct {
	ID        uuid.UUID   `json:"event_id"`
	RoomName  string      `json:"room_name"`
	Title     string      `json:"title"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	Status    EventStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// Overlaps reports whether the event occupies any part of [start, end).
func (e *CalendarEvent) Overlaps(start, end time.Time) bool {
	return e.StartTime.Before(end) && e.EndTime.After(start)
}

// Stats summarizes stored volumes for the admin endpoint.
type Stats struct {
	Rooms          int `json:"rooms"`
	SensorReadings int `json:"sensor_readings"`
	CalendarEvents int `json:"calendar_events"`
}

type Store interface {
	// Rooms
	CreateRoom(ctx context.Context, room *Room) error
	GetRoom(ctx context.Context, name string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)

	// Sensor readings
	InsertReading(ctx context.Context, r *SensorReading) error
	RecentAverages(ctx context.Context, roomName string, window int) (map[string]SensorAverage, error)

	// Calendar
	CreateEvent(ctx context.Context, e *CalendarEvent) error
	HasConflict(ctx context.Context, roomName string, start, end time.Time) (bool, error)

	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}
