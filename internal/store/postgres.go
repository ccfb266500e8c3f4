package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRoom(ctx context.Context, room *Room) error {
	facilitiesJSON, _ := json.Marshal(room.Facilities)
	return s.pool.QueryRow(ctx, `
		INSERT INTO rooms (name, building, floor, facilities)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
			SET building = EXCLUDED.building,
			    floor = EXCLUDED.floor,
			    facilities = EXCLUDED.facilities,
			    updated_at = now()
		RETURNING room_id, created_at, updated_at`,
		room.Name, room.Building, room.Floor, facilitiesJSON,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
}

func (s *PostgresStore) GetRoom(ctx context.Context, name string) (*Room, error) {
	r := &Room{}
	var facilitiesJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT room_id, name, building, floor, facilities, created_at, updated_at
		FROM rooms WHERE name = $1`, name,
	).Scan(&r.ID, &r.Name, &r.Building, &r.Floor, &facilitiesJSON, &r.CreatedAt, &r.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if facilitiesJSON != nil {
		_ = json.Unmarshal(facilitiesJSON, &r.Facilities)
	}
	return r, nil
}

func (s *PostgresStore) ListRooms(ctx context.Context) ([]*Room, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT room_id, name, building, floor, facilities, created_at, updated_at
		FROM rooms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		r := &Room{}
		var facilitiesJSON []byte
		if err := rows.Scan(&r.ID, &r.Name, &r.Building, &r.Floor, &facilitiesJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		if facilitiesJSON != nil {
			_ = json.Unmarshal(facilitiesJSON, &r.Facilities)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (s *PostgresStore) InsertReading(ctx context.Context, r *SensorReading) error {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO sensor_readings (room_name, sensor_type, value, unit, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING reading_id`,
		r.RoomName, r.SensorType, r.Value, r.Unit, r.RecordedAt,
	).Scan(&r.ID)
}

// RecentAverages averages the newest `window` readings per sensor type for
// one room, mirroring what the ranking path feeds into score mapping.
func (s *PostgresStore) RecentAverages(ctx context.Context, roomName string, window int) (map[string]SensorAverage, error) {
	if window <= 0 {
		window = 10
	}
	rows, err := s.pool.Query(ctx, `
		SELECT sensor_type, AVG(value), COUNT(*), MAX(recorded_at)
		FROM (
			SELECT sensor_type, value, recorded_at,
			       ROW_NUMBER() OVER (PARTITION BY sensor_type ORDER BY recorded_at DESC) AS rn
			FROM sensor_readings
			WHERE room_name = $1
		) recent
		WHERE rn <= $2
		GROUP BY sensor_type`,
		roomName, window)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := make(map[string]SensorAverage)
	for rows.Next() {
		var a SensorAverage
		if err := rows.Scan(&a.SensorType, &a.Average, &a.Samples, &a.LatestAt); err != nil {
			return nil, err
		}
		averages[a.SensorType] = a
	}
	return averages, rows.Err()
}

func (s *PostgresStore) CreateEvent(ctx context.Context, e *CalendarEvent) error {
	if e.Status == "" {
		e.Status = EventConfirmed
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO calendar_events (room_name, title, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING event_id, created_at`,
		e.RoomName, e.Title, e.StartTime, e.EndTime, e.Status,
	).Scan(&e.ID, &e.CreatedAt)
}

func (s *PostgresStore) HasConflict(ctx context.Context, roomName string, start, end time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM calendar_events
			WHERE room_name = $1
			  AND status = $2
			  AND start_time < $4
			  AND end_time > $3
		)`,
		roomName, EventConfirmed, start, end,
	).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM rooms),
			(SELECT COUNT(*) FROM sensor_readings),
			(SELECT COUNT(*) FROM calendar_events)`,
	).Scan(&st.Rooms, &st.SensorReadings, &st.CalendarEvents)
	if err != nil {
		return nil, err
	}
	return st, nil
}
