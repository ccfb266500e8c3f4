package telemetry

import "strings"

const (
	SubjectSensorWildcard = "rooms.sensor.>"
	SubjectRankingDone    = "rooms.ranking.completed"

	StreamName   = "ROOMRANK_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectSensorReading(roomName, sensorType string) string {
	return "rooms.sensor." + sanitizeToken(roomName) + "." + sanitizeToken(sensorType)
}

func SubjectRoomCreated(roomName string) string {
	return "rooms.calendar." + sanitizeToken(roomName) + ".created"
}

func SubjectEventBooked(roomName string) string {
	return "rooms.calendar." + sanitizeToken(roomName) + ".booked"
}

// ParseSensorSubject splits a rooms.sensor.<room>.<type> subject back into
// its room and sensor tokens. Returns false for anything else.
func ParseSensorSubject(subject string) (roomName, sensorType string, ok bool) {
	parts := strings.Split(subject, ".")
	if len(parts) != 4 || parts[0] != "rooms" || parts[1] != "sensor" {
		return "", "", false
	}
	if parts[2] == "" || parts[3] == "" {
		return "", "", false
	}
	return parts[2], parts[3], true
}

// NATS tokens cannot contain dots, spaces or wildcards.
func sanitizeToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ' ', '*', '>':
			return '_'
		}
		return r
	}, s)
}
