// seed_rooms.go: standalone script to load rooms from a CSV and push sample
// sensor readings through the roomrank API.
//
// CSV columns: name,building,floor,seating,videoprojector,computers,whiteboard,robots
//
// Usage:
//
//	go run scripts/seed_rooms.go -rooms rooms.csv -api http://localhost:8700 -token admin-token -readings 5
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type facilities struct {
	SeatingCapacity int  `json:"seating_capacity"`
	Videoprojector  bool `json:"videoprojector"`
	Computers       int  `json:"computers"`
	Whiteboard      bool `json:"whiteboard"`
	Robots          bool `json:"robots"`
}

type room struct {
	Name       string     `json:"name"`
	Building   string     `json:"building,omitempty"`
	Floor      int        `json:"floor,omitempty"`
	Facilities facilities `json:"facilities"`
}

type reading struct {
	RoomName   string  `json:"room_name"`
	SensorType string  `json:"sensor_type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
}

// Plausible ambient ranges per sensor type
var sensorRanges = map[string][3]interface{}{
	"temperature": {18.0, 27.0, "celsius"},
	"humidity":    {30.0, 70.0, "percent"},
	"co2":         {450.0, 1400.0, "ppm"},
	"light":       {150.0, 700.0, "lux"},
	"noise":       {30.0, 55.0, "dBA"},
}

func main() {
	roomsPath := flag.String("rooms", "rooms.csv", "CSV file with room definitions")
	apiURL := flag.String("api", "http://localhost:8700", "roomrank API base URL")
	token := flag.String("token", "", "admin token for room creation")
	readings := flag.Int("readings", 0, "sample readings to push per room and sensor")
	flag.Parse()

	f, err := os.Open(*roomsPath)
	if err != nil {
		log.Fatalf("open rooms file: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		log.Fatalf("parse rooms file: %v", err)
	}

	created := 0
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "name") {
			continue // header
		}
		r, err := parseRoom(rec)
		if err != nil {
			log.Printf("skipping line %d: %v", i+1, err)
			continue
		}
		if err := postJSON(*apiURL+"/api/v1/rooms", *token, r); err != nil {
			log.Printf("create room %s: %v", r.Name, err)
			continue
		}
		created++

		for sensor, rng := range sensorRanges {
			lo, hi, unit := rng[0].(float64), rng[1].(float64), rng[2].(string)
			for n := 0; n < *readings; n++ {
				rd := reading{
					RoomName:   r.Name,
					SensorType: sensor,
					Value:      lo + rand.Float64()*(hi-lo),
					Unit:       unit,
				}
				if err := postJSON(*apiURL+"/api/v1/sensors/readings", "", rd); err != nil {
					log.Printf("reading for %s/%s: %v", r.Name, sensor, err)
				}
			}
		}
	}
	fmt.Printf("seeded %d rooms\n", created)
}

func parseRoom(rec []string) (*room, error) {
	if len(rec) < 8 {
		return nil, fmt.Errorf("want 8 columns, got %d", len(rec))
	}
	floor, _ := strconv.Atoi(strings.TrimSpace(rec[2]))
	seating, err := strconv.Atoi(strings.TrimSpace(rec[3]))
	if err != nil {
		return nil, fmt.Errorf("bad seating %q", rec[3])
	}
	computers, _ := strconv.Atoi(strings.TrimSpace(rec[5]))
	return &room{
		Name:     strings.TrimSpace(rec[0]),
		Building: strings.TrimSpace(rec[1]),
		Floor:    floor,
		Facilities: facilities{
			SeatingCapacity: seating,
			Videoprojector:  parseBool(rec[4]),
			Computers:       computers,
			Whiteboard:      parseBool(rec[6]),
			Robots:          parseBool(rec[7]),
		},
	}, nil
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

func postJSON(url, token string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %s", resp.Status)
	}
	return nil
}
