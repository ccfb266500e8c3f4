package scoring

import (
	"fmt"
	"strings"
)

// MappingConfig holds the thresholds for one sensor's score mapping.
// Thresholds follow EN 16798-1 Category II, EN 12464-1 and WHO guidance;
// they are data, not behavior, so alternative profiles can be swapped in.
type MappingConfig struct {
	Name          string
	Unit          string
	OptimalMin    float64
	OptimalMax    float64
	AcceptableMin float64
	AcceptableMax float64
}

var (
	// TemperatureConfig: EN 16798-1 Category II for office spaces.
	TemperatureConfig = MappingConfig{Name: "Temperature", Unit: "°C", OptimalMin: 20, OptimalMax: 24, AcceptableMin: 18, AcceptableMax: 26}
	// CO2Config: EN 16798-1 Category II, ~800 ppm above outdoor baseline.
	CO2Config = MappingConfig{Name: "CO2", Unit: "ppm", OptimalMax: 600, AcceptableMax: 1000}
	// HumidityConfig: EN 16798-1 plus health research on dry/damp extremes.
	HumidityConfig = MappingConfig{Name: "Humidity", Unit: "%RH", OptimalMin: 40, OptimalMax: 60, AcceptableMin: 30, AcceptableMax: 70}
	// LightConfig: EN 12464-1 for office and classroom lighting.
	LightConfig = MappingConfig{Name: "Light", Unit: "lux", OptimalMin: 300, OptimalMax: 500, AcceptableMin: 200, AcceptableMax: 750}
	// NoiseConfig: WHO guidelines and EN 16798-1.
	NoiseConfig = MappingConfig{Name: "Noise", Unit: "dBA", OptimalMax: 35, AcceptableMax: 45}
	// VOCConfig: WELL Building Standard.
	VOCConfig = MappingConfig{Name: "VOC", Unit: "ppb", OptimalMax: 200, AcceptableMax: 400}
	// AirQualityConfig: US EPA AQI scale adapted for indoor use.
	AirQualityConfig = MappingConfig{Name: "AirQuality", Unit: "AQI", OptimalMax: 50, AcceptableMax: 100}
)

// MapCentered scores a value whose optimal range sits in the middle:
// 1.0 inside the optimal band, sloping to 0.5 at the acceptable bounds,
// decaying toward 0 beyond them.
func MapCentered(value float64, c MappingConfig) float64 {
	switch {
	case value >= c.OptimalMin && value <= c.OptimalMax:
		return 1.0
	case value >= c.AcceptableMin && value < c.OptimalMin:
		span := c.OptimalMin - c.AcceptableMin
		if span == 0 {
			return 0.5
		}
		return 0.5 + 0.5*(value-c.AcceptableMin)/span
	case value > c.OptimalMax && value <= c.AcceptableMax:
		span := c.AcceptableMax - c.OptimalMax
		if span == 0 {
			return 0.5
		}
		return 1.0 - 0.5*(value-c.OptimalMax)/span
	case value < c.AcceptableMin:
		decay := (c.AcceptableMin - value) / (c.AcceptableMax - c.AcceptableMin)
		return clamp(0.5*(1-decay), 0, 1)
	default:
		decay := (value - c.AcceptableMax) / (c.AcceptableMax - c.AcceptableMin)
		return clamp(0.5*(1-decay), 0, 1)
	}
}

// MapLowerBetter scores a value where less is always better: 1.0 up to the
// optimal ceiling, 0.5 at the acceptable ceiling, decaying toward 0 past it.
func MapLowerBetter(value float64, c MappingConfig) float64 {
	switch {
	case value <= 0:
		return 1.0
	case value <= c.OptimalMax:
		return 1.0
	case value <= c.AcceptableMax:
		span := c.AcceptableMax - c.OptimalMax
		if span == 0 {
			return 0.5
		}
		return 1.0 - 0.5*(value-c.OptimalMax)/span
	default:
		decay := (value - c.AcceptableMax) / c.AcceptableMax
		return clamp(0.5*(1-decay), 0, 1)
	}
}

// Per-sensor mappings with the standard configs.

func MapTemperature(v float64) float64 { return MapCentered(v, TemperatureConfig) }
func MapHumidity(v float64) float64    { return MapCentered(v, HumidityConfig) }
func MapLight(v float64) float64       { return MapCentered(v, LightConfig) }
func MapCO2(v float64) float64         { return MapLowerBetter(v, CO2Config) }
func MapNoise(v float64) float64       { return MapLowerBetter(v, NoiseConfig) }
func MapVOC(v float64) float64         { return MapLowerBetter(v, VOCConfig) }
func MapAirQuality(v float64) float64  { return MapLowerBetter(v, AirQualityConfig) }

var sensorMappings = map[string]func(float64) float64{
	"temperature": MapTemperature,
	"co2":         MapCO2,
	"humidity":    MapHumidity,
	"light":       MapLight,
	"noise":       MapNoise,
	"voc":         MapVOC,
	"air_quality": MapAirQuality,
}

// MappingFor resolves a sensor type name to its mapping function.
func MappingFor(sensorType string) (func(float64) float64, error) {
	key := strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(sensorType))
	fn, ok := sensorMappings[key]
	if !ok {
		return nil, fmt.Errorf("unknown sensor type %q", sensorType)
	}
	return fn, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
