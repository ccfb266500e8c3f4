package scoring

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMapTemperature(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"optimal", 22, 1.0},
		{"optimal lower edge", 20, 1.0},
		{"optimal upper edge", 24, 1.0},
		{"cool but acceptable", 19, 0.75},
		{"warm but acceptable", 25, 0.75},
		{"below acceptable", 17, 0.4375},
		{"well above acceptable", 30, 0.25},
		{"extreme heat", 40, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapTemperature(tt.value); !almostEqual(got, tt.want) {
				t.Errorf("MapTemperature(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestMapCO2(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"fresh air", 500, 1.0},
		{"optimal ceiling", 600, 1.0},
		{"elevated", 800, 0.75},
		{"acceptable ceiling", 1000, 0.5},
		{"stuffy", 1500, 0.25},
		{"severe", 3000, 0.0},
		{"nonsense negative reading", -5, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapCO2(tt.value); !almostEqual(got, tt.want) {
				t.Errorf("MapCO2(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestMapHumidityCentered(t *testing.T) {
	if got := MapHumidity(50); got != 1.0 {
		t.Errorf("MapHumidity(50) = %v, want 1.0", got)
	}
	// Symmetric slopes: 35%RH and 65%RH sit halfway between acceptable and
	// optimal on their respective sides.
	if got := MapHumidity(35); !almostEqual(got, 0.75) {
		t.Errorf("MapHumidity(35) = %v, want 0.75", got)
	}
	if got := MapHumidity(65); !almostEqual(got, 0.75) {
		t.Errorf("MapHumidity(65) = %v, want 0.75", got)
	}
}

func TestMappingFor(t *testing.T) {
	fn, err := MappingFor("Air Quality")
	if err != nil {
		t.Fatal(err)
	}
	if got := fn(25); got != 1.0 {
		t.Errorf("air quality mapping(25) = %v, want 1.0", got)
	}

	if _, err := MappingFor("radiation"); err == nil {
		t.Error("expected error for unknown sensor type")
	}
}

func TestSeatingScore(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		required int
		want     float64
	}{
		{"no requirement with seats", 10, 0, 1.0},
		{"no requirement no seats", 0, 0, 0.5},
		{"exact fit", 20, 20, 1.0},
		{"generous fit", 25, 20, 1.0},
		{"undersized", 10, 20, 0.625},
		{"double capacity", 40, 20, 0.95},
		{"vastly oversized", 200, 20, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeatingScore(tt.capacity, tt.required); !almostEqual(got, tt.want) {
				t.Errorf("SeatingScore(%d, %d) = %v, want %v", tt.capacity, tt.required, got, tt.want)
			}
		})
	}
}

func TestEquipmentScore(t *testing.T) {
	if got := EquipmentScore(0, 0); got != 1.0 {
		t.Errorf("no requirement: got %v, want 1.0", got)
	}
	if got := EquipmentScore(0, 5); got != 0.0 {
		t.Errorf("missing computers: got %v, want 0.0", got)
	}
	if got := EquipmentScore(3, 5); !almostEqual(got, 0.6) {
		t.Errorf("partial: got %v, want 0.6", got)
	}
	if got := EquipmentScore(10, 5); got != 1.0 {
		t.Errorf("surplus: got %v, want 1.0", got)
	}
}

func TestAVScore(t *testing.T) {
	if got := AVScore(false, true); got != 0.0 {
		t.Errorf("required missing projector: got %v, want 0.0", got)
	}
	if got := AVScore(true, true); got != 1.0 {
		t.Errorf("required present: got %v, want 1.0", got)
	}
	if got := AVScore(true, false); got != 1.0 {
		t.Errorf("bonus projector: got %v, want 1.0", got)
	}
	if got := AVScore(false, false); got != 0.8 {
		t.Errorf("neither: got %v, want 0.8", got)
	}
}
