package analysis

import (
	"math"
	"testing"
)

func TestDominantFrequency(t *testing.T) {
	const (
		fps = 60.0
		n   = 600
	)
	tests := []struct {
		name string
		freq float64
	}{
		{"half hertz", 0.5},
		{"two hertz", 2},
		{"five hertz", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, n)
			for i := range data {
				data[i] = 3 + math.Sin(2*math.Pi*tt.freq*float64(i)/fps)
			}
			got := DominantFrequency(data, fps)
			if math.Abs(got-tt.freq) > fps/n {
				t.Errorf("DominantFrequency = %f, want %f", got, tt.freq)
			}
		})
	}
}

func TestPowerSpectrum_RemovesMean(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 10
	}
	for i, v := range PowerSpectrum(data) {
		if v > 1e-9 {
			t.Fatalf("bin %d = %g for a constant series", i, v)
		}
	}
}

func TestPowerSpectrum_Short(t *testing.T) {
	if ps := PowerSpectrum([]float64{1}); ps != nil {
		t.Errorf("expected nil spectrum, got %v", ps)
	}
	if f := DominantFrequency(nil, 60); f != 0 {
		t.Errorf("expected 0, got %f", f)
	}
}
