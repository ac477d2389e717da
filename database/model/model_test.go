package model

import "testing"

func TestPredictionIsPositive(t *testing.T) {
	tests := []struct {
		result string
		want   bool
	}{
		{"Diabetic", true},
		{"Not Diabetic", false},
		{"Heart Disease", true},
		{"No Heart Disease", false},
		{"no parkinson's disease", false},
		{"Parkinson's Disease", true},
		{"Nothing unusual", true},
	}
	for _, tt := range tests {
		p := Prediction{Result: tt.result}
		if got := p.IsPositive(); got != tt.want {
			t.Errorf("IsPositive(%q) = %v, want %v", tt.result, got, tt.want)
		}
	}
}
