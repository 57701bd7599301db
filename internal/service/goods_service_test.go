package service

import "testing"

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"blank means zero", "", "0", false},
		{"plain decimal", "0.125", "0.125", false},
		{"integer", "12", "12", false},
		{"negative rejected", "-0.5", "", true},
		{"garbage rejected", "abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMeasurement("cbm", tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMeasurement(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("parseMeasurement(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}
