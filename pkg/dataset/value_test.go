package dataset

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Value
	}{
		{"empty", "", Value{}},
		{"whitespace", "   ", Value{}},
		{"plain", "1234", Value{Magnitude: 1234}},
		{"thousands", "12,345", Value{Magnitude: 12345}},
		{"millions", "1,234,567", Value{Magnitude: 1234567}},
		{"decimal", "12.5", Value{Magnitude: 12.5}},
		{"sentinel", "D", Value{Magnitude: 50, Suppressed: true}},
		{"sentinel padded", " D ", Value{}},
		{"sentinel trailing space", "D ", Value{}},
		{"padded number", " 1,200 ", Value{Magnitude: 1200}},
		{"lowercase sentinel", "d", Value{}},
		{"text", "n/a", Value{}},
		{"negative", "-5", Value{}},
		{"nan", "NaN", Value{}},
		{"inf", "Inf", Value{}},
		{"dash", "-", Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseValue(tt.raw); got != tt.want {
				t.Errorf("ParseValue(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRecordValueMissingYear(t *testing.T) {
	r := Record{Country: "Syria", Region: "Asia", Values: map[int]string{2013: "10"}}
	if got := r.Value(2014); got != (Value{}) {
		t.Errorf("Value(2014) = %+v, want zero", got)
	}
	if got := r.Value(2013); got.Magnitude != 10 {
		t.Errorf("Value(2013) = %+v, want 10", got)
	}
}
