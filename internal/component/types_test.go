package component

import "testing"

func TestParseOwner(t *testing.T) {
	tests := []struct {
		in     string
		want   Owner
		wantOK bool
	}{
		{"player", Player, true},
		{"Cpu", Cpu, true},
		{"NATURE", Nature, true},
		{"alien", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOwner(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseOwner(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
	for _, o := range []Owner{Nature, Player, Cpu} {
		if got, ok := ParseOwner(o.String()); !ok || got != o {
			t.Errorf("Expected %s to round-trip, got %v", o, got)
		}
	}
}
