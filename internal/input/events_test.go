package input

import "testing"

func TestEventQuits(t *testing.T) {
	cases := []struct {
		typ   EventType
		quits bool
	}{
		{EventClose, true},
		{EventEscape, true},
		{EventExpose, false},
	}
	for _, tt := range cases {
		if got := (Event{Type: tt.typ}).Quits(); got != tt.quits {
			t.Errorf("Event{%v}.Quits() = %v, want %v", tt.typ, got, tt.quits)
		}
	}
}
