package button

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Released, "Released"},
		{Pressed, "Pressed"},
		{State(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateOpposite(t *testing.T) {
	if Released.Opposite() != Pressed {
		t.Error("Released.Opposite() should be Pressed")
	}
	if Pressed.Opposite() != Released {
		t.Error("Pressed.Opposite() should be Released")
	}
}

func TestZeroStateIsReleased(t *testing.T) {
	var s State
	if s != Released {
		t.Errorf("zero State = %v, want Released", s)
	}
}
