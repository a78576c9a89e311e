package gesture

import "testing"

func TestReading_Message(t *testing.T) {
	r := Reading{Pose: OpenPalm, Side: SideRight}
	if got := r.Message(); got != "Open Palm - Right" {
		t.Errorf("Message() = %q, want %q", got, "Open Palm - Right")
	}
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		msg     string
		want    Reading
		wantErr bool
	}{
		{msg: "Open Palm - Right", want: Reading{Pose: OpenPalm, Side: SideRight}},
		{msg: "Closed Fist - Left", want: Reading{Pose: ClosedFist, Side: SideLeft}},
		{msg: "Open Palm - Center\n", want: Reading{Pose: OpenPalm, Side: SideCenter}},
		{msg: "Open Palm", wantErr: true},
		{msg: "Thumbs Up - Left", wantErr: true},
		{msg: "Open Palm - Up", wantErr: true},
		{msg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := ParseMessage(tt.msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMessage(%q) error = %v, wantErr %v", tt.msg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMessage(%q) = %+v, want %+v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestSteering_Apply(t *testing.T) {
	var s Steering

	steps := []struct {
		msg  string
		want Control
	}{
		{msg: "Open Palm - Left", want: Control{Speed: 10, Turn: -50}},
		{msg: "Open Palm - Right", want: Control{Speed: 10, Turn: 50}},
		{msg: "Open Palm - Center", want: Control{Speed: 10, Turn: 0}},
		{msg: "Closed Fist - Right", want: Control{}},
		{msg: "Open Palm - Right", want: Control{Speed: 10, Turn: 50}},
		{msg: "garbage", want: Control{}},
	}

	for i, step := range steps {
		got := s.Apply(step.msg)
		if got != step.want {
			t.Errorf("step %d: Apply(%q) = %+v, want %+v", i, step.msg, got, step.want)
		}
		if s.Control() != got {
			t.Errorf("step %d: Control() = %+v, want %+v", i, s.Control(), got)
		}
	}
}
