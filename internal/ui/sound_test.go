package ui

import "testing"

func TestGeneratedCues(t *testing.T) {
	tests := []struct {
		name    string
		samples []byte
	}{
		{"chime", generateChime()},
		{"buzz", generateBuzz()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.samples) == 0 {
				t.Fatal("no samples generated")
			}
			// 16-bit stereo frames
			if len(tt.samples)%4 != 0 {
				t.Errorf("len = %d, not frame aligned", len(tt.samples))
			}

			// Decode and check every sample stays inside the headroom
			// and both channels carry the same signal
			nonZero := false
			for i := 0; i+3 < len(tt.samples); i += 4 {
				left := int16(tt.samples[i]) | int16(tt.samples[i+1])<<8
				right := int16(tt.samples[i+2]) | int16(tt.samples[i+3])<<8
				if left != right {
					t.Fatalf("frame %d: left %d != right %d", i/4, left, right)
				}
				if left > 12000 || left < -12000 {
					t.Fatalf("frame %d: sample %d outside headroom", i/4, left)
				}
				if left != 0 {
					nonZero = true
				}
			}
			if !nonZero {
				t.Error("all samples are silence")
			}
		})
	}
}

func TestSoundBankDisabled(t *testing.T) {
	b := NewSoundBank(false)
	// Must not touch the audio device when disabled
	b.PlayChime()
	b.PlayBuzz()
	if b.player != nil {
		t.Error("disabled bank created a player")
	}
	b.Close()
}
