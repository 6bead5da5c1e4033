package audio

import (
	"encoding/binary"
	"testing"

	"github.com/gonewx/icedm/pkg/fx"
)

func pcmOf(values ...int16) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(-v))
	}
	return buf
}

func TestPCMStreamer(t *testing.T) {
	st := NewPCMStreamer(pcmOf(16384, -32768, 0))
	if st.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", st.Len())
	}

	samples := make([][2]float64, 2)
	n, ok := st.Stream(samples)
	if n != 2 || !ok {
		t.Fatalf("first Stream = (%d, %v), want (2, true)", n, ok)
	}
	if samples[0][0] != 0.5 || samples[0][1] != -0.5 {
		t.Errorf("sample 0 = %v, want [0.5 -0.5]", samples[0])
	}
	if samples[1][0] != -1 {
		t.Errorf("sample 1 left = %v, want -1", samples[1][0])
	}

	n, ok = st.Stream(samples)
	if n != 1 || !ok {
		t.Fatalf("second Stream = (%d, %v), want (1, true)", n, ok)
	}
	n, ok = st.Stream(samples)
	if n != 0 || ok {
		t.Errorf("drained Stream = (%d, %v), want (0, false)", n, ok)
	}
}

func TestSpeakerIgnoresSoundsBeforeInitialize(t *testing.T) {
	calls := 0
	s := NewSpeaker(44100, func(string, int) []byte {
		calls++
		return nil
	}, 1)

	s.PlaySound(fx.Sound{Name: "freeze", Volume: 1})
	s.Close()

	if calls != 0 {
		t.Errorf("synth called %d times without an open device", calls)
	}
}
