package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestSweepGeneratorEnds(t *testing.T) {
	rate := beep.SampleRate(1000)
	g := NewSweepGenerator(rate, 400, 100, 100*time.Millisecond)

	samples := make([][2]float64, 64)
	n, ok := g.Stream(samples)
	if !ok || n != 64 {
		t.Fatalf("first chunk: got n=%d ok=%v, want 64 true", n, ok)
	}
	n, ok = g.Stream(samples)
	if !ok || n != 36 {
		t.Fatalf("second chunk: got n=%d ok=%v, want 36 true", n, ok)
	}
	n, ok = g.Stream(samples)
	if ok || n != 0 {
		t.Fatalf("drained: got n=%d ok=%v, want 0 false", n, ok)
	}
	if g.Err() != nil {
		t.Errorf("Expected no error, got: %v", g.Err())
	}
}

func TestSweepGeneratorRange(t *testing.T) {
	g := NewSweepGenerator(beep.SampleRate(44100), 900, 300, 50*time.Millisecond)
	samples := make([][2]float64, 512)
	for {
		n, ok := g.Stream(samples)
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", i, samples[i][0])
			}
			if samples[i][0] != samples[i][1] {
				t.Fatalf("sample %d: channels differ", i)
			}
		}
		if !ok {
			break
		}
	}
}

func TestBuzzGeneratorFadesIn(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewBuzzGenerator(rate, 120)

	samples := make([][2]float64, 100)
	n, ok := g.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("got n=%d ok=%v", n, ok)
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample should be silent, got %f", samples[0][0])
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1 || samples[i][0] > 1 {
			t.Errorf("sample %d out of range: %f", i, samples[i][0])
		}
	}
}

func TestCuesAreFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	for name, cue := range map[string]beep.Streamer{
		"fire":   FireCue(rate, 0.5),
		"impact": ImpactCue(rate, 0.5),
		"silent": ImpactCue(rate, 0),
	} {
		total := 0
		samples := make([][2]float64, 256)
		for i := 0; i < 100; i++ {
			n, ok := cue.Stream(samples)
			total += n
			if !ok {
				break
			}
		}
		if total == 0 || total > rate.N(time.Second) {
			t.Errorf("%s: streamed %d samples", name, total)
		}
	}
}

func TestSilentVolume(t *testing.T) {
	cue := ImpactCue(beep.SampleRate(8000), 0)
	samples := make([][2]float64, 200)
	n, _ := cue.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 || samples[i][1] != 0 {
			t.Fatalf("sample %d not silent: %v", i, samples[i])
		}
	}
}

func TestUninitializedSpeakerIsSilent(t *testing.T) {
	var cues Cues = NewSpeaker(1)
	cues.Fire()
	cues.Impact()
	cues.Close()

	cues = Nop{}
	cues.Fire()
	cues.Impact()
	cues.Close()
}
