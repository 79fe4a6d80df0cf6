package automix

import (
	"testing"

	"github.com/cwbudde/automix/buffer"
)

func TestRenderStemsAndFromStems(t *testing.T) {
	m, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	stems := map[string][]*buffer.SampleBuffer{
		"drums": {monoTrack(sine32(0.4, 100, testSampleRate, 512))},
		"vocals": {monoTrack(sine32(0.3, 2000, testSampleRate, 512))},
	}

	mixed, err := m.RenderStems(stems)
	if err != nil {
		t.Fatal(err)
	}
	if len(mixed) != 2 {
		t.Fatalf("expected 2 stem mixes, got %d", len(mixed))
	}
	for name, buf := range mixed {
		if buf.Channels() != 2 || buf.Len() != 512 {
			t.Fatalf("stem %q: got (%d,%d), want (2,512)", name, buf.Channels(), buf.Len())
		}
	}

	master, err := m.RenderFromStems(mixed, []string{"drums", "vocals"})
	if err != nil {
		t.Fatal(err)
	}
	if master.Channels() != 2 || master.Len() != 512 {
		t.Fatalf("master: got (%d,%d), want (2,512)", master.Channels(), master.Len())
	}
}

func TestRenderFromStemsUnknownName(t *testing.T) {
	m, err := New(testSampleRate, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.RenderFromStems(map[string]*buffer.SampleBuffer{}, []string{"missing"})
	if err == nil {
		t.Fatal("expected error for unknown stem name")
	}
}
