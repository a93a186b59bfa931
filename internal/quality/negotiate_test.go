package quality

import "testing"

func videoKeys(presets []VideoPreset) []string {
	keys := make([]string, len(presets))
	for i, p := range presets {
		keys[i] = p.Key
	}
	return keys
}

func sameKeys(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestNegotiateVideoTolerance(t *testing.T) {
	// 714 lines is within 85% of 720, so the 720p preset stays on offer.
	got := videoKeys(NegotiateVideo([]int{714, 480, 360}))
	want := []string{"720p", "480p", "360p", "144p"}
	if !sameKeys(got, want) {
		t.Fatalf("offered presets: got %v, want %v", got, want)
	}
}

func TestNegotiateVideoLowSource(t *testing.T) {
	got := videoKeys(NegotiateVideo([]int{200}))
	want := []string{"144p"}
	if !sameKeys(got, want) {
		t.Fatalf("offered presets: got %v, want %v", got, want)
	}
}

func TestNegotiateVideoEmptyProbeOffersEverything(t *testing.T) {
	got := videoKeys(NegotiateVideo(nil))
	want := videoKeys(VideoPresets)
	if !sameKeys(got, want) {
		t.Fatalf("offered presets: got %v, want %v", got, want)
	}
}

func TestNegotiateVideoAllFilteredFallsBack(t *testing.T) {
	// Nothing satisfies even 144p, so the full table is offered anyway.
	got := videoKeys(NegotiateVideo([]int{50}))
	want := videoKeys(VideoPresets)
	if !sameKeys(got, want) {
		t.Fatalf("offered presets: got %v, want %v", got, want)
	}
}

func TestNegotiateVideoPreservesTableOrder(t *testing.T) {
	// Capabilities arrive unsorted; the offer still follows the static table.
	got := videoKeys(NegotiateVideo([]int{360, 1080, 480}))
	want := []string{"1080p", "720p", "480p", "360p", "144p"}
	if !sameKeys(got, want) {
		t.Fatalf("offered presets: got %v, want %v", got, want)
	}
}

func TestNegotiateAudioAlwaysFullTable(t *testing.T) {
	for _, bitrates := range [][]int{nil, {128}, {320, 64}} {
		got := NegotiateAudio(bitrates)
		if len(got) != len(AudioPresets) {
			t.Fatalf("audio offer for %v: got %d presets, want %d", bitrates, len(got), len(AudioPresets))
		}
		for i, p := range got {
			if p.Key != AudioPresets[i].Key {
				t.Fatalf("audio offer order for %v: got %q at %d, want %q", bitrates, p.Key, i, AudioPresets[i].Key)
			}
		}
	}
}

func TestPresetLookup(t *testing.T) {
	if p, ok := VideoPresetByKey("720p"); !ok || p.Height != 720 {
		t.Fatalf("VideoPresetByKey(720p): got %+v ok=%v", p, ok)
	}
	if _, ok := VideoPresetByKey("999p"); ok {
		t.Fatalf("VideoPresetByKey(999p): got ok=true, want false")
	}
	if p, ok := AudioPresetByKey("128kbps"); !ok || p.Bitrate != 128 {
		t.Fatalf("AudioPresetByKey(128kbps): got %+v ok=%v", p, ok)
	}
	if _, ok := AudioPresetByKey("1kbps"); ok {
		t.Fatalf("AudioPresetByKey(1kbps): got ok=true, want false")
	}
}
