package quality

// VideoPreset is a named video quality tier with its nominal height.
type VideoPreset struct {
	Key    string
	Label  string
	Height int
}

// AudioPreset is a named audio quality tier with its target bitrate in kbps.
type AudioPreset struct {
	Key     string
	Label   string
	Bitrate int
}

// Static preset tables, best first. Ordering here is the ordering users see.
var (
	VideoPresets = []VideoPreset{
		{Key: "1080p", Label: "1080p Full HD", Height: 1080},
		{Key: "720p", Label: "720p HD", Height: 720},
		{Key: "480p", Label: "480p SD", Height: 480},
		{Key: "360p", Label: "360p Low", Height: 360},
		{Key: "144p", Label: "144p Very Low", Height: 144},
	}

	AudioPresets = []AudioPreset{
		{Key: "320kbps", Label: "320kbps Best", Bitrate: 320},
		{Key: "256kbps", Label: "256kbps High", Bitrate: 256},
		{Key: "128kbps", Label: "128kbps Medium", Bitrate: 128},
		{Key: "64kbps", Label: "64kbps Low", Bitrate: 64},
	}
)

// VideoPresetByKey reports whether key names a valid static video preset.
func VideoPresetByKey(key string) (VideoPreset, bool) {
	for _, p := range VideoPresets {
		if p.Key == key {
			return p, true
		}
	}
	return VideoPreset{}, false
}

// AudioPresetByKey reports whether key names a valid static audio preset.
func AudioPresetByKey(key string) (AudioPreset, bool) {
	for _, p := range AudioPresets {
		if p.Key == key {
			return p, true
		}
	}
	return AudioPreset{}, false
}
