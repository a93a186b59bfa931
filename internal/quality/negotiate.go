package quality

// heightTolerance accepts near-miss source renditions: a 714-line rendition
// still satisfies the 720p preset (714 >= 0.85 * 720).
const heightTolerance = 0.85

// NegotiateVideo filters the static video table down to presets the source
// can plausibly satisfy. An empty capability set means the probe failed, and
// the full table is offered unfiltered — the download itself may then fail,
// but the user is never blocked on a flaky probe. The same fallback applies
// when filtering removes everything. Order always follows the static table.
func NegotiateVideo(availableHeights []int) []VideoPreset {
	if len(availableHeights) == 0 {
		return append([]VideoPreset(nil), VideoPresets...)
	}

	var offered []VideoPreset
	for _, p := range VideoPresets {
		floor := int(float64(p.Height) * heightTolerance)
		for _, h := range availableHeights {
			if h >= floor {
				offered = append(offered, p)
				break
			}
		}
	}
	if len(offered) == 0 {
		return append([]VideoPreset(nil), VideoPresets...)
	}
	return offered
}

// NegotiateAudio always offers the full static table: the backend transcodes
// to any target bitrate regardless of what the source streams at.
func NegotiateAudio(availableBitrates []int) []AudioPreset {
	return append([]AudioPreset(nil), AudioPresets...)
}
