// Package music retrieves and decodes background tracks for the narration
// pipeline. A track source may be an http(s) URL or a local file path; the
// supported containers are wav, mp3, and flac.
package music

// NoneSource is the sentinel source meaning "no background track".
const NoneSource = "none"

// Selection identifies the background track for a single assembly call. It
// is an immutable per-call value; an empty or sentinel source selects the
// direct, music-free path.
type Selection struct {
	// Source is an http(s) URL, a local file path, or NoneSource.
	Source string

	// Gain is the linear amplitude factor applied to the track before it is
	// summed with speech. Callers keep this at or below 0.5 so speech stays
	// intelligible.
	Gain float64
}

// None returns the selection for unmixed speech.
func None() Selection {
	return Selection{Source: NoneSource}
}

// Enabled reports whether a background track is selected.
func (s Selection) Enabled() bool {
	return s.Source != "" && s.Source != NoneSource
}
