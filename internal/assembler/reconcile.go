package assembler

// Kind says what visual a segment is built from.
type Kind int

const (
	KindStill Kind = iota
	KindScreencast
)

// SegmentSpec is the fully reconciled timing plan for one slide's segment.
type SegmentSpec struct {
	Index  int
	Kind   Kind
	Visual string // still image or screencast clip
	Audio  string // narration artifact

	// Duration is the total segment length in seconds. It never truncates
	// the narration.
	Duration float64
	// Freeze is how long the screencast's last frame is held to cover
	// narration that outlasts the clip. Zero for stills and for clips at
	// least as long as the padded narration.
	Freeze float64
	// PaddingMS is the symmetric silence around the narration.
	PaddingMS int
}

// Reconcile computes a slide's segment timing from its audio duration,
// its clip duration (ignored for stills) and the configured padding.
//
// The narration is padded on both sides. A still is shown exactly as long
// as the padded narration. A screencast runs for the longer of its own
// length and the padded narration; when the narration wins, the last frame
// freezes for the difference, and on a tie nothing freezes. The clip's own
// audio track is always discarded in favor of the narration.
func Reconcile(index int, kind Kind, visual, audioPath string, audioDur, clipDur float64, paddingMS int) SegmentSpec {
	padded := audioDur + 2*(float64(paddingMS)/1000)

	spec := SegmentSpec{
		Index:     index,
		Kind:      kind,
		Visual:    visual,
		Audio:     audioPath,
		PaddingMS: paddingMS,
	}

	if kind == KindStill {
		spec.Duration = padded
		return spec
	}

	if padded > clipDur {
		spec.Duration = padded
		spec.Freeze = padded - clipDur
	} else {
		spec.Duration = clipDur
	}
	return spec
}
