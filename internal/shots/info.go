package shots

// DeliveryInfo is the in-memory working record for one shot in a delivery
// session. The catalog's persistent Shot record only changes when the linker
// marks a delivery complete.
type DeliveryInfo struct {
	Sequence      string
	Shot          string
	ID            int64
	FirstFrame    int
	LastFrame     int
	SequencePath  string
	VersionNumber int
	ProjectCode   string

	// Advisory fields written during validation and delivery for progress
	// reporting; never parsed programmatically.
	ValidationError   string
	ValidationMessage string
	FramesDelivered   int
}

// MissingFrameRange reports whether the catalog had no usable first frame.
func (i *DeliveryInfo) MissingFrameRange() bool {
	return i.FirstFrame == missingFirstFrame
}

// FrameCount returns the number of frames delivery will link (closed range).
func (i *DeliveryInfo) FrameCount() int {
	return i.LastFrame - i.FirstFrame + 1
}

// Label returns the operator-facing "sequence/shot" label.
func (i *DeliveryInfo) Label() string {
	return i.Sequence + "/" + i.Shot
}

// Sentinels written when the version record has no usable frame values. The
// asymmetry (-1 versus 0) is inherited from the original workflow and kept so
// downstream checks behave identically.
const (
	missingFirstFrame = -1
	missingLastFrame  = 0
)
