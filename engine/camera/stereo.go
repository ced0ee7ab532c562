package camera

// Eye selects which stereo eye a StereoViewMatrix call returns, for
// split-screen/VR rendering where the same scene draws twice per frame
// from two horizontally offset viewpoints.
type Eye int

const (
	// EyeLeft is the left eye, offset toward the camera's left along its right vector.
	EyeLeft Eye = iota
	// EyeRight is the right eye, offset toward the camera's right along its right vector.
	EyeRight
)
