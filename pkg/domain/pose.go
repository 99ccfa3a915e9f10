package domain

// Pose is one variant of the character's head pose.
// Non-center poses only ever connect to center, never to each other.
type Pose string

const (
	PoseCenter         Pose = "center"
	PoseTiltLeftSmall  Pose = "tilt_left_small"
	PoseTiltRightSmall Pose = "tilt_right_small"
	PoseNodDownSmall   Pose = "nod_down_small"
	PoseNodUpSmall     Pose = "nod_up_small"
)

// Poses returns all known poses in a stable order.
func Poses() []Pose {
	return []Pose{
		PoseCenter,
		PoseTiltLeftSmall,
		PoseTiltRightSmall,
		PoseNodDownSmall,
		PoseNodUpSmall,
	}
}

// Valid reports whether p is a member of the closed pose set.
func (p Pose) Valid() bool {
	for _, known := range Poses() {
		if p == known {
			return true
		}
	}
	return false
}

// IsCenter reports whether p is the upright reference pose.
func (p Pose) IsCenter() bool {
	return p == PoseCenter
}
