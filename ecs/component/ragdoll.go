package component

// RagdollPart names a limb slot inside a Ragdoll.
type RagdollPart int

const (
	PartTorso RagdollPart = iota
	PartHead
	PartLeftArm
	PartRightArm
	PartLeftLeg
	PartRightLeg
	RagdollPartCount
)

const (
	JointNeck = iota
	JointNeckLimit
	JointLeftShoulder
	JointRightShoulder
	JointLeftHip
	JointRightHip
	RagdollJointCount
)

// Ragdoll groups the body and joint entities created by one rig build.
type Ragdoll struct {
	Parts  [RagdollPartCount]uint64
	Joints [RagdollJointCount]uint64
}

var RagdollComponent = NewComponent[Ragdoll]()

// RagdollMember marks a part body and points back at its group entity.
type RagdollMember struct {
	Group uint64
	Part  RagdollPart
}

var RagdollMemberComponent = NewComponent[RagdollMember]()
