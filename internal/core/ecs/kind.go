package ecs

// Kind identifies a component type. Each entity holds at most one component
// per kind, and system requirements and queries are expressed in kinds.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindTransform
	KindVelocity
	KindMesh
	KindMaterial
	KindCamera
	KindDialogue
	KindBillboard
	KindPlayerControl
	KindNPCBehavior
	KindCollider
	KindAudio
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindTransform:     "transform",
	KindVelocity:      "velocity",
	KindMesh:          "mesh",
	KindMaterial:      "material",
	KindCamera:        "camera",
	KindDialogue:      "dialogue",
	KindBillboard:     "billboard",
	KindPlayerControl: "playerControl",
	KindNPCBehavior:   "npcBehavior",
	KindCollider:      "collider",
	KindAudio:         "audio",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
