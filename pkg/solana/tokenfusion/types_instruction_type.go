package tokenfusion

import "bytes"

type InstructionType uint8

const (
	Unknown InstructionType = iota

	InstructionTypeInitV1
	InstructionTypeFusionIntoV1
	InstructionTypeFusionFromV1
	InstructionTypeUpdateV1
	InstructionTypeSetPauseV1
	InstructionTypeSetAuthorityV1
	InstructionTypeDestroyV1
)

var instructionDiscriminators = map[InstructionType][]byte{
	InstructionTypeInitV1:         initV1InstructionDiscriminator,
	InstructionTypeFusionIntoV1:   fusionIntoV1InstructionDiscriminator,
	InstructionTypeFusionFromV1:   fusionFromV1InstructionDiscriminator,
	InstructionTypeUpdateV1:       updateV1InstructionDiscriminator,
	InstructionTypeSetPauseV1:     setPauseV1InstructionDiscriminator,
	InstructionTypeSetAuthorityV1: setAuthorityV1InstructionDiscriminator,
	InstructionTypeDestroyV1:      destroyV1InstructionDiscriminator,
}

// GetInstructionType identifies a fusion instruction by its discriminator.
func GetInstructionType(data []byte) InstructionType {
	for instructionType, discriminator := range instructionDiscriminators {
		if bytes.HasPrefix(data, discriminator) {
			return instructionType
		}
	}
	return Unknown
}

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitV1:
		return "init_v1"
	case InstructionTypeFusionIntoV1:
		return "fusion_into_v1"
	case InstructionTypeFusionFromV1:
		return "fusion_from_v1"
	case InstructionTypeUpdateV1:
		return "update_v1"
	case InstructionTypeSetPauseV1:
		return "set_pause_v1"
	case InstructionTypeSetAuthorityV1:
		return "set_authority_v1"
	case InstructionTypeDestroyV1:
		return "destroy_v1"
	}
	return "unknown"
}
