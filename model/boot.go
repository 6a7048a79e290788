package model

import "github.com/pkg/errors"

// FlashSide identifies which of the two redundant BIOS flash images
// the host boots from.
type FlashSide string

const (
	FlashSidePrimary FlashSide = "primary"
	FlashSideGolden  FlashSide = "golden"

	DefaultFlashSide = FlashSidePrimary
)

// Validate the given flash side, returning nil on ok,
// or an error upon validation issues.
func (fs FlashSide) Validate() error {
	switch fs {
	case FlashSidePrimary, FlashSideGolden:
		return nil
	default:
		return errors.Wrapf(ValidationError, "invalid flash side '%s'", string(fs))
	}
}

// BootConfiguration holds the settings that are read once
// at the start of every boot attempt.
type BootConfiguration struct {
	// If set, the host is held in reset for external debug tooling
	// instead of being booted.
	DebugMode bool `json:"debug_mode"`
	// Side of the BIOS flash to boot from
	FlashSide FlashSide `json:"flash_side"`
}

// DefaultBootConfiguration returns the configuration the service starts with.
func DefaultBootConfiguration() BootConfiguration {
	return BootConfiguration{
		DebugMode: false,
		FlashSide: DefaultFlashSide,
	}
}
