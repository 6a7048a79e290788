package model

import "fmt"

// RegisterWrite is a single privileged CFAM register write.
type RegisterWrite struct {
	Address uint32 `json:"address"`
	Value   uint32 `json:"value"`
}

// String returns a human readable form of the write.
func (w RegisterWrite) String() string {
	return fmt.Sprintf("0x%04X=0x%08X", w.Address, w.Value)
}

var (
	// Attention arming writes, issued in this order during bring-up.
	AttentionA = RegisterWrite{Address: 0x081C, Value: 0x20000000}
	AttentionB = RegisterWrite{Address: 0x100D, Value: 0x40000000}
	AttentionC = RegisterWrite{Address: 0x100B, Value: 0xFFFFFFFF}

	// Flash side selection writes
	PrimarySideWrite = RegisterWrite{Address: 0x281C, Value: 0x30000000}
	GoldenSideWrite  = RegisterWrite{Address: 0x281C, Value: 0x30900000}

	// Starts execution on the host
	GoWrite = RegisterWrite{Address: 0x281C, Value: 0xB0000000}
)

// AttentionWrites returns the attention arming writes in issue order.
func AttentionWrites() []RegisterWrite {
	return []RegisterWrite{AttentionA, AttentionB, AttentionC}
}

// FlashSideWrite returns the register write that selects the given flash side.
// Returns false for an unknown flash side.
func FlashSideWrite(side FlashSide) (RegisterWrite, bool) {
	switch side {
	case FlashSidePrimary:
		return PrimarySideWrite, true
	case FlashSideGolden:
		return GoldenSideWrite, true
	default:
		return RegisterWrite{}, false
	}
}
