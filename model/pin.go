package model

import (
	"github.com/pkg/errors"
)

// Pin identifies a single GPIO pin used by host control.
type Pin struct {
	// Pin number as known by the GPIO backend
	Pin int `yaml:"pin" json:"pin"`
	// If set, a logical high is driven as an electrical low
	ActiveLow bool `yaml:"active_low,omitempty" json:"active_low,omitempty"`
}

// OptionalPin is a pin that is driven to a fixed polarity during bring-up.
type OptionalPin struct {
	Pin `yaml:",inline"`
	// Name of the pin (used for logging)
	Name string `yaml:"name" json:"name"`
	// Level the pin is driven to while the host is configured
	Polarity bool `yaml:"polarity" json:"polarity"`
}

// Validate the given pin, returning nil on ok,
// or an error upon validation issues.
func (p Pin) Validate() error {
	if p.Pin < 0 {
		return errors.Wrapf(ValidationError, "invalid pin number %d", p.Pin)
	}
	return nil
}
