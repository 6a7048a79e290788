package model

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	LineNameClock      = "fsi_clk"
	LineNameData       = "fsi_data"
	LineNameEnable     = "fsi_enable"
	LineNameSideSelect = "cronus_sel"
)

// MandatoryLineNames returns the names of all lines that must be configured.
func MandatoryLineNames() []string {
	return []string{LineNameClock, LineNameData, LineNameEnable, LineNameSideSelect}
}

// LineConfiguration holds the GPIO lines used to bring up the host.
type LineConfiguration struct {
	// Mandatory lines by name
	Lines map[string]Pin `yaml:"lines" json:"lines"`
	// Optional lines that are driven to their polarity during bring-up
	Optionals []OptionalPin `yaml:"optionals,omitempty" json:"optionals,omitempty"`
}

// Get returns the pin of the mandatory line with given name.
func (c LineConfiguration) Get(name string) (Pin, error) {
	if p, found := c.Lines[name]; found {
		return p, nil
	}
	return Pin{}, errors.Wrapf(NotFoundError, "line '%s'", name)
}

// Validate the given configuration, returning nil on ok,
// or an error upon validation issues.
func (c LineConfiguration) Validate() error {
	used := make(map[int]string)
	use := func(name string, p Pin) error {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(ValidationError, "Error in line '%s': %s", name, err.Error())
		}
		if other, found := used[p.Pin]; found {
			return errors.Wrapf(ValidationError, "Pin %d used by both '%s' and '%s'", p.Pin, other, name)
		}
		used[p.Pin] = name
		return nil
	}
	mandatory := MandatoryLineNames()
	if missing := lo.Without(mandatory, lo.Keys(c.Lines)...); len(missing) > 0 {
		return errors.Wrapf(ValidationError, "Mandatory lines missing: %s", strings.Join(missing, ", "))
	}
	if unknown := lo.Without(lo.Keys(c.Lines), mandatory...); len(unknown) > 0 {
		sort.Strings(unknown)
		return errors.Wrapf(ValidationError, "Unknown lines: %s (use optionals for other lines)", strings.Join(unknown, ", "))
	}
	for _, name := range mandatory {
		if err := use(name, c.Lines[name]); err != nil {
			return err
		}
	}
	for i, o := range c.Optionals {
		if o.Name == "" {
			return errors.Wrapf(ValidationError, "Optional line %d has no name", i)
		}
		if err := use(o.Name, o.Pin); err != nil {
			return err
		}
	}
	return nil
}

// ParseLineConfiguration decodes a YAML encoded line configuration
// and validates it.
func ParseLineConfiguration(data []byte) (LineConfiguration, error) {
	var c LineConfiguration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return LineConfiguration{}, errors.Wrap(err, "Failed to parse line configuration")
	}
	if err := c.Validate(); err != nil {
		return LineConfiguration{}, maskAny(err)
	}
	return c, nil
}

// LoadLineConfiguration reads and validates the line configuration
// from the YAML file at given path.
func LoadLineConfiguration(path string) (LineConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LineConfiguration{}, errors.Wrapf(err, "Failed to read line configuration '%s'", path)
	}
	c, err := ParseLineConfiguration(data)
	if err != nil {
		return LineConfiguration{}, errors.Wrapf(err, "In '%s'", path)
	}
	return c, nil
}
