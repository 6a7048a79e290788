package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLines = `
lines:
  fsi_clk:    { pin: 4 }
  fsi_data:   { pin: 5 }
  fsi_enable: { pin: 24, active_low: true }
  cronus_sel: { pin: 6 }
optionals:
  - { name: BMC_THROTTLE, pin: 61, polarity: true }
  - { name: PCIE_RESET, pin: 62 }
`

func TestParseLineConfiguration(t *testing.T) {
	c, err := ParseLineConfiguration([]byte(sampleLines))
	require.NoError(t, err)

	clk, err := c.Get(LineNameClock)
	require.NoError(t, err)
	assert.Equal(t, 4, clk.Pin)
	enable, err := c.Get(LineNameEnable)
	require.NoError(t, err)
	assert.True(t, enable.ActiveLow)

	require.Len(t, c.Optionals, 2)
	assert.Equal(t, "BMC_THROTTLE", c.Optionals[0].Name)
	assert.Equal(t, 61, c.Optionals[0].Pin.Pin)
	assert.True(t, c.Optionals[0].Polarity)
	assert.False(t, c.Optionals[1].Polarity)
}

func TestParseLineConfigurationMissingMandatory(t *testing.T) {
	_, err := ParseLineConfiguration([]byte(`
lines:
  fsi_clk:  { pin: 4 }
  fsi_data: { pin: 5 }
`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), LineNameEnable)
}

func TestParseLineConfigurationDuplicatePin(t *testing.T) {
	_, err := ParseLineConfiguration([]byte(`
lines:
  fsi_clk:    { pin: 4 }
  fsi_data:   { pin: 5 }
  fsi_enable: { pin: 24 }
  cronus_sel: { pin: 6 }
optionals:
  - { name: CLASH, pin: 5 }
`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestParseLineConfigurationUnnamedOptional(t *testing.T) {
	_, err := ParseLineConfiguration([]byte(`
lines:
  fsi_clk:    { pin: 4 }
  fsi_data:   { pin: 5 }
  fsi_enable: { pin: 24 }
  cronus_sel: { pin: 6 }
optionals:
  - { pin: 9 }
`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestLoadLineConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleLines), 0644))
	c, err := LoadLineConfiguration(path)
	require.NoError(t, err)
	assert.Len(t, c.Lines, 4)

	_, err = LoadLineConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGetUnknownLine(t *testing.T) {
	var c LineConfiguration
	_, err := c.Get("nope")
	assert.True(t, IsNotFound(err))
}

func TestFlashSide(t *testing.T) {
	assert.NoError(t, FlashSidePrimary.Validate())
	assert.NoError(t, FlashSideGolden.Validate())
	assert.True(t, IsValidation(FlashSide("unknown").Validate()))
	assert.Equal(t, FlashSidePrimary, DefaultBootConfiguration().FlashSide)
	assert.False(t, DefaultBootConfiguration().DebugMode)

	w, ok := FlashSideWrite(FlashSidePrimary)
	assert.True(t, ok)
	assert.Equal(t, RegisterWrite{0x281C, 0x30000000}, w)
	w, ok = FlashSideWrite(FlashSideGolden)
	assert.True(t, ok)
	assert.Equal(t, RegisterWrite{0x281C, 0x30900000}, w)
	_, ok = FlashSideWrite("unknown")
	assert.False(t, ok)
}

func TestParseLineConfigurationUnknownLine(t *testing.T) {
	_, err := ParseLineConfiguration([]byte(`
lines:
  fsi_clk:    { pin: 4 }
  fsi_data:   { pin: 5 }
  fsi_enable: { pin: 24 }
  cronus_sel: { pin: 6 }
  bmc_throttle: { pin: 61 }
`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "bmc_throttle")
}

func TestParseLineConfigurationAllMissing(t *testing.T) {
	_, err := ParseLineConfiguration([]byte(`lines: {}`))
	require.Error(t, err)
	for _, name := range MandatoryLineNames() {
		assert.Contains(t, err.Error(), name)
	}
}
