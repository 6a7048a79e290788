// Copyright 2026 The hostctl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openbmc/hostctl/pkg/service/bridge"
)

func TestDetectBridgeType(t *testing.T) {
	assert.Equal(t, bridge.TypeSysfs, detectBridgeType("armv7l", "5.15.0-openbmc", true))
	assert.Equal(t, bridge.TypeSysfs, detectBridgeType("armv6l", "6.1.15", true))
	assert.Equal(t, bridge.TypeSysfs, detectBridgeType("aarch64", "6.6.0", true))
	assert.Equal(t, bridge.TypeSysfs, detectBridgeType("x86_64", "6.0.0-aspeed", true))
	assert.Equal(t, bridge.TypeVirtual, detectBridgeType("x86_64", "6.8.0-generic", true))
	assert.Equal(t, bridge.TypeVirtual, detectBridgeType("armv7l", "5.15.0-openbmc", false))
}
