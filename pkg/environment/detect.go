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
	"strings"

	"github.com/openbmc/hostctl/pkg/service/bridge"
)

// detectBridgeType selects sysfs GPIO on ARM BMC kernels that expose it.
func detectBridgeType(machine, release string, hasGPIO bool) string {
	if !hasGPIO {
		return bridge.TypeVirtual
	}
	machine = strings.ToLower(machine)
	release = strings.ToLower(release)
	if strings.HasPrefix(machine, "arm") || strings.HasPrefix(machine, "aarch64") || strings.Contains(release, "aspeed") {
		return bridge.TypeSysfs
	}
	return bridge.TypeVirtual
}
