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

package api

import (
	"github.com/openbmc/hostctl/model"
)

// Empty is used for requests & responses without content.
type Empty struct{}

// SetDebugModeRequest is the request of HostControl.SetDebugMode.
type SetDebugModeRequest struct {
	Enabled bool `json:"enabled"`
}

// SetFlashSideRequest is the request of HostControl.SetFlashSide.
type SetFlashSideRequest struct {
	FlashSide model.FlashSide `json:"flash_side"`
}
