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

package sequencer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeMerge(t *testing.T) {
	var o Outcome
	assert.False(t, o.Failed())
	assert.Equal(t, "ok", o.String())

	o = o.Merge(nil)
	assert.False(t, o.Failed())
	assert.Equal(t, CodeOK, o.Code())

	first := errors.New("first")
	o = o.Merge(first)
	assert.True(t, o.Failed())
	assert.False(t, o.IsHard())
	assert.Equal(t, CodeFailed, o.Code())

	// Successes never clear a failure
	o = o.Merge(nil).Merge(nil)
	assert.True(t, o.Failed())
	assert.Equal(t, 1, o.Failures())

	o = o.Merge(errors.Wrap(ErrInvalidFlashSide, "'x'"))
	assert.True(t, o.IsHard())
	assert.Equal(t, CodeFailed|CodeInvalidFlashSide, o.Code())
	assert.Equal(t, 2, o.Failures())
	assert.Equal(t, first, o.Err())
	assert.Contains(t, o.String(), "first")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "idle", StageIdle.String())
	assert.Equal(t, "arming-attentions", StageArmingAttentions.String())
	assert.Equal(t, "debug-shortcut", StageDebugShortcut.String())
}
