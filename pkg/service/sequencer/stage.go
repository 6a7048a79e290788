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

// Stage of the bring-up sequence.
type Stage int

const (
	StageIdle Stage = iota
	StageOpening
	StageConfiguring
	StageStandbyInit
	StageClearingPipes
	StageArmingAttentions
	StageSelectingFlashSide
	StageTriggering
	StageSettling
	StageClosed
	StageDebugShortcut
	StageFailed
)

var stageNames = [...]string{
	StageIdle:               "idle",
	StageOpening:            "opening",
	StageConfiguring:        "configuring",
	StageStandbyInit:        "standby-init",
	StageClearingPipes:      "clearing-pipes",
	StageArmingAttentions:   "arming-attentions",
	StageSelectingFlashSide: "selecting-flash-side",
	StageTriggering:         "triggering",
	StageSettling:           "settling",
	StageClosed:             "closed",
	StageDebugShortcut:      "debug-shortcut",
	StageFailed:             "failed",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}
