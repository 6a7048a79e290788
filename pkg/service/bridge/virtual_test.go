//    Copyright 2026 The hostctl Authors
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package bridge

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualRecordsOperations(t *testing.T) {
	v := NewVirtualBridge(true)
	p, err := v.Output(7, false, true)
	require.NoError(t, err)
	assert.True(t, v.Level(7))
	assert.Equal(t, 1, v.OpenPins())

	require.NoError(t, p.Write(false))
	assert.False(t, v.Level(7))
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 0, v.OpenPins())

	assert.Equal(t, []Op{
		{Kind: OpOpen, Pin: 7, Value: true},
		{Kind: OpWrite, Pin: 7, Value: false},
		{Kind: OpClose, Pin: 7},
	}, v.Ops())
	assert.Equal(t, 1, v.Writes())

	err = p.Write(true)
	require.Error(t, err)
	assert.Equal(t, ErrPinClosed, pkgerrors.Cause(err))
}

func TestVirtualFailWhen(t *testing.T) {
	v := NewVirtualBridge(false)
	boom := errors.New("boom")
	v.FailWhen(func(op Op) error {
		if op.Kind == OpWrite && op.Pin == 3 {
			return boom
		}
		return nil
	})
	p, err := v.Output(3, false, false)
	require.NoError(t, err)
	assert.Equal(t, boom, p.Write(true))
	assert.Equal(t, 0, v.Writes())
	assert.Empty(t, v.Ops())
}

func TestVirtualReopenKeepsLevel(t *testing.T) {
	v := NewVirtualBridge(true)
	p, err := v.Output(5, false, false)
	require.NoError(t, err)
	require.NoError(t, p.Write(true))
	require.NoError(t, p.Close())

	p, err = v.Output(5, false, false)
	require.NoError(t, err)
	assert.True(t, v.Level(5))
	require.NoError(t, p.Close())

	assert.Equal(t, []Op{
		{Kind: OpOpen, Pin: 5, Value: false},
		{Kind: OpWrite, Pin: 5, Value: true},
		{Kind: OpClose, Pin: 5},
		{Kind: OpOpen, Pin: 5, Value: true},
		{Kind: OpClose, Pin: 5},
	}, v.Ops())
}
