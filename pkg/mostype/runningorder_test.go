// SPDX-License-Identifier: Apache-2.0

package mostype_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbc/mosromgr-sub000/internal/testutil"
	"github.com/bbc/mosromgr-sub000/pkg/mostype"
)

func TestNewRunningOrderRequiresCreate(t *testing.T) {
	m := parseMessage(t, testutil.RoStoryAppend)
	_, err := mostype.NewRunningOrder(m)
	assert.ErrorIs(t, err, mostype.ErrMalformedMessage)
}

func TestRunningOrderAccessors(t *testing.T) {
	ro := newRO(t)
	assert.Equal(t, "RO1", ro.ROID())
	assert.Equal(t, "TEST RO", ro.Slug())

	id, ok := ro.MessageID()
	require.True(t, ok)
	assert.Equal(t, 1001, id)
	assert.False(t, ro.Completed())
}

func TestRunningOrderTiming(t *testing.T) {
	ro := newRO(t)

	start, ok := ro.StartTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, 1, 1, 12, 30, 0, 0, time.UTC), start.UTC())

	assert.Equal(t, 90.0, ro.Duration())

	end, ok := ro.EndTime()
	require.True(t, ok)
	assert.Equal(t, start.Add(90*time.Second), end)
}

func TestRunningOrderStoriesCarryOffsets(t *testing.T) {
	ro := newRO(t)
	stories := ro.Stories()
	require.Len(t, stories, 3)

	off, ok := stories[2].Offset()
	require.True(t, ok)
	assert.Equal(t, 60.0, off)
}

func TestRunningOrderSerialization(t *testing.T) {
	ro := newRO(t)

	b, err := ro.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(b), "<roID>RO1</roID>")

	var buf bytes.Buffer
	n, err := ro.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, string(b), buf.String())
}
