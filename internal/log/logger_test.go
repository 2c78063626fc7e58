// SPDX-License-Identifier: Apache-2.0

package log_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbc/mosromgr-sub000/internal/log"
)

func TestConfigureAndWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Configure(log.Config{Level: "debug", Output: &buf, Service: "mosromgr-test"})

	logger := log.WithComponent("merge")
	logger.Info().Str(log.FieldRoID, "RO1").Msg("merged")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "mosromgr-test", entry["service"])
	assert.Equal(t, "merge", entry[log.FieldComponent])
	assert.Equal(t, "RO1", entry[log.FieldRoID])
	assert.Equal(t, "merged", entry["message"])
}

func TestConfigureIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	// The first Configure in this binary wins; later calls are no-ops.
	log.Configure(log.Config{Output: &buf, Service: "other"})
	logger := log.Base()
	logger.Info().Msg("after")
	assert.NotPanics(t, func() { log.WithComponent("x") })
}
