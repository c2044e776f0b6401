package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeFormats(t *testing.T) {
	got, err := parseTime("2025-03-03T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), got)

	got, err = parseTime("2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), got)

	_, err = parseTime("03/03/2025")
	assert.Error(t, err)
}

func TestParseWindowRequiresBothSides(t *testing.T) {
	window, err := parseWindow("2025-03-03", "")
	require.NoError(t, err)
	assert.Nil(t, window.Start)
	assert.Nil(t, window.End)

	window, err = parseWindow("2025-03-03", "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, window.Start)
	require.NotNil(t, window.End)
	assert.True(t, window.End.After(*window.Start))

	_, err = parseWindow("bad", "2025-03-10")
	assert.Error(t, err)
}
