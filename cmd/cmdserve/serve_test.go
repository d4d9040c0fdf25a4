package main

import (
	"testing"

	"cmdserve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedClass(t *testing.T) {
	tests := []struct {
		in   string
		want cmdserve.SchedClass
	}{
		{"other", cmdserve.SchedOther},
		{"fifo", cmdserve.SchedFIFO},
		{"rr", cmdserve.SchedRR},
		{"batch", cmdserve.SchedBatch},
		{"idle", cmdserve.SchedIdle},
	}
	for _, tt := range tests {
		got, err := parseSchedClass(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := parseSchedClass("turbo")
	assert.Error(t, err)
}
