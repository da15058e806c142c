package bench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/challenai/hincr"
)

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs([]string{"ns:counters", "row1", "cf", "col", "5000", "INCREMENT_WRITE"})
	require.Nil(t, err)
	assert.Equal(t, "ns:counters", args.Table)
	assert.Equal(t, []byte("row1"), args.Cell.Row)
	assert.Equal(t, []byte("cf"), args.Cell.Family)
	assert.Equal(t, []byte("col"), args.Cell.Qualifier)
	assert.Equal(t, 5000, args.Iterations)
	assert.Equal(t, ModeIncrementWrite, args.Mode)
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want error
	}{
		{"too few", []string{"t", "r", "cf", "c", "1"}, ErrUsage},
		{"too many", []string{"t", "r", "cf", "c", "1", "PUT", "x"}, ErrUsage},
		{"none", nil, ErrUsage},
		{"count not a number", []string{"t", "r", "cf", "c", "many", "PUT"}, ErrInvalidArgument},
		{"negative count", []string{"t", "r", "cf", "c", "-1", "PUT"}, ErrInvalidArgument},
		{"unknown mode", []string{"t", "r", "cf", "c", "1", "DECREMENT"}, ErrInvalidArgument},
		{"mode is case sensitive", []string{"t", "r", "cf", "c", "1", "put"}, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.argv)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestModeOp(t *testing.T) {
	assert.Equal(t, hincr.AtomicIncrement{Amount: 1}, ModeIncrement.Op())
	assert.Equal(t, hincr.DeltaPut{Value: 1}, ModeIncrementWrite.Op())
	assert.Equal(t, hincr.LiteralPut{Value: 1}, ModePut.Op())
}
