package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringerCount struct{ v string }

func (s stringerCount) String() string { return s.v }

func TestToUint64(t *testing.T) {
	u64 := uint64(42)
	var nilU64 *uint64
	i32 := int32(7)
	u64Ptr := &u64

	tests := []struct {
		name string
		in   any
		want uint64
	}{
		{name: "nil", in: nil, want: 0},
		{name: "uint64", in: uint64(100), want: 100},
		{name: "int64 from sqlite", in: int64(12), want: 12},
		{name: "uint8", in: uint8(3), want: 3},
		{name: "pointer to uint64", in: &u64, want: 42},
		{name: "nullable nil pointer", in: nilU64, want: 0},
		{name: "pointer to pointer", in: &u64Ptr, want: 42},
		{name: "pointer to int32", in: &i32, want: 7},
		{name: "decimal bytes from mysql", in: []byte("1500"), want: 1500},
		{name: "numeric string from postgres", in: "98765", want: 98765},
		{name: "decimal with zero scale", in: "10.000", want: 10},
		{name: "integral float", in: float64(9), want: 9},
		{name: "big int", in: big.NewInt(77), want: 77},
		{name: "stringer", in: stringerCount{v: "55"}, want: 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUint64(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToUint64Rejects(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		negative bool
	}{
		{name: "negative int", in: int64(-1), negative: true},
		{name: "negative big int", in: big.NewInt(-5), negative: true},
		{name: "negative float", in: float64(-2), negative: true},
		{name: "fractional float", in: 1.5},
		{name: "fractional decimal", in: "3.25"},
		{name: "garbage", in: "abc"},
		{name: "empty", in: ""},
		{name: "overflow", in: "184467440737095516160"},
		{name: "unsupported", in: struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToUint64(tt.in)
			require.Error(t, err)
			if tt.negative {
				assert.ErrorIs(t, err, ErrNegative)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CHAINSTATUS_TEST_STR", "  value ")
	t.Setenv("CHAINSTATUS_TEST_INT", "12")
	t.Setenv("CHAINSTATUS_TEST_BAD_INT", "-3")
	t.Setenv("CHAINSTATUS_TEST_DUR", "90s")

	assert.Equal(t, "value", Env("CHAINSTATUS_TEST_STR", "def"))
	assert.Equal(t, "def", Env("CHAINSTATUS_TEST_MISSING", "def"))
	assert.Equal(t, 12, EnvInt("CHAINSTATUS_TEST_INT", 1))
	assert.Equal(t, 1, EnvInt("CHAINSTATUS_TEST_BAD_INT", 1))
	assert.Equal(t, "1m30s", EnvDuration("CHAINSTATUS_TEST_DUR", 0).String())
}
