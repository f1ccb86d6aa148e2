package main

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFlags(t *testing.T) {
	require.NoError(t, checkFlags(1, 1))
	require.NoError(t, checkFlags(1000, 10))

	tests := []struct {
		samples, concurrency int
		want                 string
	}{
		{0, 10, "-samples"},
		{-5, 10, "-samples"},
		{100, 0, "-c "},
		{100, -1, "-c "},
	}
	for _, tt := range tests {
		err := checkFlags(tt.samples, tt.concurrency)
		require.Error(t, err, "samples=%d c=%d", tt.samples, tt.concurrency)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestRandomPackage(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	for range 100 {
		p := randomPackage(r)
		require.NoError(t, p.Validate())
	}
}
