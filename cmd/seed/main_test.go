package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBooks(t *testing.T) {
	rows := generateBooks(rand.New(rand.NewSource(1)), 50)
	require.Len(t, rows, 50)

	titles := make(map[string]bool)
	for _, row := range rows {
		require.Len(t, row, 3)
		for _, col := range row {
			assert.NotEmpty(t, col)
		}
		titles[row[0].(string)] = true
	}
	assert.Len(t, titles, 50, "titles carry a sequence number and never repeat")
}
