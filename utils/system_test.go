package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMemUsage(t *testing.T) {
	mem := GetMemUsage()
	assert.Contains(t, mem, "Alloc = ")
	assert.Contains(t, mem, "NumGC = ")
}
