package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	c := Crypto{}
	found := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		found[c.Intn(5)] = true
	}

	a := assert.New(t)
	a.True(found[0])
	a.True(found[1])
	a.True(found[2])
	a.True(found[3])
	a.True(found[4])
	a.False(found[5])
}

func TestCrypto_Float64(t *testing.T) {
	c := Crypto{}
	a := assert.New(t)
	for i := 0; i < 1000; i++ {
		v := c.Float64()
		a.GreaterOrEqual(v, float64(0))
		a.Less(v, float64(1))
	}
}
