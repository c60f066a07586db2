package rng

// Generator provides the random draws the game engine needs
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int

	// Float64 will return a uniform random number in [0, 1)
	Float64() float64
}
