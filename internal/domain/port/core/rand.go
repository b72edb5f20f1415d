package core

// Rand abstracts the uniform randomness source used by outcome generators.
// Tests inject seeded or scripted implementations so game results are
// reproducible.
type Rand interface {
	// Float64 returns a uniform value in [0.0, 1.0)
	Float64() float64
	// Intn returns a uniform value in [0, n)
	Intn(n int) int
	// Shuffle randomizes the order of n elements using the swap function
	Shuffle(n int, swap func(i, j int))
}
