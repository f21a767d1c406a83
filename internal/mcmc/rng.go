package mcmc

import "math/rand/v2"

// Key is a splittable random key. Each transition receives a fresh key and
// derives its sub-draws (momentum, acceptance) by folding in a constant;
// there is no shared generator state, so any draw can be replayed from the
// key that produced it. Folding the same index into the same key always
// yields the same child key, which is what the coupled kernel exploits to
// share randomness across two chains.
type Key uint64

func NewKey(seed uint64) Key {
	return Key(splitmix64(seed))
}

// Fold derives a child key for stream i.
func (k Key) Fold(i uint64) Key {
	return Key(splitmix64(uint64(k) + 0x9e3779b97f4a7c15*(i+1)))
}

// Split derives n independent child keys.
func (k Key) Split(n int) []Key {
	keys := make([]Key, n)
	for i := range keys {
		keys[i] = k.Fold(uint64(i))
	}
	return keys
}

func (k Key) source() *rand.Rand {
	seed := uint64(k)
	return rand.New(rand.NewPCG(seed, splitmix64(seed)))
}

// Uniform returns a single draw in [0, 1).
func (k Key) Uniform() float64 {
	return k.source().Float64()
}

// Normals returns n standard normal draws.
func (k Key) Normals(n int) []float64 {
	r := k.source()
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = r.NormFloat64()
	}
	return draws
}

// splitmix64 finalizer; mixes a 64-bit value into a well-distributed one.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
