package reshape

import "math/rand"

// Shuffle permutes s in place with a Fisher-Yates shuffle and returns it.
// A nil rng uses the package-level source.
func Shuffle[T any](s []T, rng *rand.Rand) []T {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for i := len(s) - 1; i > 0; i-- {
		j := intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
	return s
}
