package shuffle

// Shuffle returns a uniformly random permutation of in drawn from src.
//
// Fisher-Yates: for i from the last index down to 1, pick j in [0, i] and
// swap positions i and j. in is never modified.
func Shuffle[T any](src Source, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)

	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
