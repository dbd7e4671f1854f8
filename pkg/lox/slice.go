// Package lox holds small slice helpers missing from samber/lo.
package lox

func Map[T, R any](collection []T, iteratee func(item T) R) []R {
	result := make([]R, len(collection))

	for i, item := range collection {
		result[i] = iteratee(item)
	}

	return result
}

// FirstDuplicate returns the first element whose key was already seen.
func FirstDuplicate[T any, K comparable](collection []T, key func(item T) K) (T, bool) {
	seen := make(map[K]struct{}, len(collection))

	for _, item := range collection {
		k := key(item)
		if _, ok := seen[k]; ok {
			return item, true
		}

		seen[k] = struct{}{}
	}

	var zero T

	return zero, false
}
