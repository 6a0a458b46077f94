package utils

// Ptr returns a pointer to v. Keeps test fixtures with optional fields short.
func Ptr[T any](v T) *T {
	return &v
}
