// Package ptr has small generic helpers for optional (pointer) fields.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// ToString converts a pointer to a string-based type (such as a domain enum)
// into a plain string pointer, preserving nil.
func ToString[T ~string](p *T) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
