//go:build !unix

package socket

// Platforms without a POSIX errno surface fall back to the portable
// predicates in classify.
func errnoKind(err error) (Kind, bool) {
	return KindOther, false
}
