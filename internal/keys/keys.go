// Package keys defines the ordering and equality used for object member
// names: byte-wise comparison over the shared prefix, with the shorter key
// ordered first when the prefix is equal.
package keys

// Compare returns -1, 0 or +1 as a orders before, equal to, or after b.
func Compare(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return compareLen(len(a), len(b))
}

// CompareBytes is Compare for a lookup key the caller holds as a raw buffer.
func CompareBytes(a string, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return compareLen(len(a), len(b))
}

func compareLen(la, lb int) int {
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	}
	return 0
}

// Less reports whether a orders strictly before b.
func Less(a, b string) bool { return Compare(a, b) < 0 }

// LessOrEqual reports whether a orders before or equal to b.
func LessOrEqual(a, b string) bool { return Compare(a, b) <= 0 }

// LessOrEqualBytes is LessOrEqual against a raw buffer.
func LessOrEqualBytes(a string, b []byte) bool { return CompareBytes(a, b) <= 0 }

// Equal reports whether a and b have the same length and content.
func Equal(a, b string) bool { return a == b }

// EqualBytes reports whether a and b have the same length and content.
func EqualBytes(a string, b []byte) bool { return len(a) == len(b) && a == string(b) }
