package domain

// Importance classifies a dependency edge as required or optional.
// The two values are totally ordered: Required > Optional.
type Importance int

const (
	// Optional marks a dependency the build can proceed without.
	Optional Importance = iota
	// Required marks a dependency the build cannot proceed without.
	Required
)

// String returns the lowercase name of the importance level.
func (i Importance) String() string {
	if i == Required {
		return "required"
	}
	return "optional"
}

// Merge combines two importance levels, keeping the higher one.
// The merge is monotonic: the result never decreases below either input.
func (i Importance) Merge(other Importance) Importance {
	if other > i {
		return other
	}
	return i
}
