package telegram

// Verify is a bitmask of privileges. A handler registered with a non-zero
// Verify is only visible to callers holding every bit of it.
type Verify uint64

const (
	// Unchecked places no restriction on the caller.
	Unchecked Verify = 0

	Verified Verify = 1 << (iota - 1)
	Admin
	Owner
)

// Flag returns the n-th custom privilege bit, counted after Owner.
func Flag(n uint) Verify {
	return Owner << (n + 1)
}

// Has reports whether v holds every bit of flag.
func (v Verify) Has(flag Verify) bool {
	return v&flag == flag
}

// Visible is the access gate applied to text, expression and callback
// handlers before they run.
func Visible(required, actual Verify) bool {
	return required == Unchecked || actual.Has(required)
}

func getVerify(v []Verify) Verify {
	if len(v) == 0 {
		return Unchecked
	}
	var out Verify
	for _, f := range v {
		out |= f
	}
	return out
}
