package fieldeq

// Mode selects the field condition the EQ flattens for.
type Mode int

const (
	// None bypasses the EQ stage.
	None Mode = iota
	// FreeField flattens the on-axis response.
	FreeField
	// DiffuseField flattens the random-incidence power response.
	DiffuseField
)

// Modes lists the modes that carry kernels.
var Modes = []Mode{FreeField, DiffuseField}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= None && m <= DiffuseField
}

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case FreeField:
		return "free-field"
	case DiffuseField:
		return "diffuse-field"
	default:
		return "unknown"
	}
}

// prefix is the kernel file name prefix.
func (m Mode) prefix() string {
	if m == DiffuseField {
		return "df"
	}
	return "ff"
}

// ParseMode parses the String form of a mode.
func ParseMode(s string) (Mode, bool) {
	for _, m := range []Mode{None, FreeField, DiffuseField} {
		if m.String() == s {
			return m, true
		}
	}
	return None, false
}
