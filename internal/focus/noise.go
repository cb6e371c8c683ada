package focus

// Noise is a background sound option. At most one plays at a time.
type Noise string

const (
	NoiseNone     Noise = ""
	NoiseBrown    Noise = "brown"
	NoiseBinaural Noise = "binaural"
)

// Label returns the display name.
func (n Noise) Label() string {
	switch n {
	case NoiseBrown:
		return "Ruido Marrón"
	case NoiseBinaural:
		return "Binaural 40Hz"
	default:
		return "Silencio"
	}
}

// Hint returns the one-line description shown under the label.
func (n Noise) Hint() string {
	switch n {
	case NoiseBrown:
		return "Para calmar la mente"
	case NoiseBinaural:
		return "Para enfoque profundo"
	default:
		return ""
	}
}

// ToggleNoise returns the noise active after selecting n while current plays.
// Selecting the active noise turns it off.
func ToggleNoise(current, n Noise) Noise {
	if current == n {
		return NoiseNone
	}
	return n
}
