package chip

import "math"

// Free-space light speed in micrometers per second.
const lightSpeed = 2.99792458e14

// QuarterWaveLength returns the physical length, in micrometers, of a
// quarter-wave CPW resonator at the given fundamental frequency (GHz) for a
// line with the given effective permittivity.
func QuarterWaveLength(freqGHz, epsEff float64) float64 {
	return lightSpeed / (4 * freqGHz * 1e9 * math.Sqrt(epsEff))
}

// ResonatorLengths maps a list of target frequencies (GHz) to physical
// lengths, ready to be stored in Resonator.Lengths.
func ResonatorLengths(freqsGHz []float64, epsEff float64) []float64 {
	out := make([]float64, len(freqsGHz))
	for i, f := range freqsGHz {
		out[i] = QuarterWaveLength(f, epsEff)
	}
	return out
}

// PadGap derives a capacitor gap from a pad dimension and a stored
// length/gap ratio. The ratios in [Transmon] encode the coupling and device
// capacitance targets; the geometry builders only ever see the resulting
// gap.
func PadGap(padLength, ratio float64) float64 {
	return padLength / ratio
}
