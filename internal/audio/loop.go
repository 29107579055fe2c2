package audio

// RenderLoop repeats the period in table until numSamples values exist,
// which is what the firmware's table-lookup oscillator does at unit step.
func RenderLoop(table []int, numSamples int) []int {
	if numSamples <= 0 || len(table) == 0 {
		return nil
	}

	out := make([]int, numSamples)
	for i := range out {
		out[i] = table[i%len(table)]
	}
	return out
}

// ToneFrequency returns the pitch heard when a table of tableLen samples
// is stepped once per output sample at sampleRate.
func ToneFrequency(sampleRate float64, tableLen int) float64 {
	if tableLen <= 0 {
		return 0
	}
	return sampleRate / float64(tableLen)
}

// SamplesToSeconds converts sample count to seconds
func SamplesToSeconds(samples, sampleRate int) float64 {
	return float64(samples) / float64(sampleRate)
}

// SecondsToSamples converts seconds to sample count
func SecondsToSamples(seconds float64, sampleRate int) int {
	return int(seconds * float64(sampleRate))
}
