// Package sim runs the platformer: the fixed-tick session, enemy motion,
// collision resolution and the flow between levels.
package sim

// JumpDisplacement returns how far the player rises on the tick with jump
// phase c. Negative values move the player down.
func JumpDisplacement(c int) float64 {
	d := float64(c*c) * 0.5
	if c < 0 {
		return -d
	}
	return d
}

// JumpArc returns the per-tick rise for a full jump, phase j down to -j.
func JumpArc(j int) []float64 {
	if j <= 0 {
		return nil
	}
	arc := make([]float64, 0, 2*j+1)
	for c := j; c >= -j; c-- {
		arc = append(arc, JumpDisplacement(c))
	}
	return arc
}

// JumpApex returns the height reached by a jump of phase j.
func JumpApex(j int) float64 {
	apex := 0.0
	for c := 1; c <= j; c++ {
		apex += JumpDisplacement(c)
	}
	return apex
}
