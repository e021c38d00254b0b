package seamcarve

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AxisStats summarizes the energy of the seams removed along one direction.
type AxisStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Max    float64
}

// Summary holds the seam statistics of a carving run.
type Summary struct {
	Vertical   AxisStats
	Horizontal AxisStats
}

// Summary computes the seam energy statistics of the report.
func (r *Report) Summary() Summary {
	var vert, horiz []float64
	for _, s := range r.Seams {
		if s.Direction == Vertical {
			vert = append(vert, float64(s.Energy))
		} else {
			horiz = append(horiz, float64(s.Energy))
		}
	}
	return Summary{
		Vertical:   axisStats(vert),
		Horizontal: axisStats(horiz),
	}
}

func axisStats(energies []float64) AxisStats {
	if len(energies) == 0 {
		return AxisStats{}
	}
	as := AxisStats{
		Count: len(energies),
		Mean:  stat.Mean(energies, nil),
		Max:   floats.Max(energies),
	}
	// The sample standard deviation needs at least two values.
	if len(energies) > 1 {
		as.StdDev = stat.StdDev(energies, nil)
	}
	return as
}
