package domain

// StatusCounts is the per-severity tally shown on the stat cards.
type StatusCounts struct {
	Critical int
	Warning  int
	Normal   int
}

// Stats is the aggregate row of the analytics view. Every mean is 0 over an
// empty list; no metric may ever be NaN.
type Stats struct {
	AvgDurationMin float64
	AvgEnergyKWh   float64
	DetectionRate  float64
	AvgScore       float64
	EnergyByStatus map[Status]float64
}

// Aggregate computes the statistics over a session list. The backend already
// scored everything; this only averages what it sent.
func Aggregate(sessions []Session) Stats {
	stats := Stats{EnergyByStatus: map[Status]float64{
		StatusCritical: 0,
		StatusWarning:  0,
		StatusNormal:   0,
	}}
	if len(sessions) == 0 {
		return stats
	}
	anomalous := 0
	for _, s := range sessions {
		stats.AvgDurationMin += s.DurationMin
		stats.AvgEnergyKWh += s.EnergyKWh
		stats.AvgScore += s.Score
		stats.EnergyByStatus[s.Status] += s.EnergyKWh
		if s.Anomalous() {
			anomalous++
		}
	}
	total := float64(len(sessions))
	stats.AvgDurationMin /= total
	stats.AvgEnergyKWh /= total
	stats.AvgScore /= total
	stats.DetectionRate = float64(anomalous) / total
	return stats
}

// CategoryCounts tallies sessions per anomaly category, clean ones included.
type CategoryCounts struct {
	Fraud     int
	DoS       int
	MultiUser int
	None      int
}

func CountByCategory(sessions []Session) CategoryCounts {
	var c CategoryCounts
	for _, s := range sessions {
		switch s.Category {
		case CategoryFraud:
			c.Fraud++
		case CategoryDoS:
			c.DoS++
		case CategoryMultiUser:
			c.MultiUser++
		default:
			c.None++
		}
	}
	return c
}
