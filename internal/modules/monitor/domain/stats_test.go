package domain_test

import (
	"math"
	"testing"

	"evwatch/internal/modules/monitor/domain"
)

func TestAggregateEmptyListIsAllZero(t *testing.T) {
	t.Parallel()
	stats := domain.Aggregate(nil)
	for name, v := range map[string]float64{
		"avg duration":   stats.AvgDurationMin,
		"avg energy":     stats.AvgEnergyKWh,
		"detection rate": stats.DetectionRate,
		"avg score":      stats.AvgScore,
	} {
		if v != 0 {
			t.Fatalf("%s = %v, want 0", name, v)
		}
		if math.IsNaN(v) {
			t.Fatalf("%s is NaN", name)
		}
	}
	for status, v := range stats.EnergyByStatus {
		if v != 0 {
			t.Fatalf("energy[%s] = %v, want 0", status, v)
		}
	}
}

func TestAggregateAverages(t *testing.T) {
	t.Parallel()
	stats := domain.Aggregate([]domain.Session{
		{SessionID: "s-1", DurationMin: 10, EnergyKWh: 4, Score: 0.95, Category: domain.CategoryFraud, Status: domain.StatusCritical},
		{SessionID: "s-2", DurationMin: 30, EnergyKWh: 8, Score: 0.75, Category: domain.CategoryMultiUser, Status: domain.StatusWarning},
		{SessionID: "s-3", DurationMin: 20, EnergyKWh: 6, Score: 0, Status: domain.StatusNormal},
	})
	if stats.AvgDurationMin != 20 {
		t.Fatalf("avg duration = %v, want 20", stats.AvgDurationMin)
	}
	if stats.AvgEnergyKWh != 6 {
		t.Fatalf("avg energy = %v, want 6", stats.AvgEnergyKWh)
	}
	if got, want := stats.DetectionRate, 2.0/3.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("detection rate = %v, want %v", got, want)
	}
	if got, want := stats.AvgScore, (0.95+0.75)/3; math.Abs(got-want) > 1e-9 {
		t.Fatalf("avg score = %v, want %v", got, want)
	}
	if stats.EnergyByStatus[domain.StatusCritical] != 4 {
		t.Fatalf("critical energy = %v, want 4", stats.EnergyByStatus[domain.StatusCritical])
	}
	if stats.EnergyByStatus[domain.StatusNormal] != 6 {
		t.Fatalf("normal energy = %v, want 6", stats.EnergyByStatus[domain.StatusNormal])
	}
}

func TestCountByCategory(t *testing.T) {
	t.Parallel()
	counts := domain.CountByCategory([]domain.Session{
		{Category: domain.CategoryFraud},
		{Category: domain.CategoryFraud},
		{Category: domain.CategoryDoS},
		{Category: domain.CategoryNone},
	})
	if counts.Fraud != 2 || counts.DoS != 1 || counts.MultiUser != 0 || counts.None != 1 {
		t.Fatalf("counts = %+v", counts)
	}
}
