package nutrition

import "math"

// DaySummary is the slice of a daily health record the weekly statistics
// need.
type DaySummary struct {
	Steps           int
	Water           float64
	Exercise        float64
	MealConsistency int
}

// WeeklyStats are the derived percentages shown on the analytics dashboard.
type WeeklyStats struct {
	WeeklyGoalCompletion int `json:"weeklyGoalCompletion"`
	MealConsistency      int `json:"mealConsistency"`
	HydrationRate        int `json:"hydrationRate"`
	ExerciseDays         int `json:"exerciseDays"`
}

// ComputeWeeklyStats derives the dashboard percentages from the recorded days
// of the past week. Averages run over the days actually recorded; the
// exercise-days percentage is always out of a full 7-day week. With no
// recorded days every statistic is zero.
func ComputeWeeklyStats(days []DaySummary) WeeklyStats {
	if len(days) == 0 {
		return WeeklyStats{}
	}

	var totalSteps int
	var totalWater float64
	var totalConsistency int
	exerciseDays := 0
	for _, d := range days {
		totalSteps += d.Steps
		totalWater += d.Water
		totalConsistency += d.MealConsistency
		if d.Exercise > 0 {
			exerciseDays++
		}
	}

	n := float64(len(days))
	avgSteps := float64(totalSteps) / n
	avgWater := totalWater / n

	return WeeklyStats{
		WeeklyGoalCompletion: capPct(math.Round(avgSteps / StepsTarget * 100)),
		MealConsistency:      int(math.Round(float64(totalConsistency) / n)),
		HydrationRate:        capPct(math.Round(avgWater / WaterTarget * 100)),
		ExerciseDays:         int(math.Round(float64(exerciseDays) / DaysInWeek * 100)),
	}
}

func capPct(v float64) int {
	if v > 100 {
		return 100
	}
	return int(v)
}
