package training

import (
	"fmt"
	"math"
	"strings"
)

// DistanceKm переводит метры в километры, 2 знака после запятой
func DistanceKm(meters float64) float64 {
	return math.Round(meters/1000*100) / 100
}

// DurationMinutes переводит секунды в минуты с округлением
func DurationMinutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60))
}

// IsRun определяет беговые типы активностей ("Run", "TrailRun", "VirtualRun")
func IsRun(activityType string) bool {
	return strings.Contains(activityType, "Run")
}

// Pace возвращает темп "M:SS/km". Темп считается только для беговых
// активностей с distance > 0 — иначе ok=false (защита деления на ноль).
func Pace(activityType string, distanceMeters float64, movingTimeSeconds int) (string, bool) {
	if !IsRun(activityType) || distanceMeters <= 0 {
		return "", false
	}

	km := distanceMeters / 1000
	secondsPerKm := int(math.Round(float64(movingTimeSeconds) / km))
	return fmt.Sprintf("%d:%02d/km", secondsPerKm/60, secondsPerKm%60), true
}
