package nutrition

import "math"

const (
	GoalLoseWeight = "lose_weight"
	GoalGainMuscle = "gain_muscle"
	GoalGetFit     = "get_fit"
)

const (
	lbsToKg    = 0.453592
	inchesToCm = 2.54
)

// activityMultipliers — множители TDEE; неизвестный уровень = sedentary
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
}

// Targets — производные дневные цели профиля
type Targets struct {
	BMR           int
	TDEE          int
	DailyCalories int
	ProteinGrams  int
}

// BMR по формуле Mifflin-St Jeor (вес в фунтах, рост в дюймах)
func BMR(gender string, age int, weightLbs, heightInches float64) float64 {
	kg := weightLbs * lbsToKg
	cm := heightInches * inchesToCm

	bmr := 10*kg + 6.25*cm - 5*float64(age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr
}

// TDEE = BMR * множитель уровня активности
func TDEE(bmr float64, activityLevel string) float64 {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = activityMultipliers["sedentary"]
	}
	return bmr * multiplier
}

// CalorieTarget — дневная цель: дефицит 500 на похудение, профицит 300 на массу
func CalorieTarget(tdee float64, goal string) int {
	switch goal {
	case GoalLoseWeight:
		tdee -= 500
	case GoalGainMuscle:
		tdee += 300
	}
	return int(math.Round(tdee))
}

// ProteinTarget — 1.0 г/фунт для lose_weight и gain_muscle, иначе 0.8 г/фунт
func ProteinTarget(weightLbs float64, goal string) int {
	perLb := 0.8
	if goal == GoalLoseWeight || goal == GoalGainMuscle {
		perLb = 1.0
	}
	return int(math.Round(weightLbs * perLb))
}

// ComputeTargets считает все цели разом (используется при setup профиля)
func ComputeTargets(gender string, age int, weightLbs, heightInches float64, goal, activityLevel string) Targets {
	bmr := BMR(gender, age, weightLbs, heightInches)
	tdee := TDEE(bmr, activityLevel)

	return Targets{
		BMR:           int(math.Round(bmr)),
		TDEE:          int(math.Round(tdee)),
		DailyCalories: CalorieTarget(tdee, goal),
		ProteinGrams:  ProteinTarget(weightLbs, goal),
	}
}
