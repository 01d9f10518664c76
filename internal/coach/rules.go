package coach

import "fmt"

const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Inputs — входные данные решающего дерева
type Inputs struct {
	// Недельная дельта веса в фунтах, отрицательное значение = снижение
	WeeklyWeightDeltaLbs float64
	// Доля выполненных тренировок от запланированных
	Adherence float64
	// Средние репортованные калории за окно (nil = не репортуются)
	AvgDailyCalories *int
	// Дневная цель калорий из профиля
	CalorieTargetPerDay int
}

// Assessment — результат оценки: фиксированный шаблон ветки
type Assessment struct {
	Status         string   `json:"status"`
	Recommendation string   `json:"recommendation"`
	Reasoning      string   `json:"reasoning"`
	ActionItems    []string `json:"action_items"`
	Urgency        string   `json:"urgency"`
}

// rule — пара (предикат, исход). Правила проверяются строго по порядку,
// срабатывает первое подходящее: условия пересекаются, порядок — контракт.
type rule struct {
	name    string
	applies func(Inputs) bool
	outcome func(Inputs) Assessment
}

var rules = []rule{
	{
		name: "excellent_progress",
		applies: func(in Inputs) bool {
			return in.WeeklyWeightDeltaLbs >= -2.0 && in.WeeklyWeightDeltaLbs <= -0.5 && in.Adherence >= 0.8
		},
		outcome: func(in Inputs) Assessment {
			return Assessment{
				Status:         "excellent_progress",
				Recommendation: "Keep doing what you're doing — your current plan is working.",
				Reasoning: fmt.Sprintf(
					"You're losing %.1f lbs per week with %.0f%% workout adherence. That's a sustainable, healthy rate.",
					-in.WeeklyWeightDeltaLbs, in.Adherence*100),
				ActionItems: []string{
					"Maintain your current calorie intake",
					"Keep your workout schedule unchanged",
					"Re-assess in two weeks",
				},
				Urgency: UrgencyLow,
			}
		},
	},
	{
		name: "plateau",
		applies: func(in Inputs) bool {
			return in.WeeklyWeightDeltaLbs > -0.2 && in.Adherence >= 0.7
		},
		outcome: func(in Inputs) Assessment {
			return Assessment{
				Status:         "plateau",
				Recommendation: "Your weight has plateaued despite good adherence — adjust intake or output.",
				Reasoning: fmt.Sprintf(
					"Weight change of %.1f lbs/week with %.0f%% adherence suggests your intake matches your expenditure.",
					in.WeeklyWeightDeltaLbs, in.Adherence*100),
				ActionItems: []string{
					"Reduce daily calories by 100-150",
					"Add one extra cardio session per week",
					"Double-check portion sizes when logging food",
				},
				Urgency: UrgencyMedium,
			}
		},
	},
	{
		name: "losing_too_fast",
		applies: func(in Inputs) bool {
			return in.WeeklyWeightDeltaLbs < -2.5
		},
		outcome: func(in Inputs) Assessment {
			return Assessment{
				Status:         "losing_too_fast",
				Recommendation: "You're losing weight faster than is sustainable — eat more.",
				Reasoning: fmt.Sprintf(
					"A loss of %.1f lbs per week risks muscle loss and rebound. Aim for 0.5-2.0 lbs per week.",
					-in.WeeklyWeightDeltaLbs),
				ActionItems: []string{
					"Increase daily calories by 200-300",
					"Prioritize protein at every meal",
					"Make sure you're sleeping 7+ hours",
				},
				Urgency: UrgencyHigh,
			}
		},
	},
	{
		name: "adherence_problem",
		applies: func(in Inputs) bool {
			return in.Adherence < 0.5
		},
		outcome: func(in Inputs) Assessment {
			return Assessment{
				Status:         "adherence_problem",
				Recommendation: "Consistency is the bottleneck right now, not the plan itself.",
				Reasoning: fmt.Sprintf(
					"You completed %.0f%% of planned workouts. Below 50%%, the plan can't produce results.",
					in.Adherence*100),
				ActionItems: []string{
					"Cut workout length to 20-30 minutes to lower the barrier",
					"Schedule workouts at a fixed time of day",
					"Start with 3 sessions per week, not more",
				},
				Urgency: UrgencyHigh,
			}
		},
	},
	{
		name: "calories_too_high",
		applies: func(in Inputs) bool {
			return in.AvgDailyCalories != nil && in.CalorieTargetPerDay > 0 &&
				*in.AvgDailyCalories > in.CalorieTargetPerDay+200
		},
		outcome: func(in Inputs) Assessment {
			return Assessment{
				Status:         "calories_too_high",
				Recommendation: "Your reported intake is running well above target.",
				Reasoning: fmt.Sprintf(
					"You're averaging %d kcal/day against a target of %d. That surplus cancels out your training.",
					*in.AvgDailyCalories, in.CalorieTargetPerDay),
				ActionItems: []string{
					"Pre-plan meals for the next three days",
					"Cut liquid calories first",
					"Weigh high-calorie ingredients instead of estimating",
				},
				Urgency: UrgencyMedium,
			}
		},
	},
}

// Evaluate прогоняет входы по правилам в фиксированном порядке.
// Ни одно правило не сработало — "insufficient data".
func Evaluate(in Inputs) Assessment {
	for _, r := range rules {
		if r.applies(in) {
			return r.outcome(in)
		}
	}

	return Assessment{
		Status:         "insufficient_data",
		Recommendation: "Keep logging your weight, workouts and calories daily.",
		Reasoning:      "There isn't enough consistent data yet to assess your trend reliably.",
		ActionItems: []string{
			"Log weight every morning",
			"Log every workout, even short ones",
			"Track calories for at least one full week",
		},
		Urgency: UrgencyLow,
	}
}
