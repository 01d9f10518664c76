package coach

// DailyAdvice возвращает одно из фиксированных сообщений по числу дней
// с последней тренировки. hasHistory=false — стартовое сообщение.
func DailyAdvice(daysSinceLastWorkout int, hasHistory bool) string {
	if !hasHistory {
		return "No workouts logged yet. Start small today: a 20-minute walk or an easy bodyweight session counts."
	}

	switch {
	case daysSinceLastWorkout == 0:
		return "You trained today — nice work. Focus on recovery now: hydrate, get protein in, and aim for a full night's sleep."
	case daysSinceLastWorkout == 1:
		return "You rested yesterday, so you should be ready to go again. Pick your session and get it done early."
	case daysSinceLastWorkout >= 3:
		return "It's been a few days — no judgment. The best workout is the one you restart with today, even a short one."
	default:
		return "You're keeping a good routine. Stay consistent and don't skip the warm-up."
	}
}
