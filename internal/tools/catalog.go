package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fdg312/coach-hub/internal/coach"
	"github.com/fdg312/coach-hub/internal/profile"
	"github.com/fdg312/coach-hub/internal/progress"
	"github.com/fdg312/coach-hub/internal/rag"
	"github.com/fdg312/coach-hub/internal/reports"
	"github.com/fdg312/coach-hub/internal/storage"
	"github.com/fdg312/coach-hub/internal/strava"
	"github.com/fdg312/coach-hub/internal/training"
)

// Services — зависимости каталога инструментов
type Services struct {
	Strava   *strava.Client
	Profiles *profile.Service
	Progress *progress.Service
	RAG      *rag.Service
	Reports  *reports.Service
}

const profileNotSetMessage = "No profile found. Set up your profile first with the setup_user_profile tool."

// NewCatalog собирает полный каталог инструментов поверх сервисов
func NewCatalog(s Services) *Registry {
	r := NewRegistry()

	r.Register(&Tool{
		Name:        "get_recent_activities",
		Description: "Fetch the user's recent activities from Strava",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"per_page": {Type: "integer", Description: "Number of activities to fetch (max 30)", Default: 10},
				"days":     {Type: "integer", Description: "Only include activities from the last N days"},
			},
		},
		handler: func(ctx context.Context, _ string, args map[string]any) (string, error) {
			perPage := IntArg(args, "per_page", 10)

			var after *time.Time
			if days := IntArg(args, "days", 0); days > 0 {
				t := time.Now().AddDate(0, 0, -days)
				after = &t
			}

			activities, err := s.Strava.ListActivities(ctx, perPage, after)
			if err != nil {
				return "", err
			}
			if len(activities) == 0 {
				return "No recent activities found.", nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Recent activities (%d):\n", len(activities))
			for _, a := range activities {
				b.WriteString(formatActivityLine(a))
			}
			return b.String(), nil
		},
	})

	r.Register(&Tool{
		Name:        "get_athlete_profile",
		Description: "Fetch the authenticated athlete's Strava profile",
		InputSchema: InputSchema{},
		handler: func(ctx context.Context, _ string, _ map[string]any) (string, error) {
			athlete, err := s.Strava.GetAthlete(ctx)
			if err != nil {
				return "", err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Athlete: %s %s (id %d)\n", athlete.Firstname, athlete.Lastname, athlete.ID)
			if athlete.Username != "" {
				fmt.Fprintf(&b, "Username: %s\n", athlete.Username)
			}
			if athlete.City != "" || athlete.Country != "" {
				fmt.Fprintf(&b, "Location: %s, %s\n", athlete.City, athlete.Country)
			}
			if athlete.Weight > 0 {
				fmt.Fprintf(&b, "Weight: %.1f kg\n", athlete.Weight)
			}
			return b.String(), nil
		},
	})

	r.Register(&Tool{
		Name:        "get_activity_details",
		Description: "Fetch full details of one activity by id",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"activity_id": {Type: "integer", Description: "Strava activity id"},
			},
			Required: []string{"activity_id"},
		},
		handler: func(ctx context.Context, _ string, args map[string]any) (string, error) {
			id, err := Int64Arg(args, "activity_id")
			if err != nil {
				return "", err
			}

			a, err := s.Strava.GetActivity(ctx, id)
			if err != nil {
				return "", err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s (%s)\n", a.Name, a.Type)
			fmt.Fprintf(&b, "Date: %s\n", a.StartDate)
			fmt.Fprintf(&b, "Distance: %.2f km\n", training.DistanceKm(a.Distance))
			fmt.Fprintf(&b, "Moving time: %d min\n", training.DurationMinutes(a.MovingTime))
			if pace, ok := training.Pace(a.Type, a.Distance, a.MovingTime); ok {
				fmt.Fprintf(&b, "Pace: %s\n", pace)
			}
			if a.TotalElevationGain > 0 {
				fmt.Fprintf(&b, "Elevation gain: %.0f m\n", a.TotalElevationGain)
			}
			if a.AverageHeartrate != nil {
				fmt.Fprintf(&b, "Avg heartrate: %.0f bpm\n", *a.AverageHeartrate)
			}
			if a.MaxHeartrate != nil {
				fmt.Fprintf(&b, "Max heartrate: %.0f bpm\n", *a.MaxHeartrate)
			}
			if a.Calories != nil {
				fmt.Fprintf(&b, "Calories: %.0f kcal\n", *a.Calories)
			}
			if a.Description != "" {
				fmt.Fprintf(&b, "Description: %s\n", a.Description)
			}
			return b.String(), nil
		},
	})

	r.Register(&Tool{
		Name:        "get_training_load",
		Description: "Aggregate training load over the last N days",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"days": {Type: "integer", Description: "Window size in days", Default: 7},
			},
		},
		handler: func(ctx context.Context, _ string, args map[string]any) (string, error) {
			days := IntArg(args, "days", 7)
			if days <= 0 {
				days = 7
			}

			after := time.Now().AddDate(0, 0, -days)
			activities, err := s.Strava.ListActivities(ctx, 30, &after)
			if err != nil {
				return "", err
			}

			load := training.Summarize(activities, days)
			if load.TotalActivities == 0 {
				return fmt.Sprintf("No activities in the last %d days.", days), nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Training load, last %d days:\n", load.WindowDays)
			fmt.Fprintf(&b, "- Activities: %d\n", load.TotalActivities)
			fmt.Fprintf(&b, "- Distance: %.2f km\n", load.TotalDistanceKm)
			fmt.Fprintf(&b, "- Duration: %d min\n", load.TotalDurationMinutes)
			if load.TotalElevationGain > 0 {
				fmt.Fprintf(&b, "- Elevation gain: %.0f m\n", load.TotalElevationGain)
			}
			if load.HeartrateSamples > 0 {
				fmt.Fprintf(&b, "- Avg heartrate: %.0f bpm (over %d activities)\n", load.AverageHeartrate, load.HeartrateSamples)
			}

			types := make([]string, 0, len(load.CountByType))
			for t := range load.CountByType {
				types = append(types, t)
			}
			sort.Strings(types)
			for _, t := range types {
				fmt.Fprintf(&b, "- %s: %d\n", t, load.CountByType[t])
			}

			fmt.Fprintf(&b, "Weekly rate: %.1f km, %.1f activities, %.0f min\n",
				load.WeeklyDistanceKm, load.WeeklyActivities, load.WeeklyMinutes)
			return b.String(), nil
		},
	})

	r.Register(&Tool{
		Name:        "setup_user_profile",
		Description: "Create or overwrite the user profile and compute daily targets",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"age":               {Type: "integer", Description: "Age in years"},
				"gender":            {Type: "string", Enum: []string{"male", "female"}},
				"weight_lbs":        {Type: "number", Description: "Current weight in pounds"},
				"height_inches":     {Type: "number", Description: "Height in inches"},
				"goal":              {Type: "string", Enum: []string{"lose_weight", "gain_muscle", "get_fit"}},
				"activity_level":    {Type: "string", Enum: []string{"sedentary", "lightly_active", "moderately_active", "very_active"}},
				"target_weight_lbs": {Type: "number", Description: "Optional goal weight in pounds"},
			},
			Required: []string{"age", "gender", "weight_lbs", "height_inches", "goal", "activity_level"},
		},
		handler: func(ctx context.Context, owner string, args map[string]any) (string, error) {
			weight, _ := FloatArg(args, "weight_lbs")
			height, _ := FloatArg(args, "height_inches")

			req := profile.SetupRequest{
				Age:           IntArg(args, "age", 0),
				Gender:        StringArg(args, "gender", ""),
				WeightLbs:     weight,
				HeightInches:  height,
				Goal:          StringArg(args, "goal", ""),
				ActivityLevel: StringArg(args, "activity_level", ""),
			}
			if target, ok := FloatArg(args, "target_weight_lbs"); ok {
				req.TargetWeightLbs = &target
			}

			prof, err := s.Profiles.Setup(ctx, owner, req)
			if err != nil {
				return "", err
			}

			var b strings.Builder
			b.WriteString("Profile saved.\n")
			fmt.Fprintf(&b, "Goal: %s\n", prof.Goal)
			fmt.Fprintf(&b, "Daily calorie target: %d kcal\n", prof.DailyCalories)
			fmt.Fprintf(&b, "Daily protein target: %d g\n", prof.ProteinGrams)
			if prof.TargetWeightLbs != nil {
				fmt.Fprintf(&b, "Target weight: %.1f lbs\n", *prof.TargetWeightLbs)
			}
			return b.String(), nil
		},
	})

	r.Register(&Tool{
		Name:        "log_progress",
		Description: "Log or update a daily progress entry (weight, workouts, calories)",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"date":               {Type: "string", Description: "Calendar day YYYY-MM-DD, defaults to today"},
				"weight_lbs":         {Type: "number", Description: "Weight in pounds"},
				"workouts_completed": {Type: "integer", Description: "Workouts completed that day"},
				"calories":           {Type: "integer", Description: "Calories consumed that day"},
			},
		},
		handler: func(ctx context.Context, owner string, args map[string]any) (string, error) {
			var weight *float64
			if w, ok := FloatArg(args, "weight_lbs"); ok {
				weight = &w
			}
			var workouts *int
			if _, ok := args["workouts_completed"]; ok {
				w := IntArg(args, "workouts_completed", 0)
				workouts = &w
			}
			var calories *int
			if _, ok := args["calories"]; ok {
				c := IntArg(args, "calories", 0)
				calories = &c
			}

			entry, err := s.Progress.Log(ctx, owner, StringArg(args, "date", ""), weight, workouts, calories)
			if err != nil {
				if errors.Is(err, profile.ErrProfileNotSet) {
					return profileNotSetMessage, nil
				}
				return "", err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Logged %s: weight %.1f lbs, workouts %d", entry.Date, entry.WeightLbs, entry.WorkoutsCompleted)
			if entry.Calories != nil {
				fmt.Fprintf(&b, ", calories %d", *entry.Calories)
			}
			b.WriteString("\n")
			return b.String(), nil
		},
	})

	r.Register(&Tool{
		Name:        "get_coaching_advice",
		Description: "Assess recent progress and return a coaching recommendation",
		InputSchema: InputSchema{},
		handler: func(ctx context.Context, owner string, _ map[string]any) (string, error) {
			prof, err := s.Profiles.Get(ctx, owner)
			if err != nil {
				if errors.Is(err, profile.ErrProfileNotSet) {
					return profileNotSetMessage, nil
				}
				return "", err
			}

			recent, err := s.Progress.Summarize(ctx, owner, 14)
			if err != nil {
				return "", err
			}

			assessment := coach.Evaluate(coach.Inputs{
				WeeklyWeightDeltaLbs: recent.AvgWeeklyWeightDeltaLbs,
				Adherence:            recent.Adherence(),
				AvgDailyCalories:     recent.AvgDailyCalories,
				CalorieTargetPerDay:  prof.DailyCalories,
			})
			return formatAssessment(assessment), nil
		},
	})

	r.Register(&Tool{
		Name:        "get_daily_advice",
		Description: "One short piece of advice for today based on workout recency",
		InputSchema: InputSchema{},
		handler: func(ctx context.Context, owner string, _ map[string]any) (string, error) {
			entries, err := s.Progress.Entries(ctx, owner, 30)
			if err != nil {
				return "", err
			}

			daysSince, hasHistory := daysSinceLastWorkout(entries, time.Now().UTC())
			return coach.DailyAdvice(daysSince, hasHistory), nil
		},
	})

	r.Register(&Tool{
		Name:        "search_knowledge",
		Description: "Search the coaching knowledge base",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"query": {Type: "string", Description: "Search query"},
				"top_k": {Type: "integer", Description: "How many results to return", Default: 3},
			},
			Required: []string{"query"},
		},
		handler: func(ctx context.Context, owner string, args map[string]any) (string, error) {
			matches, err := s.RAG.Search(ctx, owner, StringArg(args, "query", ""), IntArg(args, "top_k", 3))
			if err != nil {
				return "", err
			}
			if len(matches) == 0 {
				return "No matching documents found.", nil
			}

			var b strings.Builder
			for i, m := range matches {
				fmt.Fprintf(&b, "%d. [%s] %s (score %.2f)\n%s\n\n",
					i+1, m.Document.Category, m.Document.Source, m.Score, m.Document.Content)
			}
			return strings.TrimRight(b.String(), "\n") + "\n", nil
		},
	})

	r.Register(&Tool{
		Name:        "add_website_knowledge",
		Description: "Index a website into the knowledge base",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"url":      {Type: "string", Description: "Website URL"},
				"category": {Type: "string", Description: "Knowledge category", Default: "general"},
			},
			Required: []string{"url"},
		},
		handler: func(ctx context.Context, owner string, args map[string]any) (string, error) {
			doc, err := s.RAG.AddWebsite(ctx, owner, StringArg(args, "url", ""), StringArg(args, "category", ""))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Indexed website %s under category %q (%d chars).", doc.Source, doc.Category, len(doc.Content)), nil
		},
	})

	r.Register(&Tool{
		Name:        "add_file_knowledge",
		Description: "Index a local file into the knowledge base",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"path":     {Type: "string", Description: "Path to a local text file"},
				"category": {Type: "string", Description: "Knowledge category", Default: "general"},
			},
			Required: []string{"path"},
		},
		handler: func(ctx context.Context, owner string, args map[string]any) (string, error) {
			doc, err := s.RAG.AddFile(ctx, owner, StringArg(args, "path", ""), StringArg(args, "category", ""))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Indexed file %s under category %q (%d chars).", doc.Source, doc.Category, len(doc.Content)), nil
		},
	})

	r.Register(&Tool{
		Name:        "export_progress_report",
		Description: "Export a progress report as PDF or CSV",
		InputSchema: InputSchema{
			Properties: map[string]Property{
				"format": {Type: "string", Enum: []string{"pdf", "csv"}, Default: "pdf"},
				"days":   {Type: "integer", Description: "Window size in days", Default: 30},
			},
		},
		handler: func(ctx context.Context, owner string, args map[string]any) (string, error) {
			location, err := s.Reports.Export(ctx, owner, StringArg(args, "format", "pdf"), IntArg(args, "days", 30))
			if err != nil {
				if errors.Is(err, profile.ErrProfileNotSet) {
					return profileNotSetMessage, nil
				}
				return "", err
			}
			return fmt.Sprintf("Report ready: %s", location), nil
		},
	})

	return r
}

func formatActivityLine(a strava.Activity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %s (%s, id %d): %.2f km in %d min",
		a.Name, a.Type, a.ID, training.DistanceKm(a.Distance), training.DurationMinutes(a.MovingTime))
	if pace, ok := training.Pace(a.Type, a.Distance, a.MovingTime); ok {
		fmt.Fprintf(&b, ", pace %s", pace)
	}
	if a.AverageHeartrate != nil {
		fmt.Fprintf(&b, ", avg HR %.0f", *a.AverageHeartrate)
	}
	b.WriteString("\n")
	return b.String()
}

func formatAssessment(a coach.Assessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s (urgency: %s)\n", a.Status, a.Urgency)
	fmt.Fprintf(&b, "Recommendation: %s\n", a.Recommendation)
	fmt.Fprintf(&b, "Reasoning: %s\n", a.Reasoning)
	b.WriteString("Action items:\n")
	for _, item := range a.ActionItems {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return b.String()
}

// daysSinceLastWorkout ищет последнюю запись дневника с тренировками.
// Порядок вставки считается хронологическим, поэтому идём с конца.
func daysSinceLastWorkout(entries []storage.ProgressEntry, now time.Time) (int, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].WorkoutsCompleted <= 0 {
			continue
		}
		day, err := time.Parse("2006-01-02", entries[i].Date)
		if err != nil {
			continue
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		days := int(today.Sub(day).Hours() / 24)
		if days < 0 {
			days = 0
		}
		return days, true
	}
	return 0, false
}
