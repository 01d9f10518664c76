package strava

import "fmt"

// TokenResponse — ответ OAuth token endpoint (оба grant'а)
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	Scope        string `json:"scope"`
}

// Athlete — профиль атлета Strava
type Athlete struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Sex       string  `json:"sex"`
	Weight    float64 `json:"weight"` // kg
}

// Activity — активность из списка или детального эндпоинта.
// Поля с указателями Strava возвращает не для всех активностей.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	Distance           float64   `json:"distance"`    // meters
	MovingTime         int       `json:"moving_time"` // seconds
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	StartDate          string    `json:"start_date"` // RFC3339
	AverageSpeed       float64   `json:"average_speed"`
	AverageHeartrate   *float64  `json:"average_heartrate"`
	MaxHeartrate       *float64  `json:"max_heartrate"`
	StartLatLng        []float64 `json:"start_latlng"`
	EndLatLng          []float64 `json:"end_latlng"`
	Calories           *float64  `json:"calories"` // только в детальном ответе
	Description        string    `json:"description"`
}

// APIError — не-2xx ответ Strava API; статус и тело отдаются вызывающему как есть
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strava API error: status=%d body=%s", e.StatusCode, e.Body)
}
