package transport

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TTL      int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type TaskRequest struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	DueDate          string `json:"due_date"`
	Priority         string `json:"priority"`
	Category         string `json:"category"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Status           string `json:"status"`
}

type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
