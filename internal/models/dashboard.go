package models

type StatEntry struct {
	Total  int `json:"total"`
	Growth int `json:"growth"`
}

type DashboardStats struct {
	Projects StatEntry `json:"projects"`
	Services StatEntry `json:"services"`
	Posts    StatEntry `json:"posts"`
	Messages StatEntry `json:"messages"`
	Rooms    StatEntry `json:"rooms"`
}
