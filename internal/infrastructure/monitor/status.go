package monitor

import "time"

type Status struct {
	PostgreSQL    bool      `json:"postgresql"`
	Redis         bool      `json:"redis"`
	HistoryBuffer bool      `json:"history_buffer"`
	BufferedItems int       `json:"buffered_items"`
	LastCheck     time.Time `json:"last_check"`
}
