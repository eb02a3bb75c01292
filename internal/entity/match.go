package entity

import "time"

const (
	EasyDifficulty   = "easy"
	NormalDifficulty = "normal"
	HardDifficulty   = "hard"
)

const (
	LocalMode = "local"
	HostMode  = "host"
	JoinMode  = "join"
)

// Match - the archived record of one finished game.
type Match struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty,omitempty"`
	Winner     string    `json:"winner"`
	Moves      int       `json:"moves"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
