package domain

import "time"

// HistoryCapacity bounds the command history.
const HistoryCapacity = 12

// CommandRecord is a previously built or executed command.
type CommandRecord struct {
	Cmd      string    `json:"cmd"`
	IssuedAt time.Time `json:"ts"`
}
