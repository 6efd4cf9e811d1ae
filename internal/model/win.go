package model

// Win is a cumulative win counter for a player name. Created lazily on the
// first win and retained for the life of the process.
type Win struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}
