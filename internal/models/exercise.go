package models

// Exercise is a procedurally generated practice problem. Ephemeral: never
// persisted, regenerated on demand, not part of any scored session.
type Exercise struct {
	ID         string         `json:"id"`
	Problem    string         `json:"problem"`
	Solution   string         `json:"solution"`
	Points     int            `json:"points"`
	Difficulty string         `json:"difficulty"`
	Topic      string         `json:"topic"`
	Values     map[string]any `json:"values"`
}

// Lesson is a static study unit recommended when a topic needs work.
type Lesson struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	Difficulty int    `json:"difficulty"`
}
