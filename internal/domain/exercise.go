package domain

// Exercise is a read-only entry in the built-in exercise catalog. Plans
// reference catalog entries by id but carry their own copy of the fields
// they need, so catalog edits never mutate saved plans.
type Exercise struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	MuscleGroup    string   `json:"muscleGroup"`
	Equipment      string   `json:"equipment"`
	Instructions   []string `json:"instructions"`
	CommonMistakes []string `json:"commonMistakes"`
	Difficulty     Level    `json:"difficulty"`
}
