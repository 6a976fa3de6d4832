package domain

// Goal is the training objective a user is working toward.
type Goal string

const (
	GoalCut         Goal = "cut"
	GoalHypertrophy Goal = "hypertrophy"
	GoalEndurance   Goal = "endurance"
	GoalStrength    Goal = "strength"
)

// Level describes training experience.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// UserAccount is a registered credential record. Email is the unique key
// (case-sensitive exact match). Password holds whatever the configured
// credential codec produced: plaintext by default, a bcrypt hash when the
// bcrypt codec is enabled.
type UserAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile is the per-user training profile. One per user, created with
// defaults at registration and replaced wholesale on update.
type UserProfile struct {
	Name        string   `json:"name"`
	Goal        Goal     `json:"goal"`
	Level       Level    `json:"level"`
	DaysPerWeek int      `json:"daysPerWeek"` // 1..7
	Equipment   []string `json:"equipment"`
	Limitations string   `json:"limitations"`
	Preferences string   `json:"preferences"`
}

// DefaultProfile returns the profile a freshly registered user starts with.
func DefaultProfile(name string) UserProfile {
	return UserProfile{
		Name:        name,
		Goal:        GoalHypertrophy,
		Level:       LevelBeginner,
		DaysPerWeek: 3,
		Equipment:   []string{},
	}
}

// ValidGoal reports whether g is one of the known training goals.
func ValidGoal(g Goal) bool {
	switch g {
	case GoalCut, GoalHypertrophy, GoalEndurance, GoalStrength:
		return true
	}
	return false
}

// ValidLevel reports whether l is one of the known experience levels.
func ValidLevel(l Level) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
