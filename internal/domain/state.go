package domain

// UserData is the per-user persisted blob: everything scoped to one email.
// Swapped in full (never merged) when the authenticated user changes.
type UserData struct {
	Profile  *UserProfile     `json:"profile"`
	Plans    []WorkoutPlan    `json:"plans"`
	Sessions []WorkoutSession `json:"sessions"`
}

// UserState is the root aggregate the UI layer reads. RegisteredUsers is
// device-wide; the remaining fields belong to CurrentUserEmail.
type UserState struct {
	RegisteredUsers  []UserAccount    `json:"registeredUsers"`
	CurrentUserEmail string           `json:"currentUserEmail,omitempty"`
	IsAuthenticated  bool             `json:"isAuthenticated"`
	Profile          *UserProfile     `json:"profile"`
	Plans            []WorkoutPlan    `json:"plans"`
	Sessions         []WorkoutSession `json:"sessions"`
}
