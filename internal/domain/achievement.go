package domain

// Achievement describes an unlockable reward from the static catalog.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
}

// AchievementProgress is the user-facing view of one catalog entry:
// whether it is earned and, for partially-complete achievements, how far
// along the user is.
type AchievementProgress struct {
	Achievement
	Earned  bool `json:"earned"`
	Current int  `json:"current"`
	Target  int  `json:"target"`
}
