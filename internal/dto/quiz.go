package dto

// GenerateQuizRequest asks for a generated quiz. Content takes precedence
// over Topic when both are set.
type GenerateQuizRequest struct {
	Content      string `json:"content,omitempty"`
	Topic        string `json:"topic,omitempty"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

// QuestionResponse is one generated question. The correct index travels
// with the payload so submission can be graded client-side too; grading of
// record happens on submit.
type QuestionResponse struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation"`
}

// GenerateQuizResponse is the generated quiz.
type GenerateQuizResponse struct {
	Subject    string             `json:"subject"`
	Difficulty string             `json:"difficulty"`
	Questions  []QuestionResponse `json:"questions"`
}

// SubmitQuizRequest records a completed quiz attempt.
type SubmitQuizRequest struct {
	Subject          string `json:"subject"`
	Difficulty       string `json:"difficulty"`
	QuestionCount    int    `json:"question_count"`
	CorrectCount     int    `json:"correct_count"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// SubmitQuizResponse reports the effect of the recorded attempt.
type SubmitQuizResponse struct {
	EventID            string                `json:"event_id"`
	XPAwarded          int                   `json:"xp_awarded"`
	ScorePercent       float64               `json:"score_percent"`
	Stats              StatsResponse         `json:"stats"`
	EarnedAchievements []AchievementResponse `json:"earned_achievements"`
}
