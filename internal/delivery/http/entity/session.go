package entity

// SessionView is the stateless projection of a study session returned to the
// client. Only the fields relevant to the current phase are populated; quiz
// answers and explanations are withheld until the results phase.
type SessionView struct {
	SessionID  string       `json:"session_id"`
	Phase      string       `json:"phase"`
	Topic      string       `json:"topic,omitempty"`
	GradeLevel string       `json:"grade_level,omitempty"`
	Difficulty Difficulty   `json:"difficulty,omitempty"`
	Error      string       `json:"error,omitempty"`
	Flashcards []Flashcard  `json:"flashcards,omitempty"`
	Formulas   []string     `json:"formulas,omitempty"`
	Quiz       *QuizView    `json:"quiz,omitempty"`
	Results    *ResultsView `json:"results,omitempty"`
}

// QuizView projects the quiz flow state for the question currently displayed.
type QuizView struct {
	ProgressLabel   string   `json:"progress_label"`
	ProgressPercent float64  `json:"progress_percent"`
	Reviewing       bool     `json:"reviewing"`
	QuestionIndex   int      `json:"question_index"`
	TotalQuestions  int      `json:"total_questions"`
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	Hint            string   `json:"hint,omitempty"`
	SelectedOption  string   `json:"selected_option,omitempty"`
	FirstInSequence bool     `json:"first_in_sequence"`
	LastInSequence  bool     `json:"last_in_sequence"`
	AllAnswered     bool     `json:"all_answered"`
	OffersSubmit    bool     `json:"offers_submit"`
}

// QuestionResult is the per-question breakdown shown after submission.
type QuestionResult struct {
	Question            string   `json:"question"`
	Options             []string `json:"options"`
	CorrectAnswer       string   `json:"correct_answer"`
	UserAnswer          string   `json:"user_answer,omitempty"`
	IsCorrect           bool     `json:"is_correct"`
	Explanation         string   `json:"explanation"`
	ExplanationImageURL string   `json:"explanation_image_url,omitempty"`
}

// ResultsView is the scored outcome of a submitted quiz.
type ResultsView struct {
	Score           int              `json:"score"`
	TotalQuestions  int              `json:"total_questions"`
	ScorePercentage int              `json:"score_percentage"`
	StudyCount      int              `json:"study_count"`
	Questions       []QuestionResult `json:"questions"`
}
