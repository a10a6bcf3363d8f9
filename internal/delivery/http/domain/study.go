package domain

var (
	STUDY_SESSION_CREATE_SUCCESS = "Study session created"
	STUDY_SESSION_CREATE_FAILED  = "Failed to create study session"
	STUDY_SESSION_GET_SUCCESS    = "Study session retrieved"
	STUDY_SESSION_GET_FAILED     = "Failed to retrieve study session"

	STUDY_FLASHCARDS_GENERATE_SUCCESS = "Flashcards generated"
	// Also the user-visible session error after a gateway failure.
	STUDY_FLASHCARDS_GENERATE_FAILED = "Failed to generate flashcards. Please try again."

	STUDY_QUIZ_GENERATE_SUCCESS = "Quiz generated"
	// Also the user-visible session error after a gateway failure.
	STUDY_QUIZ_GENERATE_FAILED = "Failed to generate the quiz. Please try again."

	STUDY_PHASE_CHANGE_SUCCESS = "Phase updated"
	STUDY_PHASE_CHANGE_FAILED  = "Failed to update phase"

	STUDY_QUIZ_ACTION_SUCCESS = "Quiz updated"
	STUDY_QUIZ_ACTION_FAILED  = "Failed to update quiz"

	STUDY_HISTORY_GET_SUCCESS = "Study history retrieved"

	STUDY_THEME_GET_SUCCESS = "Theme preference retrieved"
	STUDY_THEME_SET_SUCCESS = "Theme preference saved"
	STUDY_THEME_SET_FAILED  = "Failed to save theme preference"
)
