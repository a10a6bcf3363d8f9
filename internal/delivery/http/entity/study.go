package entity

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Flashcard is one generated study card. ImageURL is a data URL when the
// best-effort illustration succeeded, empty otherwise.
type Flashcard struct {
	Heading     string `json:"heading"`
	Information string `json:"information"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// FlashcardData is the full result of one flashcard generation: the cards
// plus the key formulas / takeaways list, which may be empty.
type FlashcardData struct {
	Flashcards []Flashcard `json:"flashcards"`
	Formulas   []string    `json:"formulas"`
}

// QuizQuestion is one generated multiple-choice question. CorrectAnswer is
// always one of the four options.
type QuizQuestion struct {
	Question            string   `json:"question"`
	Options             []string `json:"options"`
	CorrectAnswer       string   `json:"correctAnswer"`
	Explanation         string   `json:"explanation"`
	Hint                string   `json:"hint,omitempty"`
	ExplanationImageURL string   `json:"explanationImageUrl,omitempty"`
}

// TopicHistoryItem is one entry of the most-recently-studied list.
type TopicHistoryItem struct {
	Topic      string `json:"topic"`
	GradeLevel string `json:"gradeLevel"`
	Count      int    `json:"count"`
}

// Request to generate flashcards for a topic
type GenerateFlashcardsRequest struct {
	Topic      string `json:"topic" validate:"required,max=200"`
	GradeLevel string `json:"grade_level" validate:"required,oneof='Elementary School' 'Middle School' 'High School' 'University'"`
}

// Request to pick a difficulty and generate the quiz
type GenerateQuizRequest struct {
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
}

// Request to answer the question currently displayed
type SelectAnswerRequest struct {
	Option string `json:"option" validate:"required"`
}

// Request to set the persisted theme preference
type SetThemeRequest struct {
	Theme Theme `json:"theme" validate:"required,oneof=light dark"`
}

// Response carrying the persisted theme preference
type ThemeResponse struct {
	Theme Theme `json:"theme"`
}
