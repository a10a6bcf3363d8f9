package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lennyai/lenny-be/internal/delivery/http/entity"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiClient generates study content through the Gemini API: structured
// flashcard and quiz data from the text model, illustrative images from the
// image model. Image generation is best-effort per item and never fails a
// whole call.
type GeminiClient struct {
	TextModel  string
	ImageModel string
	client     *genai.Client
	log        *logrus.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, textModel, imageModel string, log *logrus.Logger) (*GeminiClient, error) {
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	if imageModel == "" {
		imageModel = "imagen-4.0-generate-001"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client init: %w", err)
	}

	return &GeminiClient{
		TextModel:  textModel,
		ImageModel: imageModel,
		client:     client,
		log:        log,
	}, nil
}

var flashcardSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"flashcards": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"heading": {
						Type:        genai.TypeString,
						Description: "A key sub-topic or concept.",
					},
					"information": {
						Type:        genai.TypeString,
						Description: "A concise summary of the information related to the heading.",
					},
				},
				Required: []string{"heading", "information"},
			},
		},
		"formulas": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "A list of important formulas or key takeaways. Empty if not applicable.",
		},
	},
	Required: []string{"flashcards", "formulas"},
}

var quizSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {
				Type:        genai.TypeString,
				Description: "The quiz question.",
			},
			"options": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "An array of 4 possible answers.",
			},
			"correctAnswer": {
				Type:        genai.TypeString,
				Description: "The correct answer, which must exactly match one of the options.",
			},
			"explanation": {
				Type:        genai.TypeString,
				Description: "A brief explanation for why the correct answer is correct.",
			},
			"hint": {
				Type:        genai.TypeString,
				Description: "An optional, concise hint for the question.",
			},
		},
		Required: []string{"question", "options", "correctAnswer", "explanation"},
	},
}

// GenerateFlashcards produces 4-10 flashcards plus a key-formula list for the
// topic, each card illustrated when Imagen cooperates.
func (c *GeminiClient) GenerateFlashcards(ctx context.Context, topic, gradeLevel string) (*entity.FlashcardData, error) {
	prompt := fmt.Sprintf(`Generate a set of educational flashcards (between 4 and 10) on the topic %q for a %s student. Each flashcard must have a "heading" and "information". Additionally, provide a comprehensive and exhaustive list of all relevant and important formulas or key takeaways related to the topic. For scientific or mathematical topics, be thorough and include all fundamental formulas. If there are no specific formulas (e.g., for a history topic), this should be a comprehensive list of key dates, figures, or principles. If none are applicable, return an empty array for formulas.`, topic, gradeLevel)

	text, err := c.generateStructured(ctx, prompt, flashcardSchema)
	if err != nil {
		return nil, err
	}

	var data entity.FlashcardData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("flashcard output is not valid json: %w", err)
	}
	if len(data.Flashcards) == 0 {
		return nil, fmt.Errorf("model returned no flashcards")
	}
	for i, card := range data.Flashcards {
		if card.Heading == "" || card.Information == "" {
			return nil, fmt.Errorf("flashcard %d missing required fields", i+1)
		}
	}
	if data.Formulas == nil {
		data.Formulas = []string{}
	}

	// Attach illustrations concurrently; a failed image leaves the card bare.
	type result struct {
		index int
		url   string
	}
	resultChan := make(chan result, len(data.Flashcards))
	for i, card := range data.Flashcards {
		go func(index int, heading string) {
			imagePrompt := fmt.Sprintf("A simple, clear, and visually appealing educational illustration for a flashcard about: '%s'. Minimalist style, focusing on the core concept.", heading)
			url, err := c.generateImage(ctx, imagePrompt)
			if err != nil {
				c.log.Warnf("flashcard image for %q skipped: %v", heading, err)
			}
			resultChan <- result{index: index, url: url}
		}(i, card.Heading)
	}
	for range data.Flashcards {
		r := <-resultChan
		data.Flashcards[r.index].ImageURL = r.url
	}

	return &data, nil
}

// GenerateQuiz produces a multiple-choice quiz for the topic at the given
// difficulty. Every question is checked against the wire contract: exactly
// four distinct options, a non-empty explanation, and a correct answer drawn
// from the options.
func (c *GeminiClient) GenerateQuiz(ctx context.Context, topic, gradeLevel string, difficulty entity.Difficulty) ([]entity.QuizQuestion, error) {
	prompt := fmt.Sprintf(`Create a multiple-choice quiz on the topic %q suitable for a %s student. The quiz must be at a %s difficulty level. Adjust the number of questions and their complexity based on the difficulty. For 'Easy', generate 4-5 simple, direct questions. For 'Medium', generate 6-8 questions requiring some interpretation. For 'Hard', generate 8-10 complex, multi-step, or nuanced questions. Each question must have 4 options, one correct answer, a brief explanation for the correct answer, and an optional, concise hint to help the user if they're stuck. The correctAnswer must be one of the strings from the options array.`, topic, gradeLevel, difficulty)

	text, err := c.generateStructured(ctx, prompt, quizSchema)
	if err != nil {
		return nil, err
	}

	var quiz []entity.QuizQuestion
	if err := json.Unmarshal([]byte(text), &quiz); err != nil {
		return nil, fmt.Errorf("quiz output is not valid json: %w", err)
	}
	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}

	type result struct {
		index int
		url   string
	}
	resultChan := make(chan result, len(quiz))
	for i, q := range quiz {
		go func(index int, explanation string) {
			imagePrompt := fmt.Sprintf("A simple, clear, educational illustration explaining: %q. Minimalist style, focusing on the core concept for a quiz explanation.", explanation)
			url, err := c.generateImage(ctx, imagePrompt)
			if err != nil {
				c.log.Warnf("explanation image for question %d skipped: %v", index+1, err)
			}
			resultChan <- result{index: index, url: url}
		}(i, q.Explanation)
	}
	for range quiz {
		r := <-resultChan
		quiz[r.index].ExplanationImageURL = r.url
	}

	return quiz, nil
}

func (c *GeminiClient) generateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.TextModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	text := cleanModelJSON(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return text, nil
}

// generateImage returns a JPEG data URL, or an error the caller swallows.
func (c *GeminiClient) generateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateImages(ctx, c.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "16:9",
	})
	if err != nil {
		return "", fmt.Errorf("imagen generate error: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", fmt.Errorf("imagen returned no images")
	}

	encoded := base64.StdEncoding.EncodeToString(resp.GeneratedImages[0].Image.ImageBytes)
	return "data:image/jpeg;base64," + encoded, nil
}

// cleanModelJSON strips markdown code fences some model responses still wrap
// around JSON payloads, schema mode notwithstanding.
func cleanModelJSON(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func validateQuiz(quiz []entity.QuizQuestion) error {
	if len(quiz) == 0 {
		return fmt.Errorf("model returned no questions")
	}
	for i, q := range quiz {
		if q.Question == "" {
			return fmt.Errorf("question %d is empty", i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d has %d options, want 4", i+1, len(q.Options))
		}
		seen := make(map[string]bool, 4)
		for _, opt := range q.Options {
			if opt == "" {
				return fmt.Errorf("question %d has an empty option", i+1)
			}
			if seen[opt] {
				return fmt.Errorf("question %d has duplicate option %q", i+1, opt)
			}
			seen[opt] = true
		}
		if q.Explanation == "" {
			return fmt.Errorf("question %d has no explanation", i+1)
		}
		if !seen[q.CorrectAnswer] {
			return fmt.Errorf("question %d: correct answer %q is not among the options", i+1, q.CorrectAnswer)
		}
	}
	return nil
}
