package llm

import (
	"strings"
	"testing"

	"github.com/lennyai/lenny-be/internal/delivery/http/entity"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain json",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "bare fence",
			in:   "```\n[1,2]\n```",
			want: `[1,2]`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n {\"a\":1} \n ",
			want: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.in); got != tt.want {
				t.Errorf("cleanModelJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func validQuestion() entity.QuizQuestion {
	return entity.QuizQuestion{
		Question:      "What is 2+2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: "4",
		Explanation:   "Basic addition.",
	}
}

func TestValidateQuiz(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*entity.QuizQuestion)
		empty   bool
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(q *entity.QuizQuestion) {},
		},
		{
			name:    "no questions",
			empty:   true,
			wantErr: "no questions",
		},
		{
			name:    "wrong option count",
			mutate:  func(q *entity.QuizQuestion) { q.Options = q.Options[:3] },
			wantErr: "3 options",
		},
		{
			name:    "duplicate options",
			mutate:  func(q *entity.QuizQuestion) { q.Options[2] = q.Options[1] },
			wantErr: "duplicate option",
		},
		{
			name:    "missing explanation",
			mutate:  func(q *entity.QuizQuestion) { q.Explanation = "" },
			wantErr: "no explanation",
		},
		{
			name:    "correct answer not an option",
			mutate:  func(q *entity.QuizQuestion) { q.CorrectAnswer = "7" },
			wantErr: "not among the options",
		},
		{
			name:    "empty option",
			mutate:  func(q *entity.QuizQuestion) { q.Options[0] = "" },
			wantErr: "empty option",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var quiz []entity.QuizQuestion
			if !tt.empty {
				q := validQuestion()
				tt.mutate(&q)
				quiz = []entity.QuizQuestion{q}
			}

			err := validateQuiz(quiz)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateQuiz() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateQuiz() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
