// Package quiz implements the answer-collection and skip/review sequencing
// for a fixed, ordered list of multiple-choice questions. It is a pure state
// machine with no knowledge of question content, rendering, or transport.
package quiz

import (
	"errors"
	"fmt"
)

// Unanswered is the sentinel stored in an answer slot the user has not filled.
const Unanswered = ""

var ErrNoQuestions = errors.New("quiz: flow requires at least one question")

// Flow sequences a user through N questions, collecting at most one answer
// per question. Questions left unanswered at a submission attempt are replayed
// in a review pass over their original indices in ascending order.
//
// Position is always an index into the question list, never an index into the
// review queue, so presentation code addresses questions the same way in both
// modes.
type Flow struct {
	answers     []string
	reviewing   bool
	reviewQueue []int
	position    int
}

// NewFlow creates a flow over n questions with every slot unanswered.
func NewFlow(n int) (*Flow, error) {
	if n < 1 {
		return nil, ErrNoQuestions
	}
	return &Flow{answers: make([]string, n)}, nil
}

// Len returns the number of questions in the flow.
func (f *Flow) Len() int { return len(f.answers) }

// Position returns the index of the question currently displayed.
func (f *Flow) Position() int { return f.position }

// Reviewing reports whether the flow is replaying skipped questions.
func (f *Flow) Reviewing() bool { return f.reviewing }

// ReviewQueue returns a copy of the current review pass, in ascending
// original-index order. Empty until a submission attempt found unanswered
// slots.
func (f *Flow) ReviewQueue() []int {
	out := make([]int, len(f.reviewQueue))
	copy(out, f.reviewQueue)
	return out
}

// Answers returns a copy of the answer slots, Unanswered sentinels included.
func (f *Flow) Answers() []string {
	out := make([]string, len(f.answers))
	copy(out, f.answers)
	return out
}

// SelectAnswer records option for the current question, overwriting any
// earlier choice. Sequencing is unaffected. The option string is stored as
// given: membership in the question's option list is the caller's concern,
// matching the permissiveness of the surface this controller serves.
func (f *Flow) SelectAnswer(option string) {
	f.answers[f.position] = option
}

// Advance moves to the next question in the active sequence: the next review
// queue entry while reviewing, the next linear index otherwise. No-op at the
// end of the active sequence.
func (f *Flow) Advance() {
	if f.reviewing {
		if qi := f.queueIndex(); qi >= 0 && qi < len(f.reviewQueue)-1 {
			f.position = f.reviewQueue[qi+1]
		}
		return
	}
	if f.position < len(f.answers)-1 {
		f.position++
	}
}

// Retreat moves to the previous question in the active sequence. No-op at the
// start of the active sequence.
func (f *Flow) Retreat() {
	if f.reviewing {
		if qi := f.queueIndex(); qi > 0 {
			f.position = f.reviewQueue[qi-1]
		}
		return
	}
	if f.position > 0 {
		f.position--
	}
}

// Skip leaves the current slot unanswered and advances linearly. Skipping the
// last question behaves exactly like Submit, so a linear pass that ends on a
// skip still reaches the review gate. Skip is disabled while reviewing: a
// review pass must be answered or navigated, not skipped.
func (f *Flow) Skip() (answers []string, done bool) {
	if f.reviewing {
		return nil, false
	}
	if f.position < len(f.answers)-1 {
		f.position++
		return nil, false
	}
	return f.Submit()
}

// Submit attempts to finalize the quiz. If any slot is unanswered it enters
// (or restarts) reviewing mode over exactly those indices, ascending, and
// reports done=false. Otherwise it returns the completed answer set and
// leaves the flow untouched. The unanswered set is recomputed from scratch on
// every call, so repeated submissions shrink the review queue as slots fill.
func (f *Flow) Submit() (answers []string, done bool) {
	var unanswered []int
	for i, a := range f.answers {
		if a == Unanswered {
			unanswered = append(unanswered, i)
		}
	}

	if len(unanswered) > 0 {
		f.reviewing = true
		f.reviewQueue = unanswered
		f.position = unanswered[0]
		return nil, false
	}

	return f.Answers(), true
}

// AllAnswered reports whether every slot holds an answer.
func (f *Flow) AllAnswered() bool {
	for _, a := range f.answers {
		if a == Unanswered {
			return false
		}
	}
	return true
}

// FirstInSequence reports whether the current position is the first of the
// active sequence (review queue while reviewing, linear order otherwise).
func (f *Flow) FirstInSequence() bool {
	if f.reviewing {
		return f.queueIndex() == 0
	}
	return f.position == 0
}

// LastInSequence reports whether the current position is the last of the
// active sequence.
func (f *Flow) LastInSequence() bool {
	if f.reviewing {
		return f.queueIndex() == len(f.reviewQueue)-1
	}
	return f.position == len(f.answers)-1
}

// OffersSubmit reports whether submit, rather than next, should be the
// primary action: on the last item of the active sequence, or as soon as all
// slots are answered (early full submission).
func (f *Flow) OffersSubmit() bool {
	return f.LastInSequence() || f.AllAnswered()
}

// Progress returns the user-facing progress label and completion percentage
// for the active sequence.
func (f *Flow) Progress() (label string, percent float64) {
	if f.reviewing {
		qi := f.queueIndex()
		label = fmt.Sprintf("Reviewing skipped question %d of %d", qi+1, len(f.reviewQueue))
		percent = float64(qi+1) / float64(len(f.reviewQueue)) * 100
		return label, percent
	}
	label = fmt.Sprintf("Question %d of %d", f.position+1, len(f.answers))
	percent = float64(f.position+1) / float64(len(f.answers)) * 100
	return label, percent
}

// queueIndex locates the current position inside the review queue.
func (f *Flow) queueIndex() int {
	for i, idx := range f.reviewQueue {
		if idx == f.position {
			return i
		}
	}
	return -1
}
