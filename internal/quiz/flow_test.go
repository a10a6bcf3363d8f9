package quiz

import (
	"reflect"
	"testing"
)

func TestNewFlow_RequiresQuestions(t *testing.T) {
	if _, err := NewFlow(0); err != ErrNoQuestions {
		t.Errorf("NewFlow(0) error = %v, want ErrNoQuestions", err)
	}
	if _, err := NewFlow(-3); err != ErrNoQuestions {
		t.Errorf("NewFlow(-3) error = %v, want ErrNoQuestions", err)
	}
	f, err := NewFlow(1)
	if err != nil {
		t.Fatalf("NewFlow(1) error = %v", err)
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
}

func TestFlow_FullyAnsweredSubmitReturnsAnswersUnchanged(t *testing.T) {
	f, _ := NewFlow(3)
	for _, a := range []string{"A", "B", "C"} {
		f.SelectAnswer(a)
		f.Advance()
	}

	answers, done := f.Submit()
	if !done {
		t.Fatal("Submit() done = false with all slots answered")
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(answers, want) {
		t.Errorf("Submit() answers = %v, want %v", answers, want)
	}
	if f.Reviewing() {
		t.Error("Submit() entered reviewing mode with all slots answered")
	}
}

func TestFlow_SubmitWithGapsEntersReview(t *testing.T) {
	f, _ := NewFlow(5)
	// Answer 0 and 3, leave 1, 2, 4 unanswered.
	f.SelectAnswer("a0")
	f.Advance() // 1
	f.Advance() // 2
	f.Advance() // 3
	f.SelectAnswer("a3")

	answers, done := f.Submit()
	if done || answers != nil {
		t.Fatalf("Submit() = (%v, %v), want review entry", answers, done)
	}
	if !f.Reviewing() {
		t.Fatal("Submit() did not enter reviewing mode")
	}
	if want := []int{1, 2, 4}; !reflect.DeepEqual(f.ReviewQueue(), want) {
		t.Errorf("ReviewQueue() = %v, want %v", f.ReviewQueue(), want)
	}
	if f.Position() != 1 {
		t.Errorf("Position() = %d, want first unanswered index 1", f.Position())
	}
}

func TestFlow_SubmitIsIdempotentWithoutNewAnswers(t *testing.T) {
	f, _ := NewFlow(4)
	f.SelectAnswer("a0")

	f.Submit()
	first := f.ReviewQueue()
	firstPos := f.Position()

	f.Submit()
	if !reflect.DeepEqual(f.ReviewQueue(), first) {
		t.Errorf("second Submit() queue = %v, want %v", f.ReviewQueue(), first)
	}
	if f.Position() != firstPos {
		t.Errorf("second Submit() position = %d, want %d", f.Position(), firstPos)
	}
}

func TestFlow_ResubmitRecomputesQueueAscending(t *testing.T) {
	f, _ := NewFlow(4)
	f.Submit() // queue = [0 1 2 3], position 0

	// Answer 0 and 2 during review, navigating out of order.
	f.SelectAnswer("a0")
	f.Advance()
	f.Advance() // position 2
	f.SelectAnswer("a2")

	f.Submit()
	if want := []int{1, 3}; !reflect.DeepEqual(f.ReviewQueue(), want) {
		t.Errorf("recomputed queue = %v, want %v", f.ReviewQueue(), want)
	}
	if f.Position() != 1 {
		t.Errorf("Position() = %d, want 1", f.Position())
	}
}

func TestFlow_SkipOnLastEqualsSubmit(t *testing.T) {
	viaSkip, _ := NewFlow(3)
	viaSkip.SelectAnswer("a0")
	viaSkip.Advance()
	viaSkip.SelectAnswer("a1")
	viaSkip.Advance()
	_, done := viaSkip.Skip() // last question unanswered

	viaSubmit, _ := NewFlow(3)
	viaSubmit.SelectAnswer("a0")
	viaSubmit.Advance()
	viaSubmit.SelectAnswer("a1")
	viaSubmit.Advance()
	viaSubmit.Submit()

	if done {
		t.Fatal("Skip() on last unanswered question finalized the quiz")
	}
	if !viaSkip.Reviewing() || !viaSubmit.Reviewing() {
		t.Fatal("expected both flows in reviewing mode")
	}
	if !reflect.DeepEqual(viaSkip.ReviewQueue(), viaSubmit.ReviewQueue()) {
		t.Errorf("queues differ: skip=%v submit=%v", viaSkip.ReviewQueue(), viaSubmit.ReviewQueue())
	}
	if viaSkip.Position() != viaSubmit.Position() {
		t.Errorf("positions differ: skip=%d submit=%d", viaSkip.Position(), viaSubmit.Position())
	}
}

func TestFlow_SkipOnFullyAnsweredLastFinalizes(t *testing.T) {
	f, _ := NewFlow(2)
	f.SelectAnswer("a0")
	f.Advance()
	f.SelectAnswer("a1")

	answers, done := f.Skip()
	if !done {
		t.Fatal("Skip() on answered last question should finalize like Submit")
	}
	if want := []string{"a0", "a1"}; !reflect.DeepEqual(answers, want) {
		t.Errorf("answers = %v, want %v", answers, want)
	}
}

func TestFlow_SkipDisabledWhileReviewing(t *testing.T) {
	f, _ := NewFlow(2)
	f.Submit() // enter review at 0

	answers, done := f.Skip()
	if answers != nil || done {
		t.Errorf("Skip() while reviewing = (%v, %v), want no-op", answers, done)
	}
	if f.Position() != 0 {
		t.Errorf("Skip() while reviewing moved position to %d", f.Position())
	}
}

func TestFlow_LinearNavigationBounds(t *testing.T) {
	f, _ := NewFlow(3)

	f.Retreat()
	if f.Position() != 0 {
		t.Errorf("Retreat() at start moved to %d", f.Position())
	}

	f.Advance()
	f.Advance()
	f.Advance() // past the end, no-op
	if f.Position() != 2 {
		t.Errorf("Advance() past end, position = %d, want 2", f.Position())
	}
}

func TestFlow_ReviewNavigationFollowsQueueOrder(t *testing.T) {
	f, _ := NewFlow(6)
	f.SelectAnswer("a0")
	f.Advance()
	f.Advance() // skip 1
	f.SelectAnswer("a2")
	f.Advance()
	f.Advance() // skip 3
	f.SelectAnswer("a4")
	f.Advance()
	f.Submit() // unanswered: 1, 3, 5

	if f.Position() != 1 {
		t.Fatalf("review start position = %d, want 1", f.Position())
	}
	f.Advance()
	if f.Position() != 3 {
		t.Errorf("review Advance() position = %d, want 3", f.Position())
	}
	f.Advance()
	if f.Position() != 5 {
		t.Errorf("review Advance() position = %d, want 5", f.Position())
	}
	f.Advance() // past end of queue, no-op
	if f.Position() != 5 {
		t.Errorf("review Advance() past queue end, position = %d, want 5", f.Position())
	}
	f.Retreat()
	if f.Position() != 3 {
		t.Errorf("review Retreat() position = %d, want 3", f.Position())
	}
	f.Retreat()
	f.Retreat() // before start of queue, no-op
	if f.Position() != 1 {
		t.Errorf("review Retreat() before queue start, position = %d, want 1", f.Position())
	}
}

func TestFlow_SelectAnswerOverwrites(t *testing.T) {
	f, _ := NewFlow(1)
	f.SelectAnswer("first")
	f.SelectAnswer("second")
	if got := f.Answers()[0]; got != "second" {
		t.Errorf("answer = %q, want %q", got, "second")
	}
}

func TestFlow_ProgressAndPrimaryAction(t *testing.T) {
	f, _ := NewFlow(4)

	label, pct := f.Progress()
	if label != "Question 1 of 4" || pct != 25 {
		t.Errorf("Progress() = (%q, %v), want (Question 1 of 4, 25)", label, pct)
	}
	if !f.FirstInSequence() || f.LastInSequence() || f.OffersSubmit() {
		t.Error("unexpected sequence flags on first linear question")
	}

	f.Advance()
	f.Advance()
	f.Advance()
	if !f.LastInSequence() || !f.OffersSubmit() {
		t.Error("last linear question should offer submit")
	}

	// Early full submission: all answered while not on the last item.
	g, _ := NewFlow(3)
	g.SelectAnswer("a0")
	g.Advance()
	g.SelectAnswer("a1")
	g.Advance()
	g.SelectAnswer("a2")
	g.Retreat()
	if !g.OffersSubmit() {
		t.Error("fully answered flow should offer submit from any position")
	}

	// Review-mode progress counts queue positions, not question indices.
	h, _ := NewFlow(4)
	h.SelectAnswer("a0")
	h.Advance()
	h.SelectAnswer("a1")
	h.Advance()
	h.Submit() // unanswered: 2, 3
	label, pct = h.Progress()
	if label != "Reviewing skipped question 1 of 2" || pct != 50 {
		t.Errorf("review Progress() = (%q, %v), want (Reviewing skipped question 1 of 2, 50)", label, pct)
	}
	if !h.FirstInSequence() || h.LastInSequence() {
		t.Error("unexpected sequence flags at review queue start")
	}
	h.Advance()
	if !h.LastInSequence() || !h.OffersSubmit() {
		t.Error("last review question should offer submit")
	}
}

func TestFlow_SingleQuestionQuiz(t *testing.T) {
	f, _ := NewFlow(1)

	// Skipping the only question goes straight into review of it.
	_, done := f.Skip()
	if done || !f.Reviewing() {
		t.Fatal("skipping the only question should enter review")
	}
	if want := []int{0}; !reflect.DeepEqual(f.ReviewQueue(), want) {
		t.Errorf("ReviewQueue() = %v, want %v", f.ReviewQueue(), want)
	}

	f.SelectAnswer("only")
	answers, done := f.Submit()
	if !done {
		t.Fatal("Submit() after answering should finalize")
	}
	if want := []string{"only"}; !reflect.DeepEqual(answers, want) {
		t.Errorf("answers = %v, want %v", answers, want)
	}
}
