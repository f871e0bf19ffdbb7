package hearing

import "testing"

func TestFlowOpensWithFirstQuestion(t *testing.T) {
	f := NewFlow()
	tr := f.Transcript()
	if len(tr) != 1 {
		t.Fatalf("expected 1 opening turn, got %d", len(tr))
	}
	if tr[0].Role != "model" || tr[0].Text != Questions[0].Prompt {
		t.Errorf("unexpected opening turn: %+v", tr[0])
	}
}

func TestFlowCompletesExactlyOnce(t *testing.T) {
	f := NewFlow()
	answers := []string{"I run a cafe downtown", "ABC Inc.", "friendly and warm"}

	for i, a := range answers[:2] {
		status, err := f.SubmitAnswer(a)
		if err != nil {
			t.Fatalf("answer %d: unexpected error: %v", i, err)
		}
		if status != StatusContinue {
			t.Fatalf("answer %d: expected continue, got %q", i, status)
		}
	}

	status, err := f.SubmitAnswer(answers[2])
	if err != nil {
		t.Fatalf("final answer: unexpected error: %v", err)
	}
	if status != StatusComplete {
		t.Fatalf("expected complete, got %q", status)
	}
	if !f.Complete() {
		t.Error("flow should report complete")
	}

	p := f.Profile()
	if p.BusinessDescription != answers[0] || p.CompanyName != answers[1] || p.Atmosphere != answers[2] {
		t.Errorf("profile fields not recorded: %+v", p)
	}

	// Further submissions must never re-trigger completion.
	if _, err := f.SubmitAnswer("extra"); err != ErrComplete {
		t.Errorf("expected ErrComplete after finish, got %v", err)
	}
	if got := f.Profile(); got != p {
		t.Errorf("profile changed after completion: %+v", got)
	}
}

func TestFlowRejectsBlankAnswer(t *testing.T) {
	f := NewFlow()
	if _, err := f.SubmitAnswer("   \t "); err != ErrEmptyAnswer {
		t.Fatalf("expected ErrEmptyAnswer, got %v", err)
	}
	if len(f.Transcript()) != 1 {
		t.Error("rejected answer must not append transcript turns")
	}
}

func TestFlowTrimsAnswers(t *testing.T) {
	f := NewFlow()
	if _, err := f.SubmitAnswer("  flower shop  "); err != nil {
		t.Fatal(err)
	}
	if got := f.Profile().BusinessDescription; got != "flower shop" {
		t.Errorf("expected trimmed answer, got %q", got)
	}
}

func TestAppendErrorPreservesState(t *testing.T) {
	f := NewFlow()
	for _, a := range []string{"a cafe", "ABC", "warm"} {
		if _, err := f.SubmitAnswer(a); err != nil {
			t.Fatal(err)
		}
	}
	before := f.Profile()
	turns := len(f.Transcript())

	f.AppendError("suggestion call failed")

	if f.Profile() != before {
		t.Error("AppendError must not touch the profile")
	}
	if got := len(f.Transcript()); got != turns+1 {
		t.Errorf("expected one extra turn, got %d -> %d", turns, got)
	}
	if !f.Complete() {
		t.Error("flow must stay complete after a downstream error")
	}
}
