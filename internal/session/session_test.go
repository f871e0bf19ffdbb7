package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/takara45/ai-seo-homepage/internal/hearing"
	"github.com/takara45/ai-seo-homepage/internal/publish"
	"github.com/takara45/ai-seo-homepage/internal/template"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

type stubSuggester struct {
	suggestion types.TemplateSuggestion
	err        error
	calls      int
}

func (s *stubSuggester) SuggestTemplate(context.Context, types.Profile) (types.TemplateSuggestion, error) {
	s.calls++
	return s.suggestion, s.err
}

type stubAssembler struct {
	doc string
	err error
}

func (s *stubAssembler) Assemble(context.Context, types.Profile, template.Descriptor) (string, error) {
	return s.doc, s.err
}

func newTestStore(sg TemplateSuggester, asm Assembler) *Store {
	return NewStore(sg, asm, func() publish.Host { return publish.NewSimulatedHost("test.dev") })
}

func answerAll(t *testing.T, s *Session) {
	t.Helper()
	answers := []string{"a cafe", "ABC Inc.", "warm and friendly"}
	for i, a := range answers {
		status, err := s.SubmitAnswer(context.Background(), a)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		want := hearing.StatusContinue
		if i == len(answers)-1 {
			want = hearing.StatusComplete
		}
		if status != want {
			t.Fatalf("answer %d: status %q, want %q", i, status, want)
		}
	}
}

func TestWizardHappyPath(t *testing.T) {
	sg := &stubSuggester{suggestion: types.TemplateSuggestion{TemplateKey: "Friendly", Reason: "warm answers"}}
	asm := &stubAssembler{doc: "<html><body><h1>Site</h1></body></html>"}
	store := newTestStore(sg, asm)

	s := store.Create()
	if snap := s.Snapshot(); snap.Step != StepHearing || len(snap.Transcript) != 1 {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}

	answerAll(t, s)

	snap := s.Snapshot()
	if snap.Step != StepTemplate {
		t.Fatalf("expected template step after completion, got %q", snap.Step)
	}
	if snap.Suggestion == nil || snap.Suggestion.TemplateKey != "Friendly" {
		t.Fatalf("suggestion missing: %+v", snap.Suggestion)
	}

	if err := s.ChooseTemplate(context.Background(), "Friendly"); err != nil {
		t.Fatal(err)
	}
	snap = s.Snapshot()
	if snap.Step != StepEditor || !snap.HasDocument {
		t.Fatalf("expected editor step with document: %+v", snap)
	}

	ed, err := s.Editor()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ed.ExportHTML(), "Site") {
		t.Error("editor did not load the assembled document")
	}

	st, err := s.Publish(context.Background(), "my-cool-site")
	if err != nil {
		t.Fatal(err)
	}
	if st.URL != "https://my-cool-site.test.dev" {
		t.Errorf("publish url = %q", st.URL)
	}
	if err := s.Unpublish(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestSuggestionFailureKeepsInterviewState(t *testing.T) {
	sg := &stubSuggester{err: errors.New("model unavailable")}
	store := newTestStore(sg, &stubAssembler{doc: "<html></html>"})
	s := store.Create()

	answerAll(t, s)

	snap := s.Snapshot()
	if snap.Step != StepHearing {
		t.Errorf("failed suggestion must keep the hearing step, got %q", snap.Step)
	}
	if snap.Suggestion != nil {
		t.Error("no suggestion should be recorded on failure")
	}
	last := snap.Transcript[len(snap.Transcript)-1]
	if last.Role != "model" || !strings.Contains(last.Text, "could not be generated") {
		t.Errorf("expected visible error turn, got %+v", last)
	}

	// The interview is finished and must not be replayed.
	if _, err := s.SubmitAnswer(context.Background(), "again"); err != hearing.ErrComplete {
		t.Errorf("expected ErrComplete, got %v", err)
	}

	// Retry succeeds once the model recovers, without losing the profile.
	sg.err = nil
	sg.suggestion = types.TemplateSuggestion{TemplateKey: "Modern", Reason: "r"}
	if err := s.RetrySuggestion(context.Background()); err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot(); snap.Step != StepTemplate || snap.Suggestion.TemplateKey != "Modern" {
		t.Errorf("retry did not advance the wizard: %+v", snap)
	}
}

func TestAssemblyFailureReturnsToTemplateStep(t *testing.T) {
	sg := &stubSuggester{suggestion: types.TemplateSuggestion{TemplateKey: "Tech", Reason: "r"}}
	asm := &stubAssembler{err: errors.New("bad structure output")}
	store := newTestStore(sg, asm)
	s := store.Create()
	answerAll(t, s)

	if err := s.ChooseTemplate(context.Background(), "Tech"); err == nil {
		t.Fatal("expected assembly error")
	}
	snap := s.Snapshot()
	if snap.Step != StepTemplate {
		t.Errorf("failed assembly must return to template selection, got %q", snap.Step)
	}
	if snap.Suggestion == nil || snap.ChosenKey != "Tech" {
		t.Errorf("profile/template history lost: %+v", snap)
	}

	// Recovery: the same session can assemble again.
	asm.err = nil
	asm.doc = "<html><body><p>ok</p></body></html>"
	if err := s.ChooseTemplate(context.Background(), "Tech"); err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot(); snap.Step != StepEditor {
		t.Errorf("expected editor step after recovery, got %q", snap.Step)
	}
}

func TestChooseTemplateGuards(t *testing.T) {
	sg := &stubSuggester{suggestion: types.TemplateSuggestion{TemplateKey: "Bold", Reason: "r"}}
	store := newTestStore(sg, &stubAssembler{doc: "<html></html>"})
	s := store.Create()

	if err := s.ChooseTemplate(context.Background(), "Bold"); err != ErrWrongStep {
		t.Errorf("expected ErrWrongStep before interview completes, got %v", err)
	}
	answerAll(t, s)
	if err := s.ChooseTemplate(context.Background(), "Nope"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestStoreLifecycle(t *testing.T) {
	store := newTestStore(&stubSuggester{}, &stubAssembler{})
	s := store.Create()
	if s.ID == "" {
		t.Fatal("session id must be set")
	}
	got, err := store.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get returned %v, %v", got, err)
	}
	store.Delete(s.ID)
	if _, err := store.Get(s.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
