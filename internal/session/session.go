// Package session holds the per-wizard state machine: interview, template
// suggestion, document assembly, live editing, and publishing for one user
// session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/takara45/ai-seo-homepage/internal/editor"
	"github.com/takara45/ai-seo-homepage/internal/hearing"
	"github.com/takara45/ai-seo-homepage/internal/publish"
	"github.com/takara45/ai-seo-homepage/internal/template"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

// Step is the wizard's current stage.
type Step string

const (
	StepHearing  Step = "hearing"
	StepTemplate Step = "template"
	StepEditor   Step = "editor"
)

var (
	ErrBusy            = errors.New("session: a call of this kind is already in flight")
	ErrWrongStep       = errors.New("session: operation not valid in the current step")
	ErrUnknownTemplate = errors.New("session: unknown template key")
	ErrNoDocument      = errors.New("session: no document assembled yet")
)

// TemplateSuggester produces one template suggestion from a profile.
type TemplateSuggester interface {
	SuggestTemplate(ctx context.Context, profile types.Profile) (types.TemplateSuggestion, error)
}

// Assembler produces the final document for a profile and chosen template.
type Assembler interface {
	Assemble(ctx context.Context, profile types.Profile, tmpl template.Descriptor) (string, error)
}

// Session is one wizard run. Interview turns, structure generation, and
// publish actions are strictly sequential; per-kind busy flags reject a
// second concurrent call of the same kind.
type Session struct {
	ID string

	suggester TemplateSuggester
	assembler Assembler

	mu         sync.Mutex
	step       Step
	flow       *hearing.Flow
	suggestion *types.TemplateSuggestion
	chosenKey  string
	editor     *editor.Editor
	publishing *publish.Session
	suggesting bool
	generating bool
}

func newSession(id string, suggester TemplateSuggester, assembler Assembler, host publish.Host) *Session {
	return &Session{
		ID:         id,
		suggester:  suggester,
		assembler:  assembler,
		step:       StepHearing,
		flow:       hearing.NewFlow(),
		editor:     editor.New(),
		publishing: publish.NewSession(host),
	}
}

// Snapshot is the session state exposed over the API.
type Snapshot struct {
	ID          string                    `json:"id"`
	Step        Step                      `json:"step"`
	Transcript  []hearing.Turn            `json:"transcript"`
	Suggestion  *types.TemplateSuggestion `json:"suggestion,omitempty"`
	ChosenKey   string                    `json:"chosenTemplate,omitempty"`
	HasDocument bool                      `json:"hasDocument"`
	Publish     types.PublishState        `json:"publish"`
	Busy        bool                      `json:"busy"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.ID,
		Step:        s.step,
		Transcript:  s.flow.Transcript(),
		Suggestion:  s.suggestion,
		ChosenKey:   s.chosenKey,
		HasDocument: s.editor.Loaded(),
		Publish:     s.publishing.State(),
		Busy:        s.suggesting || s.generating,
	}
}

// SubmitAnswer records one interview answer. When the interview completes it
// triggers the template-suggestion call; a suggestion failure surfaces as an
// error turn in the transcript and leaves the interview state intact, so the
// suggestion can be retried.
func (s *Session) SubmitAnswer(ctx context.Context, text string) (hearing.Status, error) {
	s.mu.Lock()
	if s.step != StepHearing {
		s.mu.Unlock()
		return "", ErrWrongStep
	}
	if s.suggesting {
		s.mu.Unlock()
		return "", ErrBusy
	}
	status, err := s.flow.SubmitAnswer(text)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if status != hearing.StatusComplete {
		s.mu.Unlock()
		return status, nil
	}
	s.suggesting = true
	profile := s.flow.Profile()
	s.mu.Unlock()

	s.suggest(ctx, profile)
	return hearing.StatusComplete, nil
}

// RetrySuggestion re-runs the template-suggestion call after a failure. The
// interview must already be complete; it is never replayed.
func (s *Session) RetrySuggestion(ctx context.Context) error {
	s.mu.Lock()
	if !s.flow.Complete() || s.suggestion != nil {
		s.mu.Unlock()
		return ErrWrongStep
	}
	if s.suggesting {
		s.mu.Unlock()
		return ErrBusy
	}
	s.suggesting = true
	profile := s.flow.Profile()
	s.mu.Unlock()

	s.suggest(ctx, profile)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suggestion == nil {
		return fmt.Errorf("session %s: template suggestion failed", s.ID)
	}
	return nil
}

// suggest performs the model call outside the lock, then commits the result.
func (s *Session) suggest(ctx context.Context, profile types.Profile) {
	suggestion, err := s.suggester.SuggestTemplate(ctx, profile)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggesting = false
	if err != nil {
		log.Printf("Session %s: template suggestion failed: %v", s.ID, err)
		s.flow.AppendError("The design suggestion could not be generated: " + err.Error())
		return
	}
	s.suggestion = &suggestion
	s.step = StepTemplate
}

// ChooseTemplate confirms a template and assembles the document. A
// generation failure returns the session to template selection without
// losing the profile or the chosen-template history.
func (s *Session) ChooseTemplate(ctx context.Context, key string) error {
	tmpl, ok := template.Get(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, key)
	}

	s.mu.Lock()
	if s.step != StepTemplate {
		s.mu.Unlock()
		return ErrWrongStep
	}
	if s.generating {
		s.mu.Unlock()
		return ErrBusy
	}
	s.generating = true
	s.chosenKey = key
	profile := s.flow.Profile()
	s.mu.Unlock()

	doc, err := s.assembler.Assemble(ctx, profile, tmpl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	if err != nil {
		log.Printf("Session %s: assembly failed for template %q: %v", s.ID, key, err)
		return err // step stays at template selection
	}
	if err := s.editor.Load(doc); err != nil {
		return err
	}
	s.step = StepEditor
	return nil
}

// Editor returns the live document editor. Valid once the session reached
// the editor step.
func (s *Session) Editor() (*editor.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepEditor {
		return nil, ErrNoDocument
	}
	return s.editor, nil
}

// Publish exports the live surface and hands it to the hosting collaborator.
func (s *Session) Publish(ctx context.Context, siteName string) (types.PublishState, error) {
	ed, err := s.Editor()
	if err != nil {
		return types.PublishState{}, err
	}
	return s.publishing.Publish(ctx, siteName, ed.ExportHTML())
}

// Unpublish takes the site down.
func (s *Session) Unpublish(ctx context.Context) error {
	if _, err := s.Editor(); err != nil {
		return err
	}
	return s.publishing.Unpublish(ctx)
}
