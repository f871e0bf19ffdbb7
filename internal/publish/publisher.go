// Package publish validates site names and tracks the publish/unpublish
// lifecycle of one document against an external hosting collaborator.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync"

	"github.com/takara45/ai-seo-homepage/internal/types"
)

var (
	// ErrInvalidSiteName is a local validation failure; it never reaches the
	// hosting collaborator.
	ErrInvalidSiteName = errors.New("publish: invalid site name")
	// ErrActionInFlight means a publish or unpublish call is already running
	// for this session.
	ErrActionInFlight = errors.New("publish: another publish action is in flight")
	// ErrNotPublished means there is nothing to unpublish.
	ErrNotPublished = errors.New("publish: site is not published")
)

// siteNameRe: lowercase alphanumeric segments joined by single hyphens.
var siteNameRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSiteName enforces the naming rule: lowercase alphanumeric segments
// joined by single hyphens, longer than 3 and shorter than 30 characters.
func ValidateSiteName(name string) error {
	if len(name) <= 3 || len(name) >= 30 {
		return fmt.Errorf("%w: must be between 4 and 29 characters, got %d", ErrInvalidSiteName, len(name))
	}
	if !siteNameRe.MatchString(name) {
		return fmt.Errorf("%w: only lowercase letters, digits, and single hyphens between segments", ErrInvalidSiteName)
	}
	return nil
}

// Session tracks whether the current document is live and serializes
// publish/unpublish actions: only one may be in flight at a time.
type Session struct {
	host Host

	mu       sync.Mutex
	inFlight bool
	state    types.PublishState
}

func NewSession(host Host) *Session {
	return &Session{host: host}
}

// State returns the current publish state.
func (s *Session) State() types.PublishState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrActionInFlight
	}
	s.inFlight = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// Publish validates the name, then hands the document to the host. On
// success the session records the derived URL. Republishing with the same
// name replaces the hosted content. A failure leaves the state untouched.
func (s *Session) Publish(ctx context.Context, siteName, html string) (types.PublishState, error) {
	if err := ValidateSiteName(siteName); err != nil {
		return s.State(), err
	}
	if err := s.begin(); err != nil {
		return s.State(), err
	}
	defer s.end()

	url, err := s.host.Publish(ctx, siteName, html)
	if err != nil {
		log.Printf("Publish of %q failed: %v", siteName, err)
		return s.State(), fmt.Errorf("publish %q: %w", siteName, err)
	}

	s.mu.Lock()
	s.state = types.PublishState{IsPublished: true, SiteName: siteName, URL: url}
	st := s.state
	s.mu.Unlock()

	log.Printf("Published site %q at %s", siteName, url)
	return st, nil
}

// Unpublish tears the site down and clears the publish state on success.
func (s *Session) Unpublish(ctx context.Context) error {
	s.mu.Lock()
	published := s.state.IsPublished
	s.mu.Unlock()
	if !published {
		return ErrNotPublished
	}

	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.host.Unpublish(ctx); err != nil {
		log.Printf("Unpublish failed: %v", err)
		return fmt.Errorf("unpublish: %w", err)
	}

	s.mu.Lock()
	s.state = types.PublishState{}
	s.mu.Unlock()
	return nil
}
