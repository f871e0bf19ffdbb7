package hearing

import (
	"errors"
	"strings"

	"github.com/takara45/ai-seo-homepage/internal/types"
)

// Question names one profile field and carries the wording shown to the user.
type Question struct {
	Field  string `json:"field"`
	Prompt string `json:"prompt"`
}

// Questions is the fixed interview script, asked in order.
var Questions = []Question{
	{
		Field:  "businessDescription",
		Prompt: "Nice to meet you! Tell me about your business. What kind of work do you do? (e.g. I run a cafe downtown)",
	},
	{
		Field:  "companyName",
		Prompt: "Next, what is your company or shop name? (e.g. ABC Inc.)",
	},
	{
		Field:  "atmosphere",
		Prompt: "Thanks! What kind of atmosphere would you like for your website? (e.g. upscale, friendly, modern and stylish)",
	},
}

const closingMessage = "Thank you! Based on your answers, I'll suggest the best design for you."

// Turn is one entry in the interview transcript.
type Turn struct {
	Role string `json:"role"` // "model" or "user"
	Text string `json:"text"`
}

// Status reports whether the interview continues after an answer.
type Status string

const (
	StatusContinue Status = "continue"
	StatusComplete Status = "complete"
)

var (
	ErrEmptyAnswer = errors.New("hearing: answer is empty")
	ErrComplete    = errors.New("hearing: interview already complete")
)

// Flow walks the interview script, collecting answers into a profile and
// keeping an ordered transcript of model/user turns.
type Flow struct {
	index      int
	complete   bool
	profile    types.Profile
	transcript []Turn
}

// NewFlow starts an interview at the first question.
func NewFlow() *Flow {
	f := &Flow{}
	f.appendModel(Questions[0].Prompt)
	return f
}

// SubmitAnswer records the trimmed answer for the current question and
// advances the interview. It reports StatusComplete exactly once; further
// calls fail with ErrComplete and leave the profile and transcript untouched.
func (f *Flow) SubmitAnswer(text string) (Status, error) {
	if f.complete {
		return "", ErrComplete
	}
	answer := strings.TrimSpace(text)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	f.transcript = append(f.transcript, Turn{Role: "user", Text: answer})
	f.setField(Questions[f.index].Field, answer)

	if f.index+1 < len(Questions) {
		f.index++
		f.appendModel(Questions[f.index].Prompt)
		return StatusContinue, nil
	}

	f.complete = true
	f.appendModel(closingMessage)
	return StatusComplete, nil
}

// AppendError surfaces a downstream failure as a visible model turn. The
// interview state itself stays finished and is never replayed.
func (f *Flow) AppendError(message string) {
	f.appendModel("Sorry, something went wrong. Please try again or contact the administrator.\n" + message)
}

// Complete reports whether every question has been answered.
func (f *Flow) Complete() bool {
	return f.complete
}

// Profile returns the answers collected so far.
func (f *Flow) Profile() types.Profile {
	return f.profile
}

// Transcript returns the ordered interview log.
func (f *Flow) Transcript() []Turn {
	out := make([]Turn, len(f.transcript))
	copy(out, f.transcript)
	return out
}

func (f *Flow) appendModel(text string) {
	f.transcript = append(f.transcript, Turn{Role: "model", Text: text})
}

func (f *Flow) setField(field, value string) {
	switch field {
	case "businessDescription":
		f.profile.BusinessDescription = value
	case "companyName":
		f.profile.CompanyName = value
	case "atmosphere":
		f.profile.Atmosphere = value
	case "sitePurpose":
		f.profile.SitePurpose = value
	case "targetAudience":
		f.profile.TargetAudience = value
	case "address":
		f.profile.Address = value
	case "phone":
		f.profile.Phone = value
	}
}
