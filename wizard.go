package carenest

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/carenest/carenest-go/internal/api"
	"github.com/carenest/carenest-go/internal/types"
)

// maxAttachmentBytes caps the optional identity document. Oversized files
// are rejected locally, before any network traffic.
const maxAttachmentBytes = 5 << 20

// WizardStep is a position in the profile-completion flow.
type WizardStep int

const (
	StepIdentity WizardStep = iota
	StepFinancials
	StepVerification
)

func (s WizardStep) String() string {
	switch s {
	case StepFinancials:
		return "financials"
	case StepVerification:
		return "verification"
	default:
		return "identity"
	}
}

const (
	msgBioRequired      = "Please provide a professional narrative before continuing."
	msgLocationRequired = "Service location is required for marketplace visibility."
)

// ProfileDraft is the wizard's working copy of a caregiver profile.
type ProfileDraft struct {
	Bio             string
	HourlyRate      float64
	ExperienceYears int
	Location        string
	Specialties     []string

	AttachmentName string
	Attachment     []byte
}

// Wizard assembles a caregiver profile across three validated steps and
// submits it as one multipart payload. The step index only moves forward
// through Next when the current step's gate passes; a failed submission
// keeps the wizard open at the final step so earlier input survives.
type Wizard struct {
	c *Client

	mu        sync.Mutex
	step      WizardStep
	draft     ProfileDraft
	exists    bool
	fieldErrs map[string]string
	open      bool
}

// Wizard returns a new profile-completion wizard bound to this client.
func (c *Client) Wizard() *Wizard {
	return &Wizard{c: c, open: true}
}

// Step returns the active step index.
func (w *Wizard) Step() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Open reports whether the wizard is still collecting input. It becomes
// false only after a successful submission.
func (w *Wizard) Open() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Draft returns a copy of the working draft.
func (w *Wizard) Draft() ProfileDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// FieldError returns the validation message recorded for a draft field, or
// "" when the field is clean.
func (w *Wizard) FieldError(field string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fieldErrs[field]
}

// Hydrate seeds the draft from an existing profile so the user edits in
// place instead of retyping, and switches submission to update semantics.
func (w *Wizard) Hydrate(p *CaregiverProfile) {
	if p == nil {
		return
	}
	w.mu.Lock()
	w.draft = ProfileDraft{
		Bio:             p.Bio,
		HourlyRate:      p.HourlyRate.Or(0),
		ExperienceYears: p.ExperienceYears,
		Location:        p.Location,
		Specialties:     append([]string(nil), p.Specialties...),
	}
	w.exists = true
	w.mu.Unlock()
}

// SetDraft applies a partial mutation to the working draft.
func (w *Wizard) SetDraft(mutate func(*ProfileDraft)) {
	w.mu.Lock()
	mutate(&w.draft)
	w.mu.Unlock()
}

// SetAttachment stages the identity document. Files over the 5 MiB cap are
// rejected with ErrAttachmentTooLarge and the draft keeps its previous
// attachment (if any); the rest of the form is unaffected.
func (w *Wizard) SetAttachment(name string, data []byte) error {
	if len(data) > maxAttachmentBytes {
		return ErrAttachmentTooLarge
	}
	w.mu.Lock()
	w.draft.AttachmentName = name
	w.draft.Attachment = data
	w.mu.Unlock()
	return nil
}

// Next advances one step when the current step's gate passes. Advancing
// from the final step submits instead. A blocked transition records a
// field-specific message and leaves the step unchanged.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	switch w.step {
	case StepIdentity:
		if strings.TrimSpace(w.draft.Bio) == "" {
			w.fieldErrs = map[string]string{"bio": msgBioRequired}
			w.mu.Unlock()
			return nil
		}
		w.fieldErrs = nil
		w.step = StepFinancials
		w.mu.Unlock()
		return nil
	case StepFinancials:
		if strings.TrimSpace(w.draft.Location) == "" {
			w.fieldErrs = map[string]string{"location": msgLocationRequired}
			w.mu.Unlock()
			return nil
		}
		w.fieldErrs = nil
		w.step = StepVerification
		w.mu.Unlock()
		return nil
	default:
		w.mu.Unlock()
		return w.Submit(ctx)
	}
}

// Back moves one step toward the start. No gate applies in this direction.
func (w *Wizard) Back() {
	w.mu.Lock()
	if w.step > StepIdentity {
		w.step--
	}
	w.mu.Unlock()
}

// Submit sends the assembled draft as a single multipart payload, creating
// the profile or updating it depending on whether one already exists. On
// success the wizard closes and resets to the first step so a future
// re-open starts clean. On failure the wizard stays open at the current
// step with the backend's field errors (or a generic notice) recorded.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	draft := w.draft
	exists := w.exists
	w.mu.Unlock()

	fields := profileFields(draft)

	var err error
	if exists {
		_, err = api.UpdateMyProfile(ctx, w.c.http, w.c.baseURL, fields, draft.AttachmentName, draft.Attachment)
	} else {
		_, err = api.CompleteProfile(ctx, w.c.http, w.c.baseURL, fields, draft.AttachmentName, draft.Attachment)
	}
	if err != nil {
		w.mu.Lock()
		w.fieldErrs = wizardFieldErrors(err)
		w.mu.Unlock()
		log.Warn().Err(err).Bool("update", exists).Msg("profile submission failed")
		return err
	}

	w.mu.Lock()
	w.step = StepIdentity
	w.draft = ProfileDraft{}
	w.fieldErrs = nil
	w.open = false
	w.mu.Unlock()
	return nil
}

// wizardFieldErrors projects a submission failure onto per-field messages,
// falling back to a single generic notice when the backend sent no
// structured body.
func wizardFieldErrors(err error) map[string]string {
	if apiErr, ok := types.AsAPIError(err); ok && len(apiErr.Fields) > 0 {
		out := make(map[string]string, len(apiErr.Fields))
		for field, msgs := range apiErr.Fields {
			out[field] = strings.Join(msgs, " ")
		}
		return out
	}
	return map[string]string{"": "Profile submission failed. Please try again."}
}
