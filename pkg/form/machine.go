package form

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"driver-apply/pkg/geo"
	"driver-apply/pkg/models"
	"driver-apply/pkg/validation"
)

// Step is the card the user currently sees. Transitions are strictly
// linear; there is no skipping.
type Step int

const (
	StepBirthDate Step = iota + 1
	StepNameAddress
	StepPhone
	StepConfirm
)

// LeaveDecision is the guarded-navigation answer for a leave request.
type LeaveDecision int

const (
	LeaveAllow LeaveDecision = iota
	LeavePrompt
)

var (
	ErrNotOnConfirmStep = errors.New("form: submit is only allowed from the confirmation step")
	ErrPhoneInvalid     = errors.New("form: phone number failed validation")
)

const (
	msgLastNameRequired  = "姓を入力してください"
	msgFirstNameRequired = "名を入力してください"
)

// JobCountInfo is a resolved inventory lookup.
type JobCountInfo struct {
	Count   int
	Message string
}

// JobCountResult is the informational lookup state shown next to the phone
// step. It is never part of the submitted payload.
type JobCountResult struct {
	Loading  bool
	Resolved bool
	Count    int
	Message  string
	Err      string
}

// JobCounter resolves a postal code to a job inventory count.
type JobCounter interface {
	Lookup(ctx context.Context, postalCode string) (JobCountInfo, error)
}

// KanaConverter converts kanji text to hiragana. Failures mean "no
// suggestion available" and never block the user.
type KanaConverter interface {
	Convert(ctx context.Context, text string) (string, error)
}

// Submitter relays the finished form. The machine treats acceptance by the
// relay as success; downstream webhook delivery is not its concern.
type Submitter interface {
	Submit(ctx context.Context, data Data, utm models.UTMParams) error
}

// Deps are the injected capabilities of a Machine. Lookup, Converter and
// Sink may be nil; Submitter must be set before Submit is called. UTM is
// read at submit time, not captured at construction, since users may sit on
// the page before submitting.
type Deps struct {
	Lookup    JobCounter
	Converter KanaConverter
	Submitter Submitter
	Sink      EventSink
	UTM       func() models.UTMParams
	Now       func() time.Time
}

// Machine holds the per-session form state: current step, field values,
// per-field errors and the dirty flag feeding the exit guard. All methods
// are safe for concurrent use; background lookups and conversions apply
// their results under the same lock as user edits.
type Machine struct {
	mu        sync.Mutex
	step      Step
	data      Data
	errors    Errors
	dirty     bool
	phoneOK   bool
	jobCount  JobCountResult
	lookupSeq atomic.Uint64
	wg        sync.WaitGroup
	deps      Deps
}

// NewMachine starts a session at the birth-date step.
func NewMachine(deps Deps) *Machine {
	if deps.Sink == nil {
		deps.Sink = NopSink{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.UTM == nil {
		deps.UTM = func() models.UTMParams { return models.UTMParams{} }
	}
	return &Machine{
		step:   StepBirthDate,
		errors: Errors{},
		deps:   deps,
	}
}

// Update applies one field edit: stores the value, clears that field's
// error, marks the form dirty on the first edit, and runs the per-field
// side effects (live phone validation, job-count lookup on a complete
// postal code). Unknown fields are an error, there is no dynamic access.
func (m *Machine) Update(f Field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch f {
	case FieldBirthYear:
		m.data.BirthYear = value
	case FieldBirthMonth:
		m.data.BirthMonth = value
	case FieldBirthDay:
		m.data.BirthDay = value
	case FieldLastName:
		m.data.LastName = value
	case FieldFirstName:
		m.data.FirstName = value
	case FieldLastNameKana:
		m.data.LastNameKana = value
	case FieldFirstNameKana:
		m.data.FirstNameKana = value
	case FieldPostalCode:
		m.data.PostalCode = value
	case FieldPrefecture:
		m.data.PrefectureID = value
	case FieldMunicipality:
		m.data.MunicipalityID = value
	case FieldPhoneNumber:
		m.data.PhoneNumber = value
	case FieldPreferredTiming:
		m.data.PreferredTiming = value
	default:
		return fmt.Errorf("form: field %v is not writable", f)
	}

	delete(m.errors, f)
	switch f {
	case FieldBirthYear, FieldBirthMonth, FieldBirthDay:
		delete(m.errors, FieldBirthDate)
	}

	if !m.dirty {
		m.dirty = true
		m.deps.Sink.Record("form_started", nil)
	}

	if f == FieldPhoneNumber {
		m.phoneOK = validation.IsValidPhoneNumber(value)
	}
	if f == FieldPostalCode {
		if code, ok := geo.CompletePostalCode(value); ok {
			m.startLookupLocked(code)
		}
	}
	return nil
}

// Advance validates the current step. On failure the errors are stored and
// the step pointer does not move. On success the step's errors are cleared
// and the pointer advances; entering the phone step kicks off a job-count
// lookup when a complete postal code is already present.
func (m *Machine) Advance() (bool, Errors) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step == StepConfirm {
		return false, nil
	}

	errs := m.validateStepLocked(m.step)
	if len(errs) > 0 {
		for f, msg := range errs {
			m.errors[f] = msg
		}
		return false, errs
	}

	for _, f := range stepFields(m.step) {
		delete(m.errors, f)
	}
	m.step++
	m.deps.Sink.Record("step_completed", map[string]string{"step": fmt.Sprintf("%d", m.step-1)})

	if m.step == StepPhone {
		if code, ok := geo.CompletePostalCode(m.data.PostalCode); ok {
			m.startLookupLocked(code)
		}
	}
	return true, nil
}

// Retreat moves back exactly one step. It never validates and never
// clears values.
func (m *Machine) Retreat() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step > StepBirthDate {
		m.step--
	}
}

// Submit relays the form from the confirmation step. The phone number is
// re-validated even though the phone step already passed, because the value
// may have mutated since; an invalid number fails closed.
func (m *Machine) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.step != StepConfirm {
		m.mu.Unlock()
		return ErrNotOnConfirmStep
	}
	if msg := validation.ValidatePhoneNumber(m.data.PhoneNumber); msg != "" {
		m.errors[FieldPhoneNumber] = msg
		m.mu.Unlock()
		return ErrPhoneInvalid
	}
	data := m.data
	m.mu.Unlock()

	if err := m.deps.Submitter.Submit(ctx, data, m.deps.UTM()); err != nil {
		return err
	}

	m.mu.Lock()
	m.dirty = false
	m.mu.Unlock()
	m.deps.Sink.Record("form_submitted", nil)
	return nil
}

// RequestLeave answers a guarded navigation attempt: Prompt while the form
// holds unsaved edits, Allow otherwise.
func (m *Machine) RequestLeave() LeaveDecision {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirty {
		return LeavePrompt
	}
	return LeaveAllow
}

// ConfirmLeave records that the user accepted the leave prompt.
func (m *Machine) ConfirmLeave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = false
}

// Step returns the current card.
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Data returns a copy of the field values.
func (m *Machine) Data() Data {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

// Errors returns a copy of the current per-field errors.
func (m *Machine) Errors() Errors {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := Errors{}
	for f, msg := range m.errors {
		out[f] = msg
	}
	return out
}

// SubmitEnabled reports the live phone check gating the submit affordance.
// It moves on every phone keystroke, independent of full-step validation.
func (m *Machine) SubmitEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phoneOK
}

// JobCount returns the current lookup state.
func (m *Machine) JobCount() JobCountResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jobCount
}

// Dirty reports whether the form holds unsaved edits.
func (m *Machine) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Wait joins all outstanding background lookups and conversions.
func (m *Machine) Wait() {
	m.wg.Wait()
}

// BlurName handles leaving a kanji name field: if the field is non-empty
// and its paired kana field still is, the converter runs in the background
// and fills the pair. Conversion failure is logged and otherwise ignored;
// a value the user typed in the meantime is never overwritten.
func (m *Machine) BlurName(ctx context.Context, f Field) {
	if m.deps.Converter == nil {
		return
	}
	if f != FieldLastName && f != FieldFirstName {
		return
	}

	m.mu.Lock()
	var source string
	var target Field
	if f == FieldLastName {
		source, target = m.data.LastName, FieldLastNameKana
	} else {
		source, target = m.data.FirstName, FieldFirstNameKana
	}
	pairEmpty := m.kanaValueLocked(target) == ""
	m.mu.Unlock()

	if source == "" || !pairEmpty {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		converted, err := m.deps.Converter.Convert(ctx, source)
		if err != nil {
			log.Printf("kana conversion failed for %q: %v", source, err)
			return
		}
		if converted == "" {
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.kanaValueLocked(target) != "" {
			return
		}
		if target == FieldLastNameKana {
			m.data.LastNameKana = converted
		} else {
			m.data.FirstNameKana = converted
		}
		delete(m.errors, target)
	}()
}

func (m *Machine) kanaValueLocked(f Field) string {
	if f == FieldLastNameKana {
		return m.data.LastNameKana
	}
	return m.data.FirstNameKana
}

// startLookupLocked dispatches a job-count lookup carrying a sequence
// token. A response is applied only while its token is still the latest
// issued, so a stale in-flight lookup can never overwrite the result for a
// newer postal code.
func (m *Machine) startLookupLocked(code string) {
	if m.deps.Lookup == nil {
		return
	}
	seq := m.lookupSeq.Add(1)
	m.jobCount = JobCountResult{Loading: true}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		info, err := m.deps.Lookup.Lookup(context.Background(), code)

		m.mu.Lock()
		defer m.mu.Unlock()
		if seq != m.lookupSeq.Load() {
			return // superseded by a newer input
		}
		if err != nil {
			m.jobCount = JobCountResult{Err: err.Error()}
			return
		}
		m.jobCount = JobCountResult{
			Resolved: true,
			Count:    info.Count,
			Message:  info.Message,
		}
	}()
}

func (m *Machine) validateStepLocked(s Step) Errors {
	errs := Errors{}
	switch s {
	case StepBirthDate:
		if msg := validation.ValidateBirthDate(m.data.BirthYear, m.data.BirthMonth, m.data.BirthDay, m.deps.Now()); msg != "" {
			errs[FieldBirthDate] = msg
		}
	case StepNameAddress:
		if m.data.LastName == "" {
			errs[FieldLastName] = msgLastNameRequired
		}
		if m.data.FirstName == "" {
			errs[FieldFirstName] = msgFirstNameRequired
		}
		if msg := validation.ValidateKana(m.data.LastNameKana); msg != "" {
			errs[FieldLastNameKana] = msg
		}
		if msg := validation.ValidateKana(m.data.FirstNameKana); msg != "" {
			errs[FieldFirstNameKana] = msg
		}
		// Location-selection mode substitutes for the postal code.
		if m.data.PrefectureID == "" {
			if msg := validation.ValidatePostalCode(m.data.PostalCode); msg != "" {
				errs[FieldPostalCode] = msg
			}
		}
	case StepPhone:
		if msg := validation.ValidatePhoneNumber(m.data.PhoneNumber); msg != "" {
			errs[FieldPhoneNumber] = msg
		}
	}
	return errs
}

func stepFields(s Step) []Field {
	switch s {
	case StepBirthDate:
		return []Field{FieldBirthYear, FieldBirthMonth, FieldBirthDay, FieldBirthDate}
	case StepNameAddress:
		return []Field{
			FieldLastName, FieldFirstName, FieldLastNameKana, FieldFirstNameKana,
			FieldPostalCode, FieldPrefecture, FieldMunicipality,
		}
	case StepPhone:
		return []Field{FieldPhoneNumber, FieldPreferredTiming}
	}
	return nil
}
