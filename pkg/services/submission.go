package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"driver-apply/pkg/attribution"
	"driver-apply/pkg/clients/notify"
	"driver-apply/pkg/clients/sheets"
	"driver-apply/pkg/config"
	"driver-apply/pkg/geo"
	"driver-apply/pkg/models"
	"driver-apply/pkg/validation"
)

// ErrWebhookNotConfigured is returned when the webhooks required for the
// requested campaign are missing. This is the only submission failure the
// client ever sees.
var ErrWebhookNotConfigured = errors.New("webhook configuration missing")

// SubmissionService defines the interface for handling form submissions
type SubmissionService interface {
	ProcessApplicant(ctx context.Context, form models.ApplicantForm, meta models.RequestMeta) error
	ProcessCoupangApplicant(ctx context.Context, form models.CoupangApplicantForm, meta models.RequestMeta) error
}

type submissionServiceImpl struct {
	notifyClient notify.Client
	sheetsClient sheets.Client
	config       *config.Config
	now          func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	notifyClient notify.Client,
	sheetsClient sheets.Client,
	config *config.Config,
) SubmissionService {
	return &submissionServiceImpl{
		notifyClient: notifyClient,
		sheetsClient: sheetsClient,
		config:       config,
		now:          time.Now,
	}
}

// ProcessApplicant fans the submission out to the messaging webhook and the
// data sink. The two dispatches run concurrently and fail independently:
// either failure is logged and absorbed, never surfaced to the applicant.
func (s *submissionServiceImpl) ProcessApplicant(ctx context.Context, form models.ApplicantForm, meta models.RequestMeta) error {
	mediaName := attribution.MediaName(form.UTMParams)

	message := s.buildNotificationText("タクシードライバー応募", mediaName, applicantFields{
		BirthDate:       form.BirthDate,
		LastName:        form.LastName,
		FirstName:       form.FirstName,
		LastNameKana:    form.LastNameKana,
		FirstNameKana:   form.FirstNameKana,
		PostalCode:      form.PostalCode,
		PrefectureID:    form.PrefectureID,
		PhoneNumber:     form.PhoneNumber,
		PreferredTiming: form.PreferredTiming,
	})
	record := s.buildRecord(mediaName, form.UTMParams, form.Experiment, form.FormOrigin, meta, applicantFields{
		BirthDate:       form.BirthDate,
		LastName:        form.LastName,
		FirstName:       form.FirstName,
		LastNameKana:    form.LastNameKana,
		FirstNameKana:   form.FirstNameKana,
		PostalCode:      form.PostalCode,
		PrefectureID:    form.PrefectureID,
		PhoneNumber:     form.PhoneNumber,
		PreferredTiming: form.PreferredTiming,
	})

	suppress := s.config.SuppressNotify || form.Experiment
	return s.dispatch(ctx, s.config.NotifyURL(), s.config.SheetsURL(), suppress, message, record)
}

// ProcessCoupangApplicant routes the coupang campaign to its own webhooks
// with a fixed attribution label regardless of UTM values.
func (s *submissionServiceImpl) ProcessCoupangApplicant(ctx context.Context, form models.CoupangApplicantForm, meta models.RequestMeta) error {
	mediaName := attribution.CoupangMediaName

	fields := applicantFields{
		BirthDate:       form.BirthDate,
		LastName:        form.LastName,
		FirstName:       form.FirstName,
		LastNameKana:    form.LastNameKana,
		FirstNameKana:   form.FirstNameKana,
		PostalCode:      form.PostalCode,
		PhoneNumber:     form.PhoneNumber,
		PreferredTiming: form.PreferredTiming,
	}
	message := s.buildNotificationText("Coupang配送ドライバー応募", mediaName, fields)
	record := s.buildRecord(mediaName, form.UTMParams, form.Experiment, "coupang", meta, fields)

	suppress := s.config.SuppressNotify || form.Experiment
	return s.dispatch(ctx, s.config.CoupangNotifyURL(), s.config.CoupangSheetsURL(), suppress, message, record)
}

func (s *submissionServiceImpl) dispatch(ctx context.Context, notifyURL, sheetsURL string, suppress bool, message string, record map[string]interface{}) error {
	if sheetsURL == "" {
		return ErrWebhookNotConfigured
	}
	if !suppress && notifyURL == "" {
		return ErrWebhookNotConfigured
	}

	// Both channels are awaited, but each absorbs its own failure: losing a
	// notification must not lose the application.
	g, gctx := errgroup.WithContext(ctx)

	if !suppress {
		g.Go(func() error {
			if err := s.notifyClient.SendText(gctx, notifyURL, message); err != nil {
				log.Printf("Error sending notification: %v", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := s.sheetsClient.AppendRecord(gctx, sheetsURL, record); err != nil {
			log.Printf("Error appending record: %v", err)
		}
		return nil
	})

	return g.Wait()
}

type applicantFields struct {
	BirthDate       models.BirthDate
	LastName        string
	FirstName       string
	LastNameKana    string
	FirstNameKana   string
	PostalCode      string
	PrefectureID    string
	PhoneNumber     string
	PreferredTiming string
}

func (s *submissionServiceImpl) buildNotificationText(title, mediaName string, f applicantFields) string {
	birth, age := birthAndAge(f.BirthDate, s.now())
	timing := f.PreferredTiming
	if timing == "" {
		timing = "-"
	}

	return fmt.Sprintf(
		"【%s】\n媒体: %s\n生年月日: %s（%s歳）\n氏名: %s %s（%s %s）\n郵便番号: %s\n地域: %s\n希望時期: %s\n電話番号: %s",
		title,
		mediaName,
		birth,
		age,
		f.LastName, f.FirstName,
		f.LastNameKana, f.FirstNameKana,
		f.PostalCode,
		s.regionFor(f),
		timing,
		f.PhoneNumber,
	)
}

func (s *submissionServiceImpl) buildRecord(mediaName string, utm models.UTMParams, experiment bool, formOrigin string, meta models.RequestMeta, f applicantFields) map[string]interface{} {
	birth, age := birthAndAge(f.BirthDate, s.now())

	return map[string]interface{}{
		"submissionId":    uuid.NewString(),
		"submittedAt":     meta.SubmittedAt,
		"environment":     meta.Environment,
		"formOrigin":      formOrigin,
		"mediaName":       mediaName,
		"utmSource":       utm.Source,
		"utmMedium":       utm.Medium,
		"utmCampaign":     utm.Campaign,
		"utmTerm":         utm.Term,
		"birthDate":       birth,
		"age":             age,
		"lastName":        f.LastName,
		"firstName":       f.FirstName,
		"lastNameKana":    f.LastNameKana,
		"firstNameKana":   f.FirstNameKana,
		"postalCode":      f.PostalCode,
		"prefecture":      s.regionFor(f),
		"phoneNumber":     f.PhoneNumber,
		"preferredTiming": f.PreferredTiming,
		"userAgent":       meta.UserAgent,
		"clientIp":        meta.ClientIP,
		"experiment":      experiment,
	}
}

// regionFor resolves the applicant's prefecture from whichever addressing
// mode the session used.
func (s *submissionServiceImpl) regionFor(f applicantFields) string {
	if code, err := geo.NormalizePostalCode(f.PostalCode); err == nil {
		if pref, ok := geo.PrefectureByPostalCode(code); ok {
			return pref.Name
		}
	}
	if f.PrefectureID != "" {
		if id, err := strconv.Atoi(f.PrefectureID); err == nil {
			if pref, ok := geo.PrefectureByID(id); ok {
				return pref.Name
			}
		}
	}
	return "-"
}

func birthAndAge(b models.BirthDate, now time.Time) (string, string) {
	y, errY := strconv.Atoi(b.Year)
	m, errM := strconv.Atoi(b.Month)
	d, errD := strconv.Atoi(b.Day)
	if errY != nil || errM != nil || errD != nil {
		return "-", "-"
	}
	birth := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	age := validation.Age(birth, today)
	return fmt.Sprintf("%d年%d月%d日", y, m, d), strconv.Itoa(age)
}
