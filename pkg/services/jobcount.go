package services

import (
	"context"
	"errors"
	"fmt"

	"driver-apply/pkg/clients/microcms"
	"driver-apply/pkg/form"
	"driver-apply/pkg/geo"
	"driver-apply/pkg/models"
)

var (
	// ErrPostalCodeInvalid means the input could not be normalized to a
	// 7-digit code (client error).
	ErrPostalCodeInvalid = errors.New("postal code is missing or malformed")
	// ErrPrefectureNotFound means the code is well-formed but maps to no
	// known prefecture.
	ErrPrefectureNotFound = errors.New("prefecture not resolvable")
)

// JobCountService defines the interface for job inventory lookups
type JobCountService interface {
	LookupByPostalCode(ctx context.Context, postalCode string) (*models.JobCountResult, error)
	LookupByPrefectureID(ctx context.Context, prefectureID int) (*models.JobCountResult, error)
}

type jobCountServiceImpl struct {
	cmsClient microcms.Client
}

// NewJobCountService creates a new job-count service
func NewJobCountService(cmsClient microcms.Client) JobCountService {
	return &jobCountServiceImpl{
		cmsClient: cmsClient,
	}
}

// LookupByPostalCode normalizes the code, resolves its prefecture, and
// counts open jobs at prefecture granularity. Counting per prefecture
// rather than per postal code avoids zero-result dead ends for applicants
// just outside a listing's code. Zero is a valid result, not an error.
func (s *jobCountServiceImpl) LookupByPostalCode(ctx context.Context, postalCode string) (*models.JobCountResult, error) {
	code, err := geo.NormalizePostalCode(postalCode)
	if err != nil {
		return nil, ErrPostalCodeInvalid
	}

	pref, ok := geo.PrefectureByPostalCode(code)
	if !ok {
		return nil, ErrPrefectureNotFound
	}

	count, err := s.cmsClient.JobCount(ctx, pref.Name)
	if err != nil {
		return nil, fmt.Errorf("error counting jobs for %s: %w", pref.Name, err)
	}

	return &models.JobCountResult{
		PostalCode:   code,
		JobCount:     count,
		SearchMethod: "prefecture",
		SearchArea:   pref.Name,
		Message:      jobCountMessage(pref.Name, count),
	}, nil
}

// LookupByPrefectureID serves the location-selection variant.
func (s *jobCountServiceImpl) LookupByPrefectureID(ctx context.Context, prefectureID int) (*models.JobCountResult, error) {
	pref, ok := geo.PrefectureByID(prefectureID)
	if !ok {
		return nil, ErrPrefectureNotFound
	}

	count, err := s.cmsClient.JobCount(ctx, pref.Name)
	if err != nil {
		return nil, fmt.Errorf("error counting jobs for %s: %w", pref.Name, err)
	}

	return &models.JobCountResult{
		JobCount:     count,
		SearchMethod: "prefecture",
		SearchArea:   pref.Name,
		Message:      jobCountMessage(pref.Name, count),
	}, nil
}

func jobCountMessage(prefecture string, count int) string {
	if count > 0 {
		return fmt.Sprintf("%s内で%d件の求人が見つかりました", prefecture, count)
	}
	return fmt.Sprintf("%s内では現在求人がありません", prefecture)
}

// JobCountLookup adapts the service to the form machine's JobCounter.
type JobCountLookup struct {
	Service JobCountService
}

func (l JobCountLookup) Lookup(ctx context.Context, postalCode string) (form.JobCountInfo, error) {
	res, err := l.Service.LookupByPostalCode(ctx, postalCode)
	if err != nil {
		return form.JobCountInfo{}, err
	}
	return form.JobCountInfo{Count: res.JobCount, Message: res.Message}, nil
}
