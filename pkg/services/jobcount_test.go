package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driver-apply/pkg/clients/microcms"
	"driver-apply/pkg/form"
)

type stubCMS struct {
	counts map[string]int
	err    error
}

func (s *stubCMS) JobCount(_ context.Context, prefecture string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[prefecture], nil
}

func (s *stubCMS) Prefectures(context.Context) (*microcms.ContentList, error) {
	return &microcms.ContentList{}, nil
}

func (s *stubCMS) Municipalities(context.Context, string, string) (*microcms.ContentList, error) {
	return &microcms.ContentList{}, nil
}

func TestLookupByPostalCodeWithOpenings(t *testing.T) {
	svc := NewJobCountService(&stubCMS{counts: map[string]int{"東京都": 8}})

	res, err := svc.LookupByPostalCode(context.Background(), "1010051")
	require.NoError(t, err)
	assert.Equal(t, "1010051", res.PostalCode)
	assert.Equal(t, 8, res.JobCount)
	assert.Equal(t, "prefecture", res.SearchMethod)
	assert.Equal(t, "東京都", res.SearchArea)
	assert.Equal(t, "東京都内で8件の求人が見つかりました", res.Message)
}

func TestLookupByPostalCodeZeroIsNotAnError(t *testing.T) {
	svc := NewJobCountService(&stubCMS{counts: map[string]int{}})

	res, err := svc.LookupByPostalCode(context.Background(), "5320011")
	require.NoError(t, err)
	assert.Equal(t, 0, res.JobCount)
	assert.Equal(t, "大阪府内では現在求人がありません", res.Message)
}

func TestLookupNormalizesBeforeResolving(t *testing.T) {
	svc := NewJobCountService(&stubCMS{counts: map[string]int{"東京都": 8}})

	hyphenated, err := svc.LookupByPostalCode(context.Background(), "101-0051")
	require.NoError(t, err)
	plain, err := svc.LookupByPostalCode(context.Background(), "1010051")
	require.NoError(t, err)
	assert.Equal(t, plain, hyphenated)
}

func TestLookupByPostalCodeMalformed(t *testing.T) {
	svc := NewJobCountService(&stubCMS{})

	_, err := svc.LookupByPostalCode(context.Background(), "12ab")
	assert.ErrorIs(t, err, ErrPostalCodeInvalid)

	_, err = svc.LookupByPostalCode(context.Background(), "")
	assert.ErrorIs(t, err, ErrPostalCodeInvalid)
}

func TestLookupUpstreamFailure(t *testing.T) {
	upstream := errors.New("cms unavailable")
	svc := NewJobCountService(&stubCMS{err: upstream})

	_, err := svc.LookupByPostalCode(context.Background(), "1010051")
	assert.ErrorIs(t, err, upstream)
}

func TestJobCountLookupDrivesFormMachine(t *testing.T) {
	svc := NewJobCountService(&stubCMS{counts: map[string]int{"東京都": 8}})
	m := form.NewMachine(form.Deps{Lookup: JobCountLookup{Service: svc}})

	require.NoError(t, m.Update(form.FieldPostalCode, "1010051"))
	m.Wait()

	res := m.JobCount()
	assert.True(t, res.Resolved)
	assert.Equal(t, 8, res.Count)
	assert.Equal(t, "東京都内で8件の求人が見つかりました", res.Message)
}

func TestJobCountLookupReportsEmptyInventory(t *testing.T) {
	svc := NewJobCountService(&stubCMS{counts: map[string]int{}})
	m := form.NewMachine(form.Deps{Lookup: JobCountLookup{Service: svc}})

	require.NoError(t, m.Update(form.FieldPostalCode, "5320011"))
	m.Wait()

	res := m.JobCount()
	assert.True(t, res.Resolved)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, "大阪府内では現在求人がありません", res.Message)
}

func TestLookupByPrefectureID(t *testing.T) {
	svc := NewJobCountService(&stubCMS{counts: map[string]int{"大阪府": 3}})

	res, err := svc.LookupByPrefectureID(context.Background(), 27)
	require.NoError(t, err)
	assert.Equal(t, "大阪府", res.SearchArea)
	assert.Equal(t, 3, res.JobCount)

	_, err = svc.LookupByPrefectureID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrPrefectureNotFound)
}
