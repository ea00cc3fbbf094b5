package services

import (
	"context"
	"strconv"

	"driver-apply/pkg/clients/microcms"
	"driver-apply/pkg/geo"
)

// LocationService defines the interface for the location-selection data
type LocationService interface {
	Prefectures(ctx context.Context) (*microcms.ContentList, error)
	Municipalities(ctx context.Context, prefectureID, municipalityID string) (*microcms.ContentList, error)
}

type locationServiceImpl struct {
	cmsClient microcms.Client
	useStatic bool
}

// NewLocationService creates a new location service. Without CMS
// credentials the prefecture list falls back to the static table and
// municipalities are unavailable.
func NewLocationService(cmsClient microcms.Client, useStatic bool) LocationService {
	return &locationServiceImpl{
		cmsClient: cmsClient,
		useStatic: useStatic,
	}
}

func (s *locationServiceImpl) Prefectures(ctx context.Context) (*microcms.ContentList, error) {
	if s.useStatic {
		return staticPrefectures(), nil
	}
	return s.cmsClient.Prefectures(ctx)
}

func (s *locationServiceImpl) Municipalities(ctx context.Context, prefectureID, municipalityID string) (*microcms.ContentList, error) {
	if s.useStatic {
		return &microcms.ContentList{Contents: []microcms.Content{}}, nil
	}
	return s.cmsClient.Municipalities(ctx, prefectureID, municipalityID)
}

func staticPrefectures() *microcms.ContentList {
	prefs := geo.Prefectures()
	contents := make([]microcms.Content, 0, len(prefs))
	for _, p := range prefs {
		contents = append(contents, microcms.Content{
			ID:     strconv.Itoa(p.ID),
			Name:   p.Name,
			Region: p.Region,
		})
	}
	return &microcms.ContentList{Contents: contents, TotalCount: len(contents)}
}
