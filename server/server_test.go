package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpulse/viral-engine/actions"
	"github.com/trendpulse/viral-engine/cache"
	"github.com/trendpulse/viral-engine/detector"
	"github.com/trendpulse/viral-engine/model"
)

// stubClient implements detector.YouTubeClient with canned responses.
type stubClient struct {
	searchErr error
	refs      []model.ShortsRef
	details   map[string]model.VideoDetails
	stats     map[string]model.ChannelSubscriberInfo
	videoIDs  []string
}

func (s *stubClient) SearchVideos(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int64) ([]string, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.videoIDs, nil
}

func (s *stubClient) SearchShorts(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int64) ([]model.ShortsRef, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.refs, nil
}

func (s *stubClient) ListVideoDetails(ctx context.Context, videoIDs []string) (map[string]model.VideoDetails, error) {
	return s.details, nil
}

func (s *stubClient) ListChannelStats(ctx context.Context, channelIDs []string) (map[string]model.ChannelSubscriberInfo, error) {
	return s.stats, nil
}

func (s *stubClient) ListTrending(ctx context.Context, categoryID string, maxResults int64) ([]model.VideoSnapshot, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return nil, nil
}

func newTestServer(stub *stubClient) *Server {
	c := cache.New()
	d := detector.New(stub, c, detector.Options{Keywords: detector.FixedKeywordSource("테스트")})
	return New(":0", actions.New(d, c))
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&stubClient{})
	rec := doRequest(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRisingRequiresKeyword(t *testing.T) {
	s := newTestServer(&stubClient{})
	rec := doRequest(t, s, "/api/rising")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRisingReturnsResult(t *testing.T) {
	stub := &stubClient{
		videoIDs: []string{"v1"},
		details: map[string]model.VideoDetails{
			"v1": {Title: "영상", PublishedAt: time.Now().Add(-2 * time.Hour), ViewCount: 50000},
		},
	}
	s := newTestServer(stub)

	rec := doRequest(t, s, "/api/rising?keyword=kpop")
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.TrendResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "kpop", result.Keyword)
	require.Len(t, result.Videos, 1)
	assert.Equal(t, "v1", result.Videos[0].ID)
}

func TestViralShortsRejectsUnknownTier(t *testing.T) {
	s := newTestServer(&stubClient{})
	rec := doRequest(t, s, "/api/viral-shorts?tiers=mega,bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViralShortsFiltersTiers(t *testing.T) {
	now := time.Now()
	stub := &stubClient{
		refs: []model.ShortsRef{
			{VideoID: "m", ChannelID: "c1"},
			{VideoID: "h", ChannelID: "c2"},
		},
		details: map[string]model.VideoDetails{
			"m": {PublishedAt: now.Add(-time.Hour), ViewCount: 200000},
			"h": {PublishedAt: now.Add(-time.Hour), ViewCount: 200000},
		},
		stats: map[string]model.ChannelSubscriberInfo{
			"c1": {SubscriberCount: 5000},
			"c2": {SubscriberCount: 30000},
		},
	}
	s := newTestServer(stub)

	rec := doRequest(t, s, "/api/viral-shorts?keyword=kw&tiers=mega")
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.ViralShortsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.ViralCount)
	require.Len(t, result.Videos, 1)
	assert.Equal(t, model.TierMega, result.Videos[0].ViralTier)
}

func TestQuotaExceededMapsTo503(t *testing.T) {
	stub := &stubClient{searchErr: fmt.Errorf("quota: %w", model.ErrQuotaExceeded)}
	s := newTestServer(stub)

	rec := doRequest(t, s, "/api/rising?keyword=kw")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "quota_exceeded", body["code"])
}

func TestOutageMapsTo503(t *testing.T) {
	stub := &stubClient{searchErr: fmt.Errorf("down: %w", model.ErrServiceUnavailable)}
	s := newTestServer(stub)

	rec := doRequest(t, s, "/api/trending")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "service_unavailable", body["code"])
}

func TestTrendingValidatesMax(t *testing.T) {
	s := newTestServer(&stubClient{})
	rec := doRequest(t, s, "/api/trending?max=notanumber")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, "/api/trending?max=100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
