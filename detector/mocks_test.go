package detector

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/trendpulse/viral-engine/model"
)

// MockYouTubeClient is a mock implementation of the YouTubeClient interface.
type MockYouTubeClient struct {
	mock.Mock
}

func (m *MockYouTubeClient) SearchVideos(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int64) ([]string, error) {
	args := m.Called(ctx, keyword, publishedAfter, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockYouTubeClient) SearchShorts(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int64) ([]model.ShortsRef, error) {
	args := m.Called(ctx, keyword, publishedAfter, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShortsRef), args.Error(1)
}

func (m *MockYouTubeClient) ListVideoDetails(ctx context.Context, videoIDs []string) (map[string]model.VideoDetails, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.VideoDetails), args.Error(1)
}

func (m *MockYouTubeClient) ListChannelStats(ctx context.Context, channelIDs []string) (map[string]model.ChannelSubscriberInfo, error) {
	args := m.Called(ctx, channelIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.ChannelSubscriberInfo), args.Error(1)
}

func (m *MockYouTubeClient) ListTrending(ctx context.Context, categoryID string, maxResults int64) ([]model.VideoSnapshot, error) {
	args := m.Called(ctx, categoryID, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VideoSnapshot), args.Error(1)
}
