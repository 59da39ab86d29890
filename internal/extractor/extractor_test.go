package extractor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Xavierhuang/ScheduleShare/internal/llm"
	"github.com/Xavierhuang/ScheduleShare/internal/mocks"
	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

func newTestExtractor(t *testing.T, chat *mocks.MockChatClient) *Extractor {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	var e *Extractor
	if chat != nil {
		e = New(chat, loc, 0)
	} else {
		e = New(nil, loc, 0)
	}
	e.now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 0, 0, 0, loc)
	}
	return e
}

func TestExtract_ModelPath(t *testing.T) {
	chat := &mocks.MockChatClient{}
	chat.On("Complete", mock.Anything, mock.Anything).Return(`{
		"title": "Team Dinner",
		"startDateTime": "2025-08-10T18:30:00-04:00",
		"endDateTime": "2025-08-10T20:30:00-04:00",
		"location": "The Hugh",
		"description": "Monthly team dinner",
		"confidence": 0.9
	}`, nil)

	e := newTestExtractor(t, chat)
	info, source := e.Extract(context.Background(), "Team Dinner\nAug 10, 6:30-8:30 PM\nThe Hugh")

	assert.Equal(t, model.SourceModel, source)
	require.NotNil(t, info.Title)
	assert.Equal(t, "Team Dinner", *info.Title)
	require.NotNil(t, info.StartDateTime)
	assert.Equal(t, 10, info.StartDateTime.Day())
	require.NotNil(t, info.EndDateTime)
	assert.Equal(t, 0.9, info.Confidence)
	assert.Equal(t, model.SourceModel, info.Source)
	assert.Equal(t, "Team Dinner\nAug 10, 6:30-8:30 PM\nThe Hugh", info.RawText)
	chat.AssertExpectations(t)
}

func TestExtract_TokenBudget(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	t.Run("default budget", func(t *testing.T) {
		chat := &mocks.MockChatClient{}
		chat.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.ChatRequest) bool {
			return req.MaxTokens == 500
		})).Return(`{"title":"Lunch"}`, nil)

		e := New(chat, loc, 0)
		_, source := e.Extract(context.Background(), "Lunch")
		assert.Equal(t, model.SourceModel, source)
		chat.AssertExpectations(t)
	})

	t.Run("configured budget", func(t *testing.T) {
		chat := &mocks.MockChatClient{}
		chat.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.ChatRequest) bool {
			return req.MaxTokens == 750
		})).Return(`{"title":"Lunch"}`, nil)

		e := New(chat, loc, 750)
		_, source := e.Extract(context.Background(), "Lunch")
		assert.Equal(t, model.SourceModel, source)
		chat.AssertExpectations(t)
	})
}

func TestExtract_FencedResponse(t *testing.T) {
	chat := &mocks.MockChatClient{}
	chat.On("Complete", mock.Anything, mock.Anything).Return(
		"Here you go:\n```json\n{\"title\":\"Lunch\",\"startDateTime\":null,\"endDateTime\":null,\"location\":null,\"description\":null,\"confidence\":0.7}\n```", nil)

	e := newTestExtractor(t, chat)
	info, source := e.Extract(context.Background(), "Lunch sometime")

	assert.Equal(t, model.SourceModel, source)
	require.NotNil(t, info.Title)
	assert.Equal(t, "Lunch", *info.Title)
	assert.Nil(t, info.StartDateTime)
	assert.Nil(t, info.EndDateTime)
}

func TestExtract_ConfidenceDefaultsWhenOmitted(t *testing.T) {
	chat := &mocks.MockChatClient{}
	chat.On("Complete", mock.Anything, mock.Anything).Return(`{"title":"Lunch"}`, nil)

	e := newTestExtractor(t, chat)
	info, source := e.Extract(context.Background(), "Lunch")

	assert.Equal(t, model.SourceModel, source)
	assert.Equal(t, 0.5, info.Confidence)
}

func TestExtract_YearRollover(t *testing.T) {
	// "now" is June 2025; a January date must land in January 2026.
	chat := &mocks.MockChatClient{}
	chat.On("Complete", mock.Anything, mock.Anything).Return(
		`{"title":"Gallery Opening","startDateTime":"2025-01-15T18:30:00-05:00","confidence":0.8}`, nil)

	e := newTestExtractor(t, chat)
	info, _ := e.Extract(context.Background(), "Gallery Opening Jan 15 6:30 PM")

	require.NotNil(t, info.StartDateTime)
	assert.Equal(t, 2026, info.StartDateTime.Year())
	assert.Equal(t, time.January, info.StartDateTime.Month())
	assert.Equal(t, 18, info.StartDateTime.Hour())
}

func TestExtract_UnparseableDateResolvesToAbsent(t *testing.T) {
	chat := &mocks.MockChatClient{}
	chat.On("Complete", mock.Anything, mock.Anything).Return(
		`{"title":"Lunch","startDateTime":"whenever","confidence":0.6}`, nil)

	e := newTestExtractor(t, chat)
	info, source := e.Extract(context.Background(), "Lunch whenever")

	assert.Equal(t, model.SourceModel, source)
	assert.Nil(t, info.StartDateTime)
}

func TestExtract_FallbackPaths(t *testing.T) {
	text := "Summer Jazz Night\nDate: Aug 5\nTime: 6:30 PM\nLocation: Washington Square Park"

	tests := []struct {
		name  string
		setup func(chat *mocks.MockChatClient)
	}{
		{
			name: "transport failure",
			setup: func(chat *mocks.MockChatClient) {
				chat.On("Complete", mock.Anything, mock.Anything).Return("", fmt.Errorf("connection refused"))
			},
		},
		{
			name: "malformed JSON",
			setup: func(chat *mocks.MockChatClient) {
				chat.On("Complete", mock.Anything, mock.Anything).Return("I could not find an event.", nil)
			},
		},
		{
			name: "truncated JSON",
			setup: func(chat *mocks.MockChatClient) {
				chat.On("Complete", mock.Anything, mock.Anything).Return(`{"title":"Jazz`, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &mocks.MockChatClient{}
			tt.setup(chat)

			e := newTestExtractor(t, chat)
			info, source := e.Extract(context.Background(), text)

			assert.Equal(t, model.SourceFallback, source)
			assert.Equal(t, model.SourceFallback, info.Source)
			assert.Equal(t, 0.3, info.Confidence)
			require.NotNil(t, info.Title)
			assert.Equal(t, "Summer Jazz Night", *info.Title)
		})
	}
}

func TestExtract_NilClientFallsBack(t *testing.T) {
	e := newTestExtractor(t, nil)
	info, source := e.Extract(context.Background(), "Picnic")

	assert.Equal(t, model.SourceFallback, source)
	assert.Equal(t, 0.3, info.Confidence)
}

func TestFallback(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, loc)

	t.Run("title skips label lines", func(t *testing.T) {
		info := Fallback("Date: Aug 5\nTime: 6:30 PM\nSummer Jazz Night\nLocation: the park", now)
		require.NotNil(t, info.Title)
		assert.Equal(t, "Summer Jazz Night", *info.Title)
	})

	t.Run("title defaults to Event", func(t *testing.T) {
		info := Fallback("Date: Aug 5\nTime: 6:30 PM", now)
		require.NotNil(t, info.Title)
		assert.Equal(t, "Event", *info.Title)
	})

	t.Run("location line is captured", func(t *testing.T) {
		info := Fallback("Party\nLocation: Washington Square Park", now)
		require.NotNil(t, info.Location)
		assert.Contains(t, *info.Location, "Washington Square Park")
	})

	t.Run("no location line means absent", func(t *testing.T) {
		info := Fallback("Party at noon", now)
		assert.Nil(t, info.Location)
	})

	t.Run("fixed confidence and default times", func(t *testing.T) {
		info := Fallback("Party", now)
		assert.Equal(t, 0.3, info.Confidence)
		require.NotNil(t, info.StartDateTime)
		assert.Equal(t, now, *info.StartDateTime)
		require.NotNil(t, info.EndDateTime)
		assert.Equal(t, now.Add(time.Hour), *info.EndDateTime)
		require.NotNil(t, info.Description)
		assert.Equal(t, "Party", *info.Description)
	})

	t.Run("never fails on arbitrary text", func(t *testing.T) {
		for _, text := range []string{"", "\n\n\n", "   ", "a"} {
			info := Fallback(text, now)
			assert.Equal(t, 0.3, info.Confidence)
			assert.NotNil(t, info.Title)
		}
	})
}
