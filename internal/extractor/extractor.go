package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/llm"
	"github.com/Xavierhuang/ScheduleShare/internal/model"
	"github.com/Xavierhuang/ScheduleShare/internal/timeutil"
)

const maxExtractTokens = 500

// defaultConfidence is assigned when the model omits the confidence field.
const defaultConfidence = 0.5

// Extractor turns raw screenshot text into a structured event record via the
// chat-completion service, falling back to line heuristics when the service
// is slow, wrong, or unavailable. Extract never fails: every error path
// yields the deterministic fallback value instead.
type Extractor struct {
	chat      llm.ChatClient
	loc       *time.Location
	maxTokens int
	now       func() time.Time
}

// New creates an Extractor anchored to the operating timezone. A maxTokens
// of zero or less selects the default budget.
func New(chat llm.ChatClient, loc *time.Location, maxTokens int) *Extractor {
	if maxTokens <= 0 {
		maxTokens = maxExtractTokens
	}
	return &Extractor{
		chat:      chat,
		loc:       loc,
		maxTokens: maxTokens,
		now:       time.Now,
	}
}

// Extract runs the pipeline: build prompt, call the model, sanitize and
// parse the reply, resolve dates. The returned source tag tells a genuine
// model extraction (variable confidence) from the fallback (fixed 0.3).
func (e *Extractor) Extract(ctx context.Context, text string) (model.ExtractedEventInfo, model.Source) {
	info, err := e.extractWithModel(ctx, text)
	if err != nil {
		fmt.Printf("Extraction falling back to heuristics: %v\n", err)
		return Fallback(text, e.now()), model.SourceFallback
	}
	return info, model.SourceModel
}

func (e *Extractor) extractWithModel(ctx context.Context, text string) (model.ExtractedEventInfo, error) {
	if e.chat == nil {
		return model.ExtractedEventInfo{}, fmt.Errorf("chat client not configured")
	}

	now := e.now()
	content, err := e.chat.Complete(ctx, llm.ChatRequest{
		System:    systemPrompt,
		User:      buildExtractionPrompt(text, now, e.loc),
		MaxTokens: e.maxTokens,
	})
	if err != nil {
		return model.ExtractedEventInfo{}, err
	}
	if content == "" {
		return model.ExtractedEventInfo{}, fmt.Errorf("empty response content")
	}

	resp, err := llm.ParseEventInfo(llm.CleanJSON(content))
	if err != nil {
		return model.ExtractedEventInfo{}, err
	}

	confidence := defaultConfidence
	if resp.Confidence != nil {
		confidence = *resp.Confidence
	}

	info := model.ExtractedEventInfo{
		RawText:     text,
		Title:       resp.Title,
		Location:    resp.Location,
		Description: resp.Description,
		Confidence:  confidence,
		Source:      model.SourceModel,
	}
	info.StartDateTime = e.resolveDateTime(resp.StartDateTime, now)
	info.EndDateTime = e.resolveDateTime(resp.EndDateTime, now)

	return info, nil
}

// resolveDateTime parses an extracted date string and applies the
// year-rollover correction. Unparseable values resolve to absent, matching
// the tolerant treatment of every other optional field.
func (e *Extractor) resolveDateTime(raw *string, now time.Time) *time.Time {
	if raw == nil {
		return nil
	}
	t, err := timeutil.ParseDateTime(*raw, e.loc)
	if err != nil {
		return nil
	}
	resolved := timeutil.RollForwardYear(t, now, e.loc)
	return &resolved
}
