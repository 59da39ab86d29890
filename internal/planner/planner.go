package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/geo"
	"github.com/Xavierhuang/ScheduleShare/internal/llm"
	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

const maxRouteTokens = 1000

// Planner turns an ordered event list into a multi-leg travel itinerary with
// exactly one inbound segment per event. Plan never fails: every error path
// yields the deterministic fallback plan instead.
type Planner struct {
	chat      llm.ChatClient
	resolver  geo.Resolver
	loc       *time.Location
	maxTokens int
	now       func() time.Time
}

// New creates a Planner using the given location resolver and operating
// timezone. A maxTokens of zero or less selects the default budget.
func New(chat llm.ChatClient, resolver geo.Resolver, loc *time.Location, maxTokens int) *Planner {
	if maxTokens <= 0 {
		maxTokens = maxRouteTokens
	}
	return &Planner{
		chat:      chat,
		resolver:  resolver,
		loc:       loc,
		maxTokens: maxTokens,
		now:       time.Now,
	}
}

// Plan builds the prompt, calls the model, and maps the parsed segments back
// onto the events: each segment's arrival is pinned to its event's start time
// and the departure is back-projected by the travel time. An empty event list
// short-circuits to an empty plan without a network call.
func (p *Planner) Plan(ctx context.Context, events []model.CalendarEvent, start *model.LocationCoordinate) (model.RoutePlan, model.Source) {
	if len(events) == 0 {
		return model.RoutePlan{Segments: []model.RouteSegment{}}, model.SourceModel
	}

	plan, err := p.planWithModel(ctx, events, start)
	if err != nil {
		fmt.Printf("Route planning falling back to fixed segments: %v\n", err)
		return Fallback(events, p.resolver), model.SourceFallback
	}
	return plan, model.SourceModel
}

func (p *Planner) planWithModel(ctx context.Context, events []model.CalendarEvent, start *model.LocationCoordinate) (model.RoutePlan, error) {
	if p.chat == nil {
		return model.RoutePlan{}, fmt.Errorf("chat client not configured")
	}

	content, err := p.chat.Complete(ctx, llm.ChatRequest{
		System:    systemPrompt,
		User:      buildRoutePrompt(events, start, p.now(), p.loc),
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		return model.RoutePlan{}, err
	}
	if content == "" {
		return model.RoutePlan{}, fmt.Errorf("empty response content")
	}

	resp, err := llm.ParseRoutePlan(llm.CleanJSON(content))
	if err != nil {
		return model.RoutePlan{}, err
	}

	segments := make([]model.RouteSegment, 0, len(resp.Segments))
	for i, data := range resp.Segments {
		// Clamp in case the model under- or over-shoots the mandated count.
		eventIndex := i
		if eventIndex > len(events)-1 {
			eventIndex = len(events) - 1
		}
		event := events[eventIndex]

		travelTime := *data.TravelTime
		arrival := event.StartDate
		segments = append(segments, model.RouteSegment{
			ID:            model.NewID(),
			FromLocation:  p.resolver.Resolve(*data.FromLocation),
			ToLocation:    p.resolver.Resolve(*data.ToLocation),
			Mode:          model.ParseTransportationMode(*data.Mode),
			TravelTime:    travelTime,
			Cost:          *data.Cost,
			Instructions:  *data.Instructions,
			DepartureTime: arrival.Add(-time.Duration(travelTime) * time.Second),
			ArrivalTime:   arrival,
		})
	}

	return model.RoutePlan{
		Segments:        segments,
		TotalTravelTime: *resp.TotalTravelTime,
		TotalCost:       *resp.TotalCost,
	}, nil
}
