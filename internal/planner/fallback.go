package planner

import (
	"fmt"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/geo"
	"github.com/Xavierhuang/ScheduleShare/internal/model"
)

const (
	fallbackTravelTime = 1800 // seconds
	fallbackCost       = 2.75
)

// Fallback synthesizes one fixed subway leg per event, chaining from the
// default starting point through each event location. Never fails.
func Fallback(events []model.CalendarEvent, resolver geo.Resolver) model.RoutePlan {
	segments := make([]model.RouteSegment, 0, len(events))
	current := resolver.Resolve("Starting Point")

	for _, event := range events {
		eventLocation := resolver.Resolve(event.Location)

		segments = append(segments, model.RouteSegment{
			ID:            model.NewID(),
			FromLocation:  current,
			ToLocation:    eventLocation,
			Mode:          model.ModeSubway,
			TravelTime:    fallbackTravelTime,
			Cost:          fallbackCost,
			Instructions:  fmt.Sprintf("Take subway to %s", event.Title),
			DepartureTime: event.StartDate.Add(-fallbackTravelTime * time.Second),
			ArrivalTime:   event.StartDate,
		})
		current = eventLocation
	}

	return model.RoutePlan{
		Segments:        segments,
		TotalTravelTime: len(segments) * fallbackTravelTime,
		TotalCost:       float64(len(segments)) * fallbackCost,
	}
}
