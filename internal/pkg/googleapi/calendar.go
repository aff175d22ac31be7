package googleapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// calendarTimeZone is the fixed timezone events are created in.
const calendarTimeZone = "Europe/Madrid"

// calendarClient implements Calendar on top of the Calendar v3 API.
type calendarClient struct {
	svc     *calendar.Service
	timeout time.Duration
}

func newCalendarClient(ctx context.Context, httpClient *http.Client, timeout time.Duration) (*calendarClient, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar client: %w", err)
	}
	return &calendarClient{svc: svc, timeout: timeout}, nil
}

// InsertEvent creates the event in the user's primary calendar.
func (c *calendarClient) InsertEvent(ctx context.Context, event EventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: calendarTimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: calendarTimeZone,
		},
	}

	created, err := c.svc.Events.Insert("primary", body).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar insert failed: %w", err)
	}
	return created.Id, nil
}
