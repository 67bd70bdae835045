package status

import (
	"time"

	"github.com/openrds/depositsync/internal/domain/research"
	domainStatus "github.com/openrds/depositsync/internal/domain/status"
)

// A NewEvent as delivered by the push transport
type NewEvent struct {
	ResearchIndex research.Index         `json:"researchIndex" binding:"required,researchIndex" example:"42"`
	Type          domainStatus.Type      `json:"type" binding:"required" swaggertype:"string" example:"success"`
	Message       string                 `json:"message,omitempty" example:"Upload finished"`
	Extra         map[string]interface{} `json:"extra,omitempty" swaggertype:"object"`
}

// An Event as stored and handed back to the interface layer, with its
// presentation icon resolved when the type is a known one.
type Event struct {
	Id            string                 `json:"id" binding:"required" swaggertype:"string"`
	ResearchIndex research.Index         `json:"researchIndex" binding:"required" swaggertype:"string"`
	Type          domainStatus.Type      `json:"type" binding:"required" swaggertype:"string" example:"success"`
	Message       string                 `json:"message,omitempty"`
	Extra         map[string]interface{} `json:"extra,omitempty" swaggertype:"object"`
	ReceivedAt    time.Time              `json:"received_at" binding:"required" swaggertype:"string" format:"date-time"`
	Icon          *domainStatus.Icon     `json:"icon,omitempty" swaggertype:"string" example:"check circle"`
}

type List struct {
	Events []Event `json:"list"`
}

// ToDomainEvent converts the API model to the domain model
func (e *NewEvent) ToDomainEvent() domainStatus.Event {
	return domainStatus.Event{
		ResearchIndex: e.ResearchIndex,
		Type:          e.Type,
		Message:       e.Message,
		Extra:         e.Extra,
	}
}

// FromDomainEvent converts a domain model to the API model, resolving the
// Icon for known Types.
func FromDomainEvent(event *domainStatus.Event) Event {
	apiEvent := Event{
		Id:            event.Id,
		ResearchIndex: event.ResearchIndex,
		Type:          event.Type,
		Message:       event.Message,
		Extra:         event.Extra,
		ReceivedAt:    event.ReceivedAt,
	}
	if icon, ok := domainStatus.IconFor(event.Type); ok {
		apiEvent.Icon = &icon
	}
	return apiEvent
}

func FromDomainEvents(events []domainStatus.Event) List {
	apiEvents := make([]Event, 0, len(events))
	for i := range events {
		apiEvents = append(apiEvents, FromDomainEvent(&events[i]))
	}
	return List{Events: apiEvents}
}
