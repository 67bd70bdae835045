package status

import (
	apiStatus "github.com/openrds/depositsync/internal/api/models/status"
	"github.com/openrds/depositsync/internal/domain/research"
	domainStatus "github.com/openrds/depositsync/internal/domain/status"
)

// Controller is an interface that defines the methods that are available to
// the routing layer. It is framework-agnostic.
//
// Neither operation can fail: the Store contract is append-only and reads of
// unknown indices yield empty lists.
type Controller interface {

	// Record buffers an Event delivered by the push transport
	Record(newEvent *apiStatus.NewEvent)

	// EventsFor returns the Events accumulated for the given research
	// index, in insertion order, with presentation icons resolved
	EventsFor(researchIndex research.Index) apiStatus.List
}

func New(store domainStatus.Store) Controller {
	return &impl{store: store}
}

type impl struct {
	store domainStatus.Store
}

func (c *impl) Record(newEvent *apiStatus.NewEvent) {
	c.store.Append(newEvent.ToDomainEvent())
}

func (c *impl) EventsFor(researchIndex research.Index) apiStatus.List {
	return apiStatus.FromDomainEvents(c.store.EventsFor(researchIndex))
}
