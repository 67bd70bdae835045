package deposit

import (
	"context"
	"fmt"

	"github.com/openrds/depositsync/internal/domain/research"
	"github.com/openrds/depositsync/internal/domain/user"
)

// A Service that synchronises Deposit metadata with the remote metadata
// service. Implementations are stateless; every method is a single remote
// attempt with no internal retries, and concurrent calls are independent.
type Service interface {
	// Update pushes the Fields of the given Deposit to the remote record
	// addressed by its (UserId, ResearchIndex). Returns an error if:
	// - The remote rejects the request (RemoteRejected)
	// - The request cannot be carried out at all (TransportFailure)
	Update(ctx context.Context, deposit *Deposit) error

	// FindAll retrieves all Deposits scoped to the given user and research
	// index. An empty remote list is a successful, empty result, which is
	// distinct from any failure. Returns an error if:
	// - The remote rejects the request (RemoteRejected)
	// - The response is missing the expected list shape (MalformedResponse)
	// - The request cannot be carried out at all (TransportFailure)
	FindAll(ctx context.Context, userId user.Id, researchIndex research.Index) ([]Deposit, error)

	// FindOne retrieves the single Deposit addressed by (userId,
	// researchIndex, port). The first match in remote-provided order wins.
	// Returns an error if:
	// - No record matches the port (NotFound)
	// - The underlying FindAll fails (its error is returned as is)
	FindOne(ctx context.Context, userId user.Id, researchIndex research.Index, port Port) (*Deposit, error)

	// FetchSchema retrieves the JSON Schema document that Fields payloads
	// must satisfy. The document is static reference configuration relayed
	// verbatim; this component does not validate payloads against it.
	FetchSchema(ctx context.Context) (*Schema, error)
}

// SchemaCache provides access to the most recently fetched Schema. The
// second return value is true when the returned document could not be
// refreshed and is served from an earlier fetch.
type SchemaCache interface {
	Get(ctx context.Context) (*Schema, bool, error)
}

// <-- Domain Errors

type WrappingErr interface {
	error
	Unwrap() error
}

// RemoteRejected is returned when the remote metadata service answers with
// a status code of 300 or above. The body is kept for diagnostics only.
type RemoteRejected struct {
	StatusCode int
	Body       string
}

func (e RemoteRejected) Error() string {
	return fmt.Sprintf("Remote metadata service rejected the request: status [%d], body [%s]", e.StatusCode, e.Body)
}

// MalformedResponse is returned when the remote answers successfully but the
// body does not have the expected shape.
type MalformedResponse struct {
	Reason string
}

func (e MalformedResponse) Error() string {
	return fmt.Sprintf("Remote metadata service returned an unexpected body: [%s]", e.Reason)
}

// NotFound is returned when no remote record matches the requested Port
// within the given research Index.
type NotFound struct {
	Port          Port
	ResearchIndex research.Index
}

func (e NotFound) Error() string {
	return fmt.Sprintf("Could not find a deposit for port [%v] in research index [%v]", e.Port, e.ResearchIndex)
}

// TransportFailure is returned when the request could not be carried out at
// all (connection, TLS, DNS). It is distinct from RemoteRejected and from an
// empty successful result.
type TransportFailure struct {
	Underlying error
}

func (e TransportFailure) Error() string {
	return fmt.Sprintf("Could not reach the remote metadata service: [%v]", e.Underlying)
}

func (e TransportFailure) Unwrap() error {
	return e.Underlying
}

// Domain Errors -->
