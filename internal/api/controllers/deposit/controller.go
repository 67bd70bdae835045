package deposit

import (
	"context"
	"net/http"

	"github.com/openrds/depositsync/internal/api/models/common"
	apiDeposit "github.com/openrds/depositsync/internal/api/models/deposit"
	domainDeposit "github.com/openrds/depositsync/internal/domain/deposit"
	"github.com/openrds/depositsync/internal/domain/research"
	"github.com/openrds/depositsync/internal/domain/user"
)

// Controller is an interface that defines the methods that are available to
// the routing layer. It is framework-agnostic
type Controller interface {

	// List returns all Deposits scoped to the given user and research index
	List(ctx context.Context, userId user.Id, researchIndex research.Index) (*apiDeposit.List, *common.ApiError)

	// Get returns the single Deposit addressed by (userId, researchIndex, port)
	Get(ctx context.Context, userId user.Id, researchIndex research.Index, port domainDeposit.Port) (*apiDeposit.Deposit, *common.ApiError)

	// Update pushes a metadata payload to the remote record addressed by
	// (userId, researchIndex)
	Update(ctx context.Context, userId user.Id, researchIndex research.Index, request *apiDeposit.UpdateRequest) *common.ApiError

	// Schema returns the schema document that metadata payloads must
	// satisfy; the bool is true when a stale cached copy is served
	Schema(ctx context.Context) (*domainDeposit.Schema, bool, *common.ApiError)
}

func New(syncService domainDeposit.Service, schemaCache domainDeposit.SchemaCache) Controller {
	return &impl{
		syncService: syncService,
		schemaCache: schemaCache,
	}
}

type impl struct {
	syncService domainDeposit.Service
	schemaCache domainDeposit.SchemaCache
}

func (c *impl) List(ctx context.Context, userId user.Id, researchIndex research.Index) (*apiDeposit.List, *common.ApiError) {
	result, err := c.syncService.FindAll(ctx, userId, researchIndex)
	if err != nil {
		return nil, handleErr(err)
	} else {
		list := apiDeposit.FromDomainDeposits(result)
		return &list, nil
	}
}

func (c *impl) Get(ctx context.Context, userId user.Id, researchIndex research.Index, port domainDeposit.Port) (*apiDeposit.Deposit, *common.ApiError) {
	result, err := c.syncService.FindOne(ctx, userId, researchIndex, port)
	if err != nil {
		return nil, handleErr(err)
	} else {
		d := apiDeposit.FromDomainDeposit(result)
		return &d, nil
	}
}

func (c *impl) Update(ctx context.Context, userId user.Id, researchIndex research.Index, request *apiDeposit.UpdateRequest) *common.ApiError {
	toPush := domainDeposit.Deposit{
		UserId:        userId,
		ResearchIndex: researchIndex,
		Fields:        request.Metadata,
	}
	if err := c.syncService.Update(ctx, &toPush); err != nil {
		return handleErr(err)
	} else {
		return nil
	}
}

func (c *impl) Schema(ctx context.Context) (*domainDeposit.Schema, bool, *common.ApiError) {
	schema, stale, err := c.schemaCache.Get(ctx)
	if err != nil {
		return nil, false, handleErr(err)
	} else {
		return schema, stale, nil
	}
}

func handleErr(err error) *common.ApiError {
	switch v := err.(type) {
	case domainDeposit.NotFound:
		return notFound(v)
	case domainDeposit.RemoteRejected:
		return remoteRejected(v)
	case domainDeposit.MalformedResponse:
		return malformedResponse(v)
	case domainDeposit.TransportFailure:
		return transportFailure(v)
	default:
		return unhandledErr(v)
	}
}

func notFound(notFound domainDeposit.NotFound) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusNotFound,
		Body: common.Body{
			Message: notFound.Error(),
		},
	}
}

func remoteRejected(rejected domainDeposit.RemoteRejected) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusBadGateway,
		Body: common.Body{
			Message: rejected.Error(),
		},
	}
}

func malformedResponse(malformed domainDeposit.MalformedResponse) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusBadGateway,
		Body: common.Body{
			Message: malformed.Error(),
		},
	}
}

func transportFailure(failure domainDeposit.TransportFailure) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusGatewayTimeout,
		Body: common.Body{
			Message: failure.Error(),
		},
	}
}

func unhandledErr(err error) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusInternalServerError,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}
