package deposits

import (
	"net/http"

	"github.com/gin-gonic/gin"

	depositController "github.com/openrds/depositsync/internal/api/controllers/deposit"
	apiDeposit "github.com/openrds/depositsync/internal/api/models/deposit"
	domainDeposit "github.com/openrds/depositsync/internal/domain/deposit"
	"github.com/openrds/depositsync/internal/domain/research"
	"github.com/openrds/depositsync/internal/domain/user"
	"github.com/openrds/depositsync/internal/infra/server/routing"
)

var rootPath = "/deposits"
var schemaPath = "/schema"
var researchIndexPathKey = "research_index"
var portPathKey = "port"

// StaleSchemaHeaderKey is set to "true" on schema responses that were served
// from the cache because the live fetch failed.
var StaleSchemaHeaderKey = "X-SCHEMA-STALE"

type RoutesHandler struct {
	Controller depositController.Controller
}

func (h *RoutesHandler) RegisterRoutes(routerGroup *gin.RouterGroup) {
	routerGroup.GET(rootPath+"/:"+researchIndexPathKey, h.list)
	routerGroup.GET(rootPath+"/:"+researchIndexPathKey+"/:"+portPathKey, h.get)
	routerGroup.PATCH(rootPath+"/:"+researchIndexPathKey, h.update)
	routerGroup.GET(schemaPath, h.schema)
}

// @Summary List Deposits
// @ID list-deposits
// @Tags deposits
// @Description Lists the Deposits mirrored remotely for a research index
// @Produce  json
// @Param   X-RDS-USER-ID header string true "Pre-authenticated user id"
// @Param   research_index path string true "The research index"
// @Success 200 {object} deposit.List
// @Failure 502 {object} common.Body "Remote service rejected the request"
// @Router /deposits/{research_index} [get]
func (h *RoutesHandler) list(c *gin.Context) {
	userId, researchIndex, ok := h.scope(c)
	if !ok {
		return
	}
	if list, err := h.Controller.List(c.Request.Context(), userId, researchIndex); err == nil {
		c.JSON(http.StatusOK, list)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// @Summary Get a Deposit
// @ID get-deposit
// @Tags deposits
// @Description Retrieves the single Deposit addressed by research index and port
// @Produce  json
// @Param   X-RDS-USER-ID header string true "Pre-authenticated user id"
// @Param   research_index path string true "The research index"
// @Param   port path string true "The port of the Deposit"
// @Success 200 {object} deposit.Deposit
// @Failure 404 {object} common.Body "No Deposit matches the port"
// @Router /deposits/{research_index}/{port} [get]
func (h *RoutesHandler) get(c *gin.Context) {
	userId, researchIndex, ok := h.scope(c)
	if !ok {
		return
	}
	port := domainDeposit.Port(c.Param(portPathKey))
	if found, err := h.Controller.Get(c.Request.Context(), userId, researchIndex, port); err == nil {
		c.JSON(http.StatusOK, found)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// @Summary Update Deposit metadata
// @ID update-deposit
// @Tags deposits
// @Description Pushes a partial metadata update to the remote record
// @Accept  json
// @Produce  json
// @Param   X-RDS-USER-ID header string true "Pre-authenticated user id"
// @Param   research_index path string true "The research index"
// @Param   update body deposit.UpdateRequest true "The request body"
// @Success 204 "Remote record updated"
// @Failure 400 {object} common.Body "Invalid JSON"
// @Failure 502 {object} common.Body "Remote service rejected the update"
// @Router /deposits/{research_index} [patch]
func (h *RoutesHandler) update(c *gin.Context) {
	userId, researchIndex, ok := h.scope(c)
	if !ok {
		return
	}
	var request apiDeposit.UpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		routing.HandleJsonSerdesErr(c, err)
	} else {
		if err := h.Controller.Update(c.Request.Context(), userId, researchIndex, &request); err == nil {
			c.Status(http.StatusNoContent)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary Get the metadata schema
// @ID get-schema
// @Tags deposits
// @Description Relays the JSON Schema document that metadata payloads must satisfy
// @Produce  json
// @Success 200 {object} object
// @Failure 504 {object} common.Body "Remote service unreachable and no cached copy"
// @Router /schema [get]
func (h *RoutesHandler) schema(c *gin.Context) {
	schema, stale, err := h.Controller.Schema(c.Request.Context())
	if err != nil {
		c.JSON(err.StatusCode, err.Body)
		return
	}
	if stale {
		c.Header(StaleSchemaHeaderKey, "true")
	}
	// relayed verbatim; the document is opaque configuration
	c.Data(http.StatusOK, "application/json", schema.Raw)
}

func (h *RoutesHandler) scope(c *gin.Context) (user.Id, research.Index, bool) {
	userId := c.GetHeader(routing.UserIdHeaderKey)
	if len(userId) == 0 {
		routing.HandleMissingUserId(c)
		return "", "", false
	}
	researchIndex, err := research.IndexFromString(c.Param(researchIndexPathKey))
	if err != nil {
		routing.HandleJsonSerdesErr(c, err)
		return "", "", false
	}
	return user.Id(userId), *researchIndex, true
}
