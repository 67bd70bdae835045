package events

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statusController "github.com/openrds/depositsync/internal/api/controllers/status"
	apiStatus "github.com/openrds/depositsync/internal/api/models/status"
	"github.com/openrds/depositsync/internal/domain/research"
	"github.com/openrds/depositsync/internal/infra/server/routing"
)

var rootPath = "/events"
var researchIndexPathKey = "research_index"

type RoutesHandler struct {
	Controller statusController.Controller
}

func (h *RoutesHandler) RegisterRoutes(routerGroup *gin.RouterGroup) {
	routerGroup.POST(rootPath, h.record)
	routerGroup.GET(rootPath+"/:"+researchIndexPathKey, h.eventsFor)
}

// @Summary Record a status event
// @ID record-event
// @Tags events
// @Description Buffers a status notification delivered by the push transport
// @Accept  json
// @Produce  json
// @Param   newEvent body status.NewEvent true "The request body"
// @Success 202 "Event buffered"
// @Failure 400 {object} common.Body "Invalid JSON"
// @Router /events [post]
func (h *RoutesHandler) record(c *gin.Context) {
	var newEvent apiStatus.NewEvent
	if err := c.ShouldBindJSON(&newEvent); err != nil {
		routing.HandleJsonSerdesErr(c, err)
	} else {
		h.Controller.Record(&newEvent)
		c.Status(http.StatusAccepted)
	}
}

// @Summary List status events
// @ID list-events
// @Tags events
// @Description Returns the buffered status events for a research index, oldest first
// @Produce  json
// @Param   research_index path string true "The research index"
// @Success 200 {object} status.List
// @Router /events/{research_index} [get]
func (h *RoutesHandler) eventsFor(c *gin.Context) {
	researchIndex, err := research.IndexFromString(c.Param(researchIndexPathKey))
	if err != nil {
		routing.HandleJsonSerdesErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Controller.EventsFor(*researchIndex))
}
