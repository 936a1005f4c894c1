package endpoints

import (
	"converter"
	"converter/internal/api/handler/mapper"
	"converter/internal/api/handler/request"
	"converter/internal/api/handler/response"
	"converter/internal/api/models"
	"converter/internal/api/service"
	"converter/internal/realtime"
	"converter/pkg"
	"errors"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type conversionHandler struct {
	conversionService *service.ConversionService
	config            converter.AppConfig
	logger            zerolog.Logger
}

func newConversionHandler(publisher *realtime.Publisher) *conversionHandler {
	return &conversionHandler{
		conversionService: service.NewConversionService(publisher),
		config:            converter.GetConfig(),
		logger:            converter.Logger,
	}
}

func ConversionHandler(router *graceful.Graceful, publisher *realtime.Publisher) {
	h := newConversionHandler(publisher)

	routes := router.Group("/api/v1/conversions")
	{
		routes.POST("", h.create)
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.DELETE("/:id", h.delete)

		routes.GET("/:id/script", h.script)
		routes.GET("/:id/order", h.order)
		routes.GET("/:id/nodes/:nodeId/upstream", h.upstream)
		routes.GET("/:id/nodes/:nodeId/downstream", h.downstream)
	}
}

// create converts an uploaded workflow document and stores the result
func (slf *conversionHandler) create(c *gin.Context) {
	var req request.CreateConversion
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse create conversion request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	conversion, err := slf.conversionService.Convert(req.Name, []byte(req.Document))
	if err != nil {
		slf.logger.Error().Err(err).Str("name", req.Name).Msg("Failed to convert workflow")
		c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mapper.ToConversionDetail(*conversion))
}

// getAll returns all stored conversions, without script bodies
func (slf *conversionHandler) getAll(c *gin.Context) {
	entities, err := slf.conversionService.FindAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to get conversions")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve conversions"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToConversionResponses(entities))
}

// getByID returns a single conversion with its analysis summary
func (slf *conversionHandler) getByID(c *gin.Context) {
	conversion, ok := slf.findConversion(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, mapper.ToConversionDetail(*conversion))
}

// delete removes a conversion
func (slf *conversionHandler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := slf.conversionService.Delete(id); err != nil {
		slf.logger.Error().Err(err).Str("id", id).Msg("Failed to delete conversion")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete conversion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

// script returns the generated script as plain text
func (slf *conversionHandler) script(c *gin.Context) {
	conversion, ok := slf.findConversion(c)
	if !ok {
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(conversion.Script))
}

// order returns the topological execution order of the stored workflow
func (slf *conversionHandler) order(c *gin.Context) {
	id := c.Param("id")
	order, hasCycle, err := slf.conversionService.ExecutionOrder(id)
	if err != nil {
		slf.respondServiceError(c, id, err, "Failed to compute execution order")
		return
	}

	c.JSON(http.StatusOK, response.ExecutionOrder{Order: order, HasCycle: hasCycle})
}

// upstream returns the transitive dependencies of one node
func (slf *conversionHandler) upstream(c *gin.Context) {
	slf.lineage(c, slf.conversionService.Upstream)
}

// downstream returns the transitive dependents of one node
func (slf *conversionHandler) downstream(c *gin.Context) {
	slf.lineage(c, slf.conversionService.Downstream)
}

func (slf *conversionHandler) lineage(c *gin.Context, resolve func(publicID, nodeID string) ([]string, error)) {
	id := c.Param("id")
	nodeID := c.Param("nodeId")

	nodes, err := resolve(id, nodeID)
	if err != nil {
		slf.respondServiceError(c, id, err, "Failed to resolve node lineage")
		return
	}

	c.JSON(http.StatusOK, response.Lineage{NodeID: nodeID, Nodes: nodes})
}

func (slf *conversionHandler) findConversion(c *gin.Context) (*models.Conversion, bool) {
	id := c.Param("id")
	conversion, err := slf.conversionService.FindByPublicID(id)
	if err != nil {
		slf.respondServiceError(c, id, err, "Failed to retrieve conversion")
		return nil, false
	}
	return conversion, true
}

func (slf *conversionHandler) respondServiceError(c *gin.Context, id string, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrConversionNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: "Conversion not found"})
	case errors.Is(err, service.ErrNodeNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: "Node not found"})
	default:
		slf.logger.Error().Err(err).Str("id", id).Msg(fallback)
		c.JSON(http.StatusInternalServerError, response.APIError{Message: fallback})
	}
}
