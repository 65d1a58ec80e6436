// Package root serves the endpoints outside of the versioned API.
package root

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Healthz endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the ledger
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Endpoint returning Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

// RegisterRoutes registers the API root, version and health endpoints.
func RegisterRoutes(r *gin.RouterGroup, version string, db Pinger) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	v := Version{Version: version}
	r.GET("/version", v.Get)
	r.OPTIONS("/version", Options)

	h := Healthz{DB: db}
	r.GET("/healthz", h.Get)
	r.OPTIONS("/healthz", Options)
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	url := httputil.URL(c)

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
// @Router			/version [options]
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
