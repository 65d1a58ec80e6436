package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// options sets the "allow" header and renders an empty response.
func options(c *gin.Context, methods string) {
	c.Header("allow", methods)
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) {
	options(c, "OPTIONS, GET")
}

func OptionsPost(c *gin.Context) {
	options(c, "OPTIONS, POST")
}

func OptionsGetPost(c *gin.Context) {
	options(c, "OPTIONS, GET, POST")
}

func OptionsGetPut(c *gin.Context) {
	options(c, "OPTIONS, GET, PUT")
}

func OptionsGetDelete(c *gin.Context) {
	options(c, "OPTIONS, GET, DELETE")
}

func OptionsGetPatchDelete(c *gin.Context) {
	options(c, "OPTIONS, GET, PATCH, DELETE")
}
