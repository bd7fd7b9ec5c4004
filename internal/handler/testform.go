package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed web/test_form.html
var testFormHTML []byte

// TestForm handles GET /test-form
func TestForm(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", testFormHTML)
}
