package routes

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devusSs/hostbridge/internal/server/responses"
	"github.com/devusSs/hostbridge/pkg/system"
)

// WriteFileRequest is the body of PUT /fs/write
type WriteFileRequest struct {
	Path    string `json:"path"    binding:"required"`
	Content string `json:"content"`
}

// ExistsRoute handles GET /fs/exists?path=
func ExistsRoute(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		failure(c, http.StatusBadRequest, responses.CodeInvalidRequest, errMissingPath)
		return
	}
	success(c, system.Exists(path))
}

// ReadFileRoute handles GET /fs/read?path=
func ReadFileRoute(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		failure(c, http.StatusBadRequest, responses.CodeInvalidRequest, errMissingPath)
		return
	}

	content, err := system.ReadFile(path)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			code = http.StatusNotFound
		}
		failure(c, code, responses.CodeFileError, err)
		return
	}
	success(c, content)
}

// WriteFileRoute handles PUT /fs/write
func WriteFileRoute(c *gin.Context) {
	var req WriteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, responses.CodeInvalidRequest, err)
		return
	}

	if err := system.WriteFile(req.Path, req.Content); err != nil {
		failure(c, http.StatusInternalServerError, responses.CodeFileError, err)
		return
	}
	success(c, "ok")
}

var errMissingPath = errors.New("query parameter path is required")
