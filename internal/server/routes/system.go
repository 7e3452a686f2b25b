package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devusSs/hostbridge/internal/server/responses"
	"github.com/devusSs/hostbridge/pkg/system"
)

// Host is the set of host operations exposed over the API
type Host interface {
	SystemInfo(ctx context.Context) (*system.SystemInfo, error)
	CheckDiskSpace(path string) (*system.DiskSpace, error)
	ExecuteCommand(ctx context.Context, command string, args []string) (string, error)
	StartDetached(command string, args []string) (string, error)
	OpenExternal(target string) error
}

// ExecRequest is the body of POST /system/exec
type ExecRequest struct {
	Command    string   `json:"command"    binding:"required"`
	Args       []string `json:"args"`
	Background bool     `json:"background"`
}

// OpenRequest is the body of POST /system/open
type OpenRequest struct {
	Target string `json:"target" binding:"required"`
}

// SystemHandlers serves the /system routes
type SystemHandlers struct {
	host Host
	// Zero means commands may run forever
	execTimeout time.Duration
}

// NewSystemHandlers creates the handlers for the /system routes
func NewSystemHandlers(host Host, execTimeout time.Duration) *SystemHandlers {
	return &SystemHandlers{
		host:        host,
		execTimeout: execTimeout,
	}
}

// GetInfoRoute handles GET /system/info
func (h *SystemHandlers) GetInfoRoute(c *gin.Context) {
	info, err := h.host.SystemInfo(c.Request.Context())
	if err != nil {
		failure(c, http.StatusInternalServerError, responses.CodeInternalError, err)
		return
	}
	success(c, info)
}

// GetDiskRoute handles GET /system/disk?path=
func (h *SystemHandlers) GetDiskRoute(c *gin.Context) {
	space, err := h.host.CheckDiskSpace(c.Query("path"))
	if err != nil {
		switch {
		case errors.Is(err, system.ErrInvalidPath):
			failure(c, http.StatusBadRequest, responses.CodeInvalidPath, err)
		case errors.Is(err, system.ErrHomeDir):
			failure(c, http.StatusInternalServerError, responses.CodeHomeDirUnresolved, err)
		default:
			failure(c, http.StatusInternalServerError, responses.CodeDiskSpaceFailed, err)
		}
		return
	}
	success(c, space)
}

// PostExecRoute handles POST /system/exec
func (h *SystemHandlers) PostExecRoute(c *gin.Context) {
	var req ExecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, responses.CodeInvalidRequest, err)
		return
	}

	if req.Background {
		msg, err := h.host.StartDetached(req.Command, req.Args)
		if err != nil {
			failure(c, http.StatusUnprocessableEntity, responses.CodeLaunchFailed, err)
			return
		}
		success(c, msg)
		return
	}

	ctx := c.Request.Context()
	if h.execTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.execTimeout)
		defer cancel()
	}

	output, err := h.host.ExecuteCommand(ctx, req.Command, req.Args)
	if err != nil {
		var exitErr *system.ExitError
		switch {
		case errors.Is(err, system.ErrCanceled):
			failure(c, http.StatusGatewayTimeout, responses.CodeCommandCanceled, err)
		case errors.As(err, &exitErr):
			failure(c, http.StatusUnprocessableEntity, responses.CodeCommandFailed, err)
		case errors.Is(err, system.ErrInvalidOutput):
			failure(c, http.StatusUnprocessableEntity, responses.CodeInvalidOutput, err)
		default:
			failure(c, http.StatusUnprocessableEntity, responses.CodeLaunchFailed, err)
		}
		return
	}
	success(c, output)
}

// PostOpenRoute handles POST /system/open
func (h *SystemHandlers) PostOpenRoute(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, responses.CodeInvalidRequest, err)
		return
	}

	if err := h.host.OpenExternal(req.Target); err != nil {
		if errors.Is(err, system.ErrInvalidTarget) {
			failure(c, http.StatusBadRequest, responses.CodeInvalidTarget, err)
			return
		}
		failure(c, http.StatusUnprocessableEntity, responses.CodeLaunchFailed, err)
		return
	}
	success(c, "ok")
}
