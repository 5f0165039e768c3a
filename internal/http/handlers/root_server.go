package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bmlt-tools/snapshot-server/internal/data/repos"
	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/http/response"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

type RootServerHandler struct {
	log         *logger.Logger
	rootServers repos.RootServerRepo
	snapshots   repos.SnapshotRepo
}

func NewRootServerHandler(log *logger.Logger, rootServers repos.RootServerRepo, snapshots repos.SnapshotRepo) *RootServerHandler {
	return &RootServerHandler{
		log:         log.With("handler", "RootServerHandler"),
		rootServers: rootServers,
		snapshots:   snapshots,
	}
}

type createRootServerRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required,url"`
}

func (h *RootServerHandler) List(c *gin.Context) {
	rows, err := h.rootServers.List(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("List failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_root_servers_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"root_servers": rows})
}

func (h *RootServerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_root_server_id", err)
		return
	}
	row, err := h.rootServers.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		h.log.Error("Get failed", "error", err, "root_server_id", id)
		response.RespondError(c, http.StatusInternalServerError, "get_root_server_failed", err)
		return
	}
	if row == nil {
		response.RespondError(c, http.StatusNotFound, "root_server_not_found", nil)
		return
	}
	response.RespondOK(c, row)
}

func (h *RootServerHandler) Create(c *gin.Context) {
	var req createRootServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	// Base URLs are always stored with a trailing slash so relative
	// endpoint paths resolve under them.
	if !strings.HasSuffix(req.URL, "/") {
		req.URL += "/"
	}
	row, err := h.rootServers.Create(c.Request.Context(), nil, &domain.RootServer{Name: req.Name, URL: req.URL})
	if err != nil {
		h.log.Error("Create failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "create_root_server_failed", err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *RootServerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_root_server_id", err)
		return
	}
	deleted, err := h.rootServers.Delete(c.Request.Context(), nil, id)
	if err != nil {
		h.log.Error("Delete failed", "error", err, "root_server_id", id)
		response.RespondError(c, http.StatusInternalServerError, "delete_root_server_failed", err)
		return
	}
	if !deleted {
		response.RespondError(c, http.StatusNotFound, "root_server_not_found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RootServerHandler) ListSnapshots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_root_server_id", err)
		return
	}
	rootServer, err := h.rootServers.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		h.log.Error("ListSnapshots failed", "error", err, "root_server_id", id)
		response.RespondError(c, http.StatusInternalServerError, "list_snapshots_failed", err)
		return
	}
	if rootServer == nil {
		response.RespondError(c, http.StatusNotFound, "root_server_not_found", nil)
		return
	}
	rows, err := h.snapshots.ListByRootServer(c.Request.Context(), nil, id)
	if err != nil {
		h.log.Error("ListSnapshots failed", "error", err, "root_server_id", id)
		response.RespondError(c, http.StatusInternalServerError, "list_snapshots_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"snapshots": rows})
}
