package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/sharedkernel/internal/partner/application"
	"github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedApp "github.com/davicafu/sharedkernel/shared/application"
	"github.com/davicafu/sharedkernel/shared/platform/query"
	"github.com/davicafu/sharedkernel/shared/presentation"
)

// PartnerHandler encapsula los endpoints HTTP de Partner.
// Los errores se delegan con presentation.Fail; el envoltorio lo pone el middleware.
type PartnerHandler struct {
	service  *application.PartnerService
	register sharedApp.CommandHandler[application.RegisterPartner, *domain.Partner]
	list     sharedApp.QueryHandler[application.ListPartners, []application.PartnerView]
}

func NewPartnerHandler(service *application.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		service:  service,
		register: service.RegisterHandler(),
		list:     service.ListHandler(),
	}
}

type registerRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Email string `json:"email" binding:"required,email"`
}

type renameRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// ---------------- Handlers ----------------

// Register endpoint POST /partners
func (h *PartnerHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := presentation.BindJSON(c, &req); err != nil {
		presentation.Fail(c, err)
		return
	}

	p, err := h.register.Handle(c.Request.Context(), application.RegisterPartner{Name: req.Name, Email: req.Email})
	if err != nil {
		presentation.Fail(c, err)
		return
	}
	presentation.Created(c, application.ViewOf(p, sharedApp.ViewDetailed))
}

// Get endpoint GET /partners/:id
func (h *PartnerHandler) Get(c *gin.Context) {
	id, err := presentation.PathID(c, "id")
	if err != nil {
		presentation.Fail(c, err)
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		presentation.Fail(c, err)
		return
	}
	presentation.OK(c, application.ViewOf(p, viewParam(c, sharedApp.ViewFull)))
}

// List endpoint GET /partners?name=
func (h *PartnerHandler) List(c *gin.Context) {
	name, err := presentation.RequiredQuery(c, "name", "String")
	if err != nil {
		presentation.Fail(c, err)
		return
	}

	q := application.ListPartners{
		Name:           name,
		Status:         domain.Status(c.Query("status")),
		IncludeDeleted: c.Query("includeDeleted") == "true",
		View:           viewParam(c, sharedApp.ViewSummary),
		Page: query.OffsetPagination{
			Limit:  intQuery(c, "limit"),
			Offset: intQuery(c, "offset"),
		},
		Sort: query.Sort{
			Field:     c.Query("sort"),
			Direction: query.ParseSortDirection(c.Query("dir")),
		},
	}

	views, err := h.list.Handle(c.Request.Context(), q)
	if err != nil {
		presentation.Fail(c, err)
		return
	}
	presentation.OK(c, views)
}

// Rename endpoint PATCH /partners/:id
func (h *PartnerHandler) Rename(c *gin.Context) {
	id, err := presentation.PathID(c, "id")
	if err != nil {
		presentation.Fail(c, err)
		return
	}
	var req renameRequest
	if err := presentation.BindJSON(c, &req); err != nil {
		presentation.Fail(c, err)
		return
	}

	p, err := h.service.Rename(c.Request.Context(), application.RenamePartner{ID: id, Name: req.Name})
	if err != nil {
		presentation.Fail(c, err)
		return
	}
	presentation.OK(c, application.ViewOf(p, sharedApp.ViewDetailed))
}

// Suspend endpoint POST /partners/:id/suspend
func (h *PartnerHandler) Suspend(c *gin.Context) {
	id, err := presentation.PathID(c, "id")
	if err != nil {
		presentation.Fail(c, err)
		return
	}

	p, err := h.service.Suspend(c.Request.Context(), id)
	if err != nil {
		presentation.Fail(c, err)
		return
	}
	presentation.OK(c, application.ViewOf(p, sharedApp.ViewDetailed))
}

// Remove endpoint DELETE /partners/:id?by=<uuid>
func (h *PartnerHandler) Remove(c *gin.Context) {
	id, err := presentation.PathID(c, "id")
	if err != nil {
		presentation.Fail(c, err)
		return
	}
	by, err := presentation.QueryID(c, "by")
	if err != nil {
		presentation.Fail(c, err)
		return
	}

	if _, err := h.service.Remove(c.Request.Context(), application.RemovePartner{ID: id, By: by}); err != nil {
		presentation.Fail(c, err)
		return
	}
	presentation.NoContent(c)
}

// Reinstate endpoint POST /partners/:id/restore
func (h *PartnerHandler) Reinstate(c *gin.Context) {
	id, err := presentation.PathID(c, "id")
	if err != nil {
		presentation.Fail(c, err)
		return
	}

	p, err := h.service.Reinstate(c.Request.Context(), id)
	if err != nil {
		presentation.Fail(c, err)
		return
	}
	presentation.OK(c, application.ViewOf(p, sharedApp.ViewFull))
}

// ---------------- Helpers ----------------

func viewParam(c *gin.Context, def sharedApp.QueryView) sharedApp.QueryView {
	raw := c.Query("view")
	if raw == "" {
		return def
	}
	return sharedApp.ParseQueryView(raw)
}

// intQuery devuelve 0 si el parámetro falta o no es un entero; Normalize pone el valor por defecto.
func intQuery(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}
