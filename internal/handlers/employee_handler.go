package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/metrics"
	"github.com/BruksfildServices01/mv-autocenter/internal/middleware"
	"github.com/BruksfildServices01/mv-autocenter/internal/validators"
)

type EmployeeHandler struct {
	repo        user.Repository
	metrics     metrics.Recorder
	checkDomain bool
}

func NewEmployeeHandler(repo user.Repository, rec metrics.Recorder, checkDomain bool) *EmployeeHandler {
	return &EmployeeHandler{repo: repo, metrics: rec, checkDomain: checkDomain}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type UpdateEmployeeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

func (r UpdateEmployeeRequest) patch() user.Patch {
	p := user.Patch{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
		Active:   r.Active,
	}
	// senha em branco no formulário de edição = manter a atual
	if p.Password != nil && *p.Password == "" {
		p.Password = nil
	}
	if r.Role != nil {
		role := user.Role(*r.Role)
		p.Role = &role
	}
	return p
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	users, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, users)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	u, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if h.checkDomain && !validators.IsEmailDomainValid(validators.NormalizeEmail(req.Email)) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	created, err := h.repo.Create(c.Request.Context(), user.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("user", "create")
	httpresp.Created(c, created)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	id := c.Param("id")
	p := req.patch()

	// ninguém desativa a própria conta nem rebaixa o próprio cargo
	if id == middleware.UserIDFrom(c) {
		if (p.Active != nil && !*p.Active) || (p.Role != nil && *p.Role != middleware.RoleFrom(c)) {
			httperr.FromError(c, httperr.ErrBusiness("cannot_change_own_access"))
			return
		}
	}

	if h.checkDomain && p.Email != nil && !validators.IsEmailDomainValid(validators.NormalizeEmail(*p.Email)) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), id, p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("user", "update")
	httpresp.OK(c, updated)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == middleware.UserIDFrom(c) {
		httperr.FromError(c, httperr.ErrBusiness("cannot_delete_self"))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("user", "delete")
	httpresp.NoContent(c)
}
