package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mv-autocenter/internal/dto"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/httpresp"
	"github.com/BruksfildServices01/mv-autocenter/internal/metrics"
	"github.com/BruksfildServices01/mv-autocenter/internal/middleware"
	"github.com/BruksfildServices01/mv-autocenter/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/mv-autocenter/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *ucAppointment.CreateService
	start       *ucAppointment.ChangeStatus
	complete    *ucAppointment.ChangeStatus
	cancel      *ucAppointment.ChangeStatus
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
	loc         *time.Location
	metrics     metrics.Recorder
}

func NewAppointmentHandler(
	create *ucAppointment.CreateService,
	start *ucAppointment.ChangeStatus,
	complete *ucAppointment.ChangeStatus,
	cancel *ucAppointment.ChangeStatus,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	loc *time.Location,
	rec metrics.Recorder,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		start:       start,
		complete:    complete,
		cancel:      cancel,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		loc:         loc,
		metrics:     rec,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	VehicleBrand string `json:"vehicle_brand"`
	VehicleModel string `json:"vehicle_model"`
	VehiclePlate string `json:"vehicle_plate"`
	VehicleYear  *int   `json:"vehicle_year"`

	ServiceIDs []string `json:"service_ids"`
	Conditions []string `json:"conditions"`
	Notes      string   `json:"notes"`

	// Vazios = atendimento agora.
	Date string `json:"date"`
	Time string `json:"time"`
}

func (r CreateAppointmentRequest) scheduledAt(loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(r.Date) == "" {
		return nil, nil
	}
	hm := strings.TrimSpace(r.Time)
	if hm == "" {
		hm = "00:00"
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(r.Date)+" "+hm, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	at, err := req.scheduledAt(h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateServiceInput{
		ActorID:      middleware.UserIDFrom(c),
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		VehicleBrand: req.VehicleBrand,
		VehicleModel: req.VehicleModel,
		VehiclePlate: req.VehiclePlate,
		VehicleYear:  req.VehicleYear,
		ServiceIDs:   req.ServiceIDs,
		Conditions:   req.Conditions,
		Notes:        req.Notes,
		ScheduledAt:  at,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("appointment", "create")
	httpresp.Created(c, dto.AppointmentList(*ap))
}

// ======================================================
// LIST
// ======================================================

// ListByDate lista o dia informado em ?date=YYYY-MM-DD (padrão: hoje).
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := time.Now().In(h.loc)
	if s := c.Query("date"); s != "" {
		parsed, err := timezone.ParseDate(s, h.loc)
		if err != nil {
			httperr.FromError(c, httperr.ErrBusiness("invalid_date"))
			return
		}
		date = parsed
	}

	list, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	days, err := h.listByMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, days)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Start(c *gin.Context) {
	h.changeStatus(c, h.start, "start")
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.complete, "complete")
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancel, "cancel")
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, uc *ucAppointment.ChangeStatus, action string) {
	ap, err := uc.Execute(c.Request.Context(), middleware.UserIDFrom(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.RecordMutation("appointment", action)
	httpresp.OK(c, dto.AppointmentList(*ap))
}
