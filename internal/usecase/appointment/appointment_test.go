package appointment

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/appointment"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

// fakeRepo guarda tudo em memória.
type fakeRepo struct {
	clients      []*models.Client
	vehicles     []*models.Vehicle
	services     map[string]models.Service
	appointments map[string]*models.Appointment
	seq          int

	findClientErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[string]models.Service{
			"svc-lav": {ID: "svc-lav", Name: "Lavagem Premium", Price: 80, Active: true},
			"svc-pol": {ID: "svc-pol", Name: "Polimento Técnico", Price: 300, Active: true},
			"svc-old": {ID: "svc-old", Name: "Cera Antiga", Price: 50, Active: false},
		},
		appointments: map[string]*models.Appointment{},
	}
}

func (f *fakeRepo) nextID(prefix string) string {
	f.seq++
	return prefix + "-" + strconv.Itoa(f.seq)
}

func (f *fakeRepo) FindClientByPhone(_ context.Context, phone string) (*models.Client, error) {
	if f.findClientErr != nil {
		return nil, f.findClientErr
	}
	for _, c := range f.clients {
		if c.Phone != nil && *c.Phone == phone {
			return c, nil
		}
	}
	return nil, httperr.NotFoundErr("client", phone)
}

func (f *fakeRepo) CreateClient(_ context.Context, c *models.Client) error {
	c.ID = f.nextID("cli")
	f.clients = append(f.clients, c)
	return nil
}

func (f *fakeRepo) FindVehicleByPlate(_ context.Context, clientID, plate string) (*models.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.ClientID == clientID && v.Plate != nil && *v.Plate == plate {
			return v, nil
		}
	}
	return nil, httperr.NotFoundErr("vehicle", plate)
}

func (f *fakeRepo) CreateVehicle(_ context.Context, v *models.Vehicle) error {
	v.ID = f.nextID("veh")
	f.vehicles = append(f.vehicles, v)
	return nil
}

func (f *fakeRepo) ListServicesByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := f.services[id]; ok && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.nextID("ap")
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.NotFoundErr("appointment", id)
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.ScheduledAt.Before(start) && ap.ScheduledAt.Before(end) {
			cp := *ap
			cp.Client = f.clientByID(cp.ClientID)
			cp.Vehicle = f.vehicleByID(cp.VehicleID)
			out = append(out, cp)
		}
	}
	// ordem por horário, como o repositório real
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ScheduledAt.Before(out[j-1].ScheduledAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (f *fakeRepo) clientByID(id string) *models.Client {
	for _, c := range f.clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (f *fakeRepo) vehicleByID(id *string) *models.Vehicle {
	if id == nil {
		return nil
	}
	for _, v := range f.vehicles {
		if v.ID == *id {
			return v
		}
	}
	return nil
}

type sinkStub struct {
	events []audit.Event
}

func (s *sinkStub) Dispatch(ev audit.Event) { s.events = append(s.events, ev) }

func validInput() CreateServiceInput {
	return CreateServiceInput{
		ActorID:      "u-1",
		ClientName:   "Carlos Lima",
		ClientPhone:  "(11) 98888-7777",
		VehicleBrand: "Honda",
		VehicleModel: "Civic",
		VehiclePlate: "abc1d23",
		ServiceIDs:   []string{"svc-lav", "svc-pol", "svc-lav"},
		Conditions:   []string{"Arranhões", "Interior sujo"},
		Notes:        "  cliente aguarda  ",
	}
}

func TestCreateService_CreatesClientVehicleAndTotal(t *testing.T) {
	repo := newFakeRepo()
	sink := &sinkStub{}
	uc := NewCreateService(repo, sink)
	fixed := time.Date(2026, 10, 14, 13, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	ap, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Total != 380 {
		t.Errorf("Total = %v, want 380", ap.Total)
	}
	if len(ap.Services) != 2 {
		t.Errorf("services = %d, want 2 (duplicates removed)", len(ap.Services))
	}
	if ap.Status != string(domain.StatusScheduled) || !ap.ScheduledAt.Equal(fixed) {
		t.Errorf("status = %q scheduled_at = %v", ap.Status, ap.ScheduledAt)
	}
	if ap.Notes != "cliente aguarda" || ap.Conditions != "Arranhões\nInterior sujo" {
		t.Errorf("notes = %q conditions = %q", ap.Notes, ap.Conditions)
	}
	if len(repo.clients) != 1 || len(repo.vehicles) != 1 {
		t.Fatalf("clients = %d vehicles = %d", len(repo.clients), len(repo.vehicles))
	}
	if *repo.vehicles[0].Plate != "ABC1D23" {
		t.Errorf("plate = %q, want upper-case", *repo.vehicles[0].Plate)
	}
	if repo.clients[0].Email != nil {
		t.Errorf("blank email stored as %q, want NULL", *repo.clients[0].Email)
	}
	if len(sink.events) != 1 || sink.events[0].Action != "appointment_created" || sink.events[0].ActorID != "u-1" {
		t.Errorf("audit = %+v", sink.events)
	}
}

func TestCreateService_ReusesClientAndVehicle(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateService(repo, &sinkStub{})
	ctx := context.Background()

	first, err := uc.Execute(ctx, validInput())
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.Execute(ctx, validInput())
	if err != nil {
		t.Fatal(err)
	}

	if len(repo.clients) != 1 || len(repo.vehicles) != 1 {
		t.Errorf("clients = %d vehicles = %d, want reuse", len(repo.clients), len(repo.vehicles))
	}
	if first.ClientID != second.ClientID || *first.VehicleID != *second.VehicleID {
		t.Error("second appointment not linked to the same client/vehicle")
	}
}

func TestCreateService_Validation(t *testing.T) {
	cases := map[string]func(*CreateServiceInput){
		"client_name":   func(in *CreateServiceInput) { in.ClientName = "  " },
		"client_phone":  func(in *CreateServiceInput) { in.ClientPhone = "" },
		"vehicle_model": func(in *CreateServiceInput) { in.VehicleModel = "" },
		"vehicle_plate": func(in *CreateServiceInput) { in.VehiclePlate = " " },
		"service_ids":   func(in *CreateServiceInput) { in.ServiceIDs = []string{"", " "} },
		"phone":         func(in *CreateServiceInput) { in.ClientPhone = "123456789012345678901" },
		"plate":         func(in *CreateServiceInput) { in.VehiclePlate = "ABC1D23XYZW" },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			repo := newFakeRepo()
			in := validInput()
			mutate(&in)

			_, err := NewCreateService(repo, &sinkStub{}).Execute(context.Background(), in)
			var ve *httperr.ValidationError
			if !errors.As(err, &ve) || ve.Field != field {
				t.Fatalf("err = %v, want validation on %s", err, field)
			}
			if len(repo.clients) != 0 {
				t.Error("client created despite invalid input")
			}
		})
	}
}

func TestCreateService_UnknownOrInactiveService(t *testing.T) {
	repo := newFakeRepo()
	in := validInput()
	in.ServiceIDs = []string{"svc-lav", "svc-old"}

	_, err := NewCreateService(repo, &sinkStub{}).Execute(context.Background(), in)
	if !errors.Is(err, httperr.ErrBusiness("service_not_found")) {
		t.Fatalf("err = %v, want service_not_found", err)
	}
	if len(repo.clients) != 0 || len(repo.appointments) != 0 {
		t.Error("records written despite missing service")
	}
}

func TestCreateService_LookupFailureStops(t *testing.T) {
	repo := newFakeRepo()
	repo.findClientErr = httperr.Persistence("find client", errors.New("db down"))

	_, err := NewCreateService(repo, &sinkStub{}).Execute(context.Background(), validInput())
	if !httperr.IsPersistence(err) {
		t.Fatalf("err = %v, want persistence error", err)
	}
	if len(repo.clients) != 0 {
		t.Error("client created after lookup failure")
	}
}

func TestChangeStatus_Flow(t *testing.T) {
	repo := newFakeRepo()
	sink := &sinkStub{}
	ctx := context.Background()

	ap, err := NewCreateService(repo, sink).Execute(ctx, validInput())
	if err != nil {
		t.Fatal(err)
	}

	started, err := NewStartAppointment(repo, sink).Execute(ctx, "u-1", ap.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != string(domain.StatusInProgress) {
		t.Errorf("status = %q", started.Status)
	}

	done := NewCompleteAppointment(repo, sink)
	fixed := time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)
	done.now = func() time.Time { return fixed }
	completed, err := done.Execute(ctx, "u-1", ap.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.CompletedAt == nil || !completed.CompletedAt.Equal(fixed) {
		t.Errorf("completed_at = %v", completed.CompletedAt)
	}

	if _, err := NewCancelAppointment(repo, sink).Execute(ctx, "u-1", ap.ID); !errors.Is(err, httperr.ErrBusiness("invalid_state")) {
		t.Errorf("cancel completed: err = %v", err)
	}

	last := sink.events[len(sink.events)-1]
	if last.Action != "appointment_completed" || last.Metadata["from"] != "in_progress" || last.Metadata["to"] != "completed" {
		t.Errorf("last audit = %+v", last)
	}
}

func TestChangeStatus_NotFound(t *testing.T) {
	_, err := NewCancelAppointment(newFakeRepo(), &sinkStub{}).Execute(context.Background(), "u-1", "missing")
	if !httperr.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestListByDateAndMonth(t *testing.T) {
	repo := newFakeRepo()
	loc := time.FixedZone("BRT", -3*60*60)
	ctx := context.Background()

	at := func(day, hour int) *time.Time {
		t := time.Date(2026, 10, day, hour, 0, 0, 0, loc)
		return &t
	}

	create := NewCreateService(repo, &sinkStub{})
	for _, when := range []*time.Time{at(14, 9), at(14, 15), at(15, 10), at(20, 8)} {
		in := validInput()
		in.ScheduledAt = when
		if _, err := create.Execute(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	// 23h em BRT ainda é dia 14 local, embora já seja dia 15 em UTC
	late := validInput()
	late.ScheduledAt = at(14, 23)
	ap, _ := create.Execute(ctx, late)
	_, _ = NewCancelAppointment(repo, &sinkStub{}).Execute(ctx, "u-1", ap.ID)

	day, err := NewListAppointmentsByDate(repo, loc).Execute(ctx, time.Date(2026, 10, 14, 12, 0, 0, 0, loc))
	if err != nil {
		t.Fatal(err)
	}
	if len(day) != 3 {
		t.Fatalf("day list = %d, want 3", len(day))
	}
	if !day[0].ScheduledAt.Before(day[1].ScheduledAt) {
		t.Error("day list not ordered by time")
	}
	if day[0].ClientName != "Carlos Lima" || !strings.HasPrefix(day[0].Plate, "ABC") {
		t.Errorf("dto = %+v", day[0])
	}

	month, err := NewListAppointmentsByMonth(repo, loc).Execute(ctx, 2026, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		date  string
		count int
	}{{"2026-10-14", 2}, {"2026-10-15", 1}, {"2026-10-20", 1}}
	if len(month) != len(want) {
		t.Fatalf("month = %+v", month)
	}
	for i, w := range want {
		if month[i].Date != w.date || month[i].Count != w.count {
			t.Errorf("month[%d] = %+v, want %+v", i, month[i], w)
		}
	}

	if _, err := NewListAppointmentsByMonth(repo, loc).Execute(ctx, 2026, 13); !errors.Is(err, httperr.ErrBusiness("invalid_period")) {
		t.Errorf("month 13: err = %v", err)
	}
}
