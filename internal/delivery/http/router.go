package http

import (
	"net/http"

	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	encounterHandler   *handler.EncounterHandler
	billingHandler     *handler.BillingHandler
	patientHandler     *handler.PatientHandler
	doctorHandler      *handler.DoctorHandler
	catalogHandler     *handler.CatalogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	encounterHandler *handler.EncounterHandler,
	billingHandler *handler.BillingHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	catalogHandler *handler.CatalogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		encounterHandler:   encounterHandler,
		billingHandler:     billingHandler,
		patientHandler:     patientHandler,
		doctorHandler:      doctorHandler,
		catalogHandler:     catalogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Routes for any authenticated user. Ownership checks for patient
	// callers happen in the usecases.
	authed := api.PathPrefix("").Subrouter()
	authed.Use(r.authMiddleware.Authenticate)
	authed.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	authed.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.Reschedule).Methods(http.MethodPut)
	authed.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.Cancel).Methods(http.MethodDelete)
	authed.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.GetByID).Methods(http.MethodGet)
	authed.HandleFunc("/doctors/{doctor_id:[0-9]+}/availability", r.appointmentHandler.GetAvailability).Methods(http.MethodGet)
	authed.HandleFunc("/departments", r.doctorHandler.ListDepartments).Methods(http.MethodGet)
	authed.HandleFunc("/encounters/{id:[0-9]+}", r.encounterHandler.GetByID).Methods(http.MethodGet)
	authed.HandleFunc("/bills/{id:[0-9]+}", r.billingHandler.GetByID).Methods(http.MethodGet)
	authed.HandleFunc("/medications", r.catalogHandler.ListMedications).Methods(http.MethodGet)
	authed.HandleFunc("/medications/{id:[0-9]+}", r.catalogHandler.GetMedication).Methods(http.MethodGet)
	authed.HandleFunc("/procedures", r.catalogHandler.ListProcedures).Methods(http.MethodGet)
	authed.HandleFunc("/procedures/{id:[0-9]+}", r.catalogHandler.GetProcedure).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/me", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/patients/me", r.patientHandler.GetMyRecord).Methods(http.MethodGet)
	patient.HandleFunc("/encounters/me", r.encounterHandler.GetMyEncounters).Methods(http.MethodGet)
	patient.HandleFunc("/bills/me", r.billingHandler.GetMyBills).Methods(http.MethodGet)

	// Staff routes (any non-patient role)
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id:[0-9]+}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	staff.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.GetByID).Methods(http.MethodGet)
	staff.HandleFunc("/encounters", r.encounterHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/encounters/{id:[0-9]+}/prescriptions", r.encounterHandler.GetPrescriptions).Methods(http.MethodGet)
	staff.HandleFunc("/encounters/{id:[0-9]+}/procedures", r.encounterHandler.GetProcedures).Methods(http.MethodGet)

	// Clinical routes (doctors and nurses)
	clinical := api.PathPrefix("").Subrouter()
	clinical.Use(r.authMiddleware.Authenticate)
	clinical.Use(middleware.RequireClinicalStaff)
	clinical.HandleFunc("/appointments/{appointment_id:[0-9]+}/encounter", r.encounterHandler.Open).Methods(http.MethodPost)
	clinical.HandleFunc("/encounters/{id:[0-9]+}", r.encounterHandler.Update).Methods(http.MethodPut)
	clinical.HandleFunc("/encounters/{id:[0-9]+}/prescriptions", r.encounterHandler.AddPrescription).Methods(http.MethodPost)
	clinical.HandleFunc("/encounters/{id:[0-9]+}/prescriptions/{prescription_id:[0-9]+}", r.encounterHandler.DeletePrescription).Methods(http.MethodDelete)
	clinical.HandleFunc("/encounters/{id:[0-9]+}/procedures", r.encounterHandler.AddProcedure).Methods(http.MethodPost)
	clinical.HandleFunc("/encounters/{id:[0-9]+}/procedures/{procedure_id:[0-9]+}", r.encounterHandler.DeleteProcedure).Methods(http.MethodDelete)
	clinical.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	clinical.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.Update).Methods(http.MethodPut)

	// Billing routes (admin and billing clerks)
	billing := api.PathPrefix("").Subrouter()
	billing.Use(r.authMiddleware.Authenticate)
	billing.Use(middleware.RequireBillingStaff)
	billing.HandleFunc("/bills", r.billingHandler.List).Methods(http.MethodGet)
	billing.HandleFunc("/encounters/{encounter_id:[0-9]+}/billing/sync", r.billingHandler.SyncEncounter).Methods(http.MethodPost)
	billing.HandleFunc("/bills/{id:[0-9]+}/payments", r.billingHandler.RecordPayment).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/departments", r.doctorHandler.CreateDepartment).Methods(http.MethodPost)
	admin.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/medications", r.catalogHandler.CreateMedication).Methods(http.MethodPost)
	admin.HandleFunc("/medications/{id:[0-9]+}", r.catalogHandler.UpdateMedication).Methods(http.MethodPut)
	admin.HandleFunc("/medications/{id:[0-9]+}", r.catalogHandler.DeleteMedication).Methods(http.MethodDelete)
	admin.HandleFunc("/procedures", r.catalogHandler.CreateProcedure).Methods(http.MethodPost)
	admin.HandleFunc("/procedures/{id:[0-9]+}", r.catalogHandler.UpdateProcedure).Methods(http.MethodPut)
	admin.HandleFunc("/procedures/{id:[0-9]+}", r.catalogHandler.DeleteProcedure).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
