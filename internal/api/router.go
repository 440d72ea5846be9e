package api

import (
	"net/http"

	"route-plan-service/internal/api/handlers"
	"route-plan-service/internal/auth"
	"route-plan-service/internal/ports"
	"route-plan-service/internal/services"
)

// RouterDeps carries everything the HTTP surface needs. Handlers stay
// unaware of concrete adapters; this is the API composition root.
type RouterDeps struct {
	Plans       ports.PlanRepository
	Technicians ports.TechnicianRepository
	Vehicles    ports.VehicleRepository
	Exporter    *services.Exporter
	Auth        *auth.Service

	RegionName     func(string) string
	HideEmptyWeeks bool
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. Reads need a session, mutations the admin role.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &handlers.AuthHandler{Auth: deps.Auth}
	planHandler := &handlers.PlanHandler{Plans: deps.Plans}
	identityHandler := &handlers.IdentityHandler{
		Plans:       deps.Plans,
		Technicians: deps.Technicians,
		Vehicles:    deps.Vehicles,
	}
	reportHandler := &handlers.ReportHandler{
		Plans:          deps.Plans,
		Technicians:    deps.Technicians,
		Vehicles:       deps.Vehicles,
		RegionName:     deps.RegionName,
		HideEmptyWeeks: deps.HideEmptyWeeks,
	}
	exportHandler := &handlers.ExportHandler{
		Reports:  reportHandler,
		Exporter: deps.Exporter,
	}

	read := func(next http.HandlerFunc) http.HandlerFunc { return requireSession(deps.Auth, next) }
	write := func(next http.HandlerFunc) http.HandlerFunc { return requireAdmin(deps.Auth, next) }

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /logout", authHandler.Logout)

	mux.HandleFunc("GET /plans", read(planHandler.ListAll))
	mux.HandleFunc("GET /plans/{region}", read(planHandler.Get))
	mux.HandleFunc("PUT /plans/{region}", write(planHandler.Replace))
	mux.HandleFunc("POST /plans/{region}/groups", write(planHandler.InsertGroup))
	mux.HandleFunc("POST /plans/{region}/routes", write(planHandler.InsertRoute))
	mux.HandleFunc("DELETE /plans/{region}/rows/{id}", write(planHandler.DeleteRow))
	mux.HandleFunc("PUT /plans/{region}/routes/{id}", write(planHandler.UpdateRoute))
	mux.HandleFunc("PUT /plans/{region}/routes/{id}/assignments/{day}", write(planHandler.SetAssignment))
	mux.HandleFunc("PUT /plans/{region}/routes/{id}/weeks/{week}", write(planHandler.SetWeeklyField))
	mux.HandleFunc("POST /plans/{region}/routes/{id}/clear-week", write(planHandler.ClearWeek))

	mux.HandleFunc("GET /technicians", read(identityHandler.ListTechnicians))
	mux.HandleFunc("POST /technicians", write(identityHandler.CreateTechnician))
	mux.HandleFunc("PUT /technicians", write(identityHandler.ReplaceTechnicians))
	mux.HandleFunc("GET /vehicles", read(identityHandler.ListVehicles))
	mux.HandleFunc("POST /vehicles", write(identityHandler.CreateVehicle))
	mux.HandleFunc("PUT /vehicles", write(identityHandler.ReplaceVehicles))

	mux.HandleFunc("GET /reports/weekly", read(reportHandler.Weekly))
	mux.HandleFunc("GET /reports/monthly", read(reportHandler.Monthly))
	mux.HandleFunc("GET /reports/annual", read(reportHandler.Annual))

	mux.HandleFunc("POST /exports/weekly", read(exportHandler.Weekly))
	mux.HandleFunc("POST /exports/monthly", read(exportHandler.Monthly))
	mux.HandleFunc("POST /exports/annual", read(exportHandler.Annual))

	return requestIDMiddleware(loggingMiddleware(mux))
}
