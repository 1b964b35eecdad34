package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerStandingsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.GetSeasonLeaderboard)
	mux.HandleFunc("GET /v1/standings/teams", handler.GetTeamStandings)
	mux.HandleFunc("GET /v1/standings/formats", handler.GetFormatSummaries)
	mux.HandleFunc("GET /v1/standings/formats/{format}", handler.GetFormatLeaderboard)
	mux.HandleFunc("GET /v1/standings/classes", handler.ListClasses)
	mux.HandleFunc("GET /v1/standings/classes/{className}", handler.GetClassLeaderboard)
	mux.HandleFunc("GET /v1/standings/competitors/{mecaID}", handler.GetCompetitorStats)
	mux.HandleFunc("GET /v1/finals/{groupID}/results", handler.GetFinalsGroupResults)
	mux.HandleFunc("GET /v1/qualification", handler.GetQualificationByClass)
	mux.HandleFunc("GET /v1/qualification/competitors/{mecaID}", handler.GetCompetitorQualification)
}

func registerResultRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.HandleFunc("GET /v1/events/{eventID}/results", handler.ListEventResults)
	mux.Handle("POST /v1/results", RequireAdminToken(adminToken, http.HandlerFunc(handler.CreateResult)))
	mux.Handle("PATCH /v1/results/{resultID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.UpdateResult)))
	mux.Handle("DELETE /v1/results/{resultID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.DeleteResult)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/links/sync", RequireAdminToken(adminToken, http.HandlerFunc(handler.RunLinkSync)))
	mux.Handle("POST /v1/admin/cache/clear", RequireAdminToken(adminToken, http.HandlerFunc(handler.ClearStandingsCache)))
	mux.Handle("POST /v1/admin/cache/warm", RequireAdminToken(adminToken, http.HandlerFunc(handler.WarmStandingsCache)))
}
