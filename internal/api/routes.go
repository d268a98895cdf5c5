package api

func (s *APIServer) setupRoutes() {
	authMiddleware := s.bearerTokenAuthMiddleware
	logMiddleware := s.loggingMiddleware

	// The dashboard and liveness probe are always open.
	s.router.Handle("GET /", s.handleDashboard())
	s.router.Handle("GET /health", s.handleHealth())

	s.router.Handle("GET /api/stats", logMiddleware(authMiddleware(s.handleStats())))
	s.router.Handle("GET /api/stats/stream", authMiddleware(s.handleStatsStream()))

	s.router.Handle("GET /api/logs", logMiddleware(authMiddleware(s.handleLogs())))
	s.router.Handle("GET /api/logs/stream", authMiddleware(s.handleLogsStream()))

	s.router.Handle("GET /api/history", logMiddleware(authMiddleware(s.handleHistory())))

	s.router.Handle("GET /api/version", authMiddleware(s.handleVersion()))
}
