package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/daftar-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/daftar-hr/attendance-backend-go/internal/handler/http"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/cache"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/database"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/daftar-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/daftar-hr/attendance-backend-go/internal/service/attendance"
	authService "github.com/daftar-hr/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/daftar-hr/attendance-backend-go/internal/service/dashboard"
	reportService "github.com/daftar-hr/attendance-backend-go/internal/service/report"
	userService "github.com/daftar-hr/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	redisCache := cache.New(cfg.Redis.Addr)
	if !redisCache.Healthy(context.Background()) {
		slog.Warn("Redis unreachable, dashboard caching disabled", "addr", cfg.Redis.Addr)
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	dailyReportRepo := postgresql.NewDailyReportRepository(db)
	monthlyReportRepo := postgresql.NewMonthlyReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	txRunner := postgresql.NewTxRunner(db)
	systemClock := clock.System{}

	authSvc := authService.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, systemClock, redisCache)
	reportSvc := reportService.NewReportService(
		dailyReportRepo,
		monthlyReportRepo,
		userRepo,
		attendanceRepo,
		txRunner,
		systemClock,
		cfg.Report.CatchUpDays,
	)
	dashboardSvc := dashboardService.NewDashboardService(userRepo, attendanceRepo, systemClock, redisCache)
	userSvc := userService.NewUserService(userRepo, dailyReportRepo, monthlyReportRepo, txRunner)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		reportHandler,
		dashboardHandler,
		userHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewReportJobs(reportSvc, systemClock).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
