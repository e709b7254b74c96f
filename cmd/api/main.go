package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/presensia/attendance-portal-go/internal/config"
	appHTTP "github.com/presensia/attendance-portal-go/internal/handler/http"
	"github.com/presensia/attendance-portal-go/internal/pkg/cron"
	"github.com/presensia/attendance-portal-go/internal/pkg/database"
	"github.com/presensia/attendance-portal-go/internal/pkg/jwt"
	"github.com/presensia/attendance-portal-go/internal/pkg/storage"
	"github.com/presensia/attendance-portal-go/internal/repository/postgresql"
	attendanceService "github.com/presensia/attendance-portal-go/internal/service/attendance"
	authService "github.com/presensia/attendance-portal-go/internal/service/auth"
	employeeService "github.com/presensia/attendance-portal-go/internal/service/employee"
	"github.com/presensia/attendance-portal-go/internal/service/file"
	reportService "github.com/presensia/attendance-portal-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	transactor := postgresql.NewTransactor(db)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, fileService, transactor, location)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, location)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	fileHandler := appHTTP.NewFileHandler(fileService)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, location)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		employeeHandler,
		reportHandler,
		fileHandler,
		cfg.App.AllowedOrigins,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
