package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/peopleops/hrms-backend-go/internal/config"
	appHTTP "github.com/peopleops/hrms-backend-go/internal/handler/http"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
	"github.com/peopleops/hrms-backend-go/internal/pkg/email"
	"github.com/peopleops/hrms-backend-go/internal/pkg/jwt"
	"github.com/peopleops/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peopleops/hrms-backend-go/internal/service/attendance"
	authService "github.com/peopleops/hrms-backend-go/internal/service/auth"
	leaveService "github.com/peopleops/hrms-backend-go/internal/service/leave"
	payrollService "github.com/peopleops/hrms-backend-go/internal/service/payroll"
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

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(userRepo, auditRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo, auditRepo, emailService)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, attendanceRepo, leaveRepo, employeeRepo, auditRepo, emailService)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
