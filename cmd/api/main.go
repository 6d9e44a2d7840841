package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "microfin-backend/internal/adapter/http"
	"microfin-backend/internal/adapter/middleware"
	"microfin-backend/internal/adapter/repository/mysql"
	"microfin-backend/internal/config"
	"microfin-backend/internal/infrastructure/cache"
	"microfin-backend/internal/infrastructure/db"
	loanuc "microfin-backend/internal/usecase/loan"
	repayuc "microfin-backend/internal/usecase/repayment"
	reportuc "microfin-backend/internal/usecase/report"
	savingsuc "microfin-backend/internal/usecase/savings"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var (
		gdb *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		gdb, err = db.OpenSQLite(cfg.SQLitePath)
	default:
		gdb, err = db.OpenMySQL(cfg.MySQLDSN())
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	repayRepo := mysql.NewRepaymentRepository(gdb)
	savingsRepo := mysql.NewSavingsRepository(gdb)
	identityRepo := mysql.NewIdentityRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	loanUC := loanuc.NewUsecase(loanRepo, identityRepo)
	repayUC := repayuc.NewUsecase(loanRepo, repayRepo, uow)
	savingsUC := savingsuc.NewUsecase(savingsRepo, uow)
	reportUC := reportuc.NewUsecase(loanRepo, repayRepo)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	repayH := httpadp.NewRepaymentHandler(repayUC)
	savingsH := httpadp.NewSavingsHandler(savingsUC)
	reportH := httpadp.NewReportHandler(reportUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.POST("/loans/apply", loanH.Apply)
	e.GET("/loans/config", loanH.Configs)
	e.GET("/loans/all", loanH.List)
	e.GET("/loans/user/:user_id", loanH.ListByUser)
	e.GET("/loans/:loan_id", loanH.Get)
	e.PUT("/loans/update-status/:loan_id", loanH.UpdateStatus)
	e.PUT("/loans/edit/:loan_id", loanH.Edit)

	e.POST("/repayments/add", repayH.Record)
	e.GET("/repayments/overdue", repayH.Overdue)
	e.GET("/repayments/loan/:loan_id", repayH.Schedule)
	e.GET("/repayments/loan/:loan_id/history", repayH.ListByLoan)
	e.GET("/repayments/user/:user_id", repayH.ListByUser)

	e.POST("/savings/add", savingsH.Record)
	e.PUT("/savings/update/:saving_id", savingsH.Update)
	e.GET("/savings/balance/:user_id", savingsH.Balance)
	e.GET("/savings/user/:user_id", savingsH.History)

	e.GET("/reports/portfolio", reportH.Portfolio)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
