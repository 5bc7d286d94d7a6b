package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // /debug/pprof
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/eduspark/eduspark/apps/api/echo"
	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/academics"
	"github.com/eduspark/eduspark/core/attendance"
	"github.com/eduspark/eduspark/core/finance"
	"github.com/eduspark/eduspark/core/session"
	"github.com/eduspark/eduspark/core/staff"
	"github.com/eduspark/eduspark/core/student"
	"github.com/eduspark/eduspark/core/user"
	emailsvc "github.com/eduspark/eduspark/services/email"
	logsvc "github.com/eduspark/eduspark/services/logger"
	"github.com/eduspark/eduspark/storage/database"
	sqlxrepos "github.com/eduspark/eduspark/storage/database/sqlx"
	redisstore "github.com/eduspark/eduspark/storage/redis"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(conf)
	} else {
		logger = logsvc.NewRollbarLogger(
			log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
			conf,
		)
	}
	logger.Enable(true)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// set up the session credential store; a reachable Redis is shared by
	// every API instance, otherwise sessions stay process-local
	var (
		sessionRecords session.RecordSink
		sessionNotify  session.Notifier
	)
	if client, rerr := redisstore.NewClient(conf.Redis.URL); rerr == nil {
		sessionRecords = redisstore.NewRecordSink(client)
		sessionNotify = redisstore.NewNotifier(client)
		defer func() { _ = client.Close() }()
	} else if conf.Debug {
		logger.Warn(fmt.Sprintf("redis unavailable, using in-memory sessions: %v", rerr), rerr)
		sessionRecords = session.NewMemoryRecordSink()
		sessionNotify = session.NewMemoryNotifier()
	} else {
		logger.Fatal(fmt.Sprintf("connecting to redis: %v", rerr), rerr)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc, conf)
	staffSvc := staff.NewService(sqlxrepos.NewStaffRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	user.LoadCommonPasswords(logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:    conf.Server.Address(),
			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,
			Shutdown:   func() { shutdown <- syscall.SIGTERM },

			UserSvc:       usrSvc,
			StudentSvc:    student.NewService(sqlxrepos.NewStudentRepository(db)),
			StaffSvc:      staffSvc,
			AttendanceSvc: attendance.NewService(sqlxrepos.NewAttendanceRepository(db)),
			AcademicsSvc:  academics.NewService(sqlxrepos.NewAcademicsRepository(db)),
			FinanceSvc:    finance.NewService(sqlxrepos.NewFinanceRepository(db), staffSvc),

			SessionRecords: sessionRecords,
			SessionNotify:  sessionNotify,
		},
	)

	go server.Start()

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
