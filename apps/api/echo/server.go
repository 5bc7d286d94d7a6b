package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/academics"
	"github.com/eduspark/eduspark/core/attendance"
	"github.com/eduspark/eduspark/core/finance"
	"github.com/eduspark/eduspark/core/session"
	"github.com/eduspark/eduspark/core/staff"
	"github.com/eduspark/eduspark/core/student"
	"github.com/eduspark/eduspark/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		// Shutdown is signaled when an unrecoverable error is caught.
		Shutdown func()

		UserSvc       user.Service
		StudentSvc    *student.Service
		StaffSvc      *staff.Service
		AttendanceSvc *attendance.Service
		AcademicsSvc  *academics.Service
		FinanceSvc    *finance.Service

		SessionRecords session.RecordSink
		SessionNotify  session.Notifier
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	appJWTConfig.SigningKey = opts.Conf.SecretKey
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.Shutdown)
	s.app.Debug = conf.Debug

	sessions := newSessionFactory(conf, s.opts.SessionRecords, s.opts.SessionNotify, s.opts.Logger)

	registerPages(s.app, conf, s.opts.Logger, sessions, s.opts.SessionNotify, s.opts.UserSvc)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, conf, s.opts.UserSvc, sessions, s.opts.Validate, s.opts.Translator)
	registerStudentAPI(v1, jwt, s.opts.StudentSvc, s.opts.Validate, s.opts.Translator)
	registerTeacherAPI(v1, jwt, s.opts.UserSvc, s.opts.Validate)
	registerStaffAPI(v1, jwt, s.opts.StaffSvc, s.opts.Validate)
	registerAttendanceAPI(v1, jwt, s.opts.AttendanceSvc, s.opts.Validate)
	registerAcademicsAPI(v1, jwt, s.opts.AcademicsSvc, s.opts.Validate)
	registerFinanceAPI(v1, jwt, s.opts.FinanceSvc, s.opts.Validate)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
