package tests

import (
	"os"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

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
	inmemdb "github.com/eduspark/eduspark/storage/database/inmem"
	testutil "github.com/eduspark/eduspark/tests"
)

var (
	conf *core.Config
	db   *inmemdb.DB
	app  echoapi.Server

	usrRepo     user.Repository
	studentRepo student.Repository
	staffRepo   staff.Repository
	attRepo     attendance.Repository
	acadRepo    academics.Repository
	finRepo     finance.Repository

	sessionRecords session.RecordSink

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func TestMain(m *testing.M) {
	conf = testutil.NewConfig()

	// set up DB & repos
	db, _ = inmemdb.Open()
	usrRepo = inmemdb.NewUserRepository(db)
	studentRepo = inmemdb.NewStudentRepository(db)
	staffRepo = inmemdb.NewStaffRepository(db)
	attRepo = inmemdb.NewAttendanceRepository(db)
	acadRepo = inmemdb.NewAcademicsRepository(db)
	finRepo = inmemdb.NewFinanceRepository(db)

	logger := logsvc.NewConsoleLogger(conf)
	logger.Enable(false)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc := user.NewServiceMock(usrRepo, mailSvc, conf)
	staffSvc := staff.NewService(staffRepo)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	sessionRecords = session.NewMemoryRecordSink()

	// set up server
	app = echoapi.NewServer(
		&echoapi.Options{
			DisableReqLogs: true,

			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,

			UserSvc:       usrSvc,
			StudentSvc:    student.NewService(studentRepo),
			StaffSvc:      staffSvc,
			AttendanceSvc: attendance.NewService(attRepo),
			AcademicsSvc:  academics.NewService(acadRepo),
			FinanceSvc:    finance.NewService(finRepo, staffSvc),

			SessionRecords: sessionRecords,
			SessionNotify:  session.NewMemoryNotifier(),
		},
	)

	os.Exit(m.Run())
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
