//go:build integration
// +build integration

package integration

import (
	"Staffline/internal/clock"
	"Staffline/internal/config"
	"Staffline/internal/database"
	"Staffline/internal/mediator"
	"Staffline/internal/middlewares"
	"Staffline/internal/repositories"
	"Staffline/internal/services"
	"Staffline/internal/setup"
	"Staffline/utils"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type recordingMailService struct {
	mu   sync.Mutex
	sent []sentMail
}

func (s *recordingMailService) Send(_ context.Context, to string, subject string, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (s *recordingMailService) LastCode(to string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.sent) - 1; i >= 0; i-- {
		if s.sent[i].To == to {
			return strings.TrimPrefix(s.sent[i].Body, "Your verification code is: ")
		}
	}
	return ""
}

type harness struct {
	m      mediator.Mediator
	scope  *ioc.DependencyProvider
	ctx    context.Context
	mails  *recordingMailService
	dbName string
}

func postgresConfig() config.PostgresConfig {
	return config.PostgresConfig{
		Database: "postgres",
		Host:     "localhost",
		Port:     5732,
		Username: "user",
		Password: "password",
		SslMode:  "disable",
	}
}

func (h *harness) Close() {
	utils.PanicOnError(h.scope.Close, "closing scope")

	db, err := database.ConnectToDatabase(postgresConfig())
	if err != nil {
		panic(err)
	}

	_, err = db.Exec(fmt.Sprintf("drop database %s;", h.dbName))
	if err != nil {
		panic(err)
	}

	utils.PanicOnError(db.Close, "closing initial db connection in test")
}

func (h *harness) Ctx() context.Context {
	return h.ctx
}

func (h *harness) Mediator() mediator.Mediator {
	return h.m
}

func (h *harness) Employees() repositories.EmployeeRepository {
	return ioc.GetDependency[repositories.EmployeeRepository](h.scope)
}

func newIntegrationTestHarness() *harness {
	ctx := context.Background()
	dc := ioc.NewDependencyCollection()
	c, _ := clock.NewMockServiceNow()

	dbName := strings.ReplaceAll("staffline_test_"+uuid.New().String(), "-", "")
	pc := postgresConfig()

	db, err := database.ConnectToDatabase(pc)
	if err != nil {
		panic(err)
	}
	_, err = db.Exec(fmt.Sprintf("create database %s;", dbName))
	if err != nil {
		panic(err)
	}
	utils.PanicOnError(db.Close, "closing initial db connection in test")

	pc.Database = dbName
	migrationDb, err := database.ConnectToDatabase(pc)
	if err != nil {
		panic(err)
	}
	err = database.Migrate(ctx, migrationDb)
	if err != nil {
		panic(fmt.Errorf("failed to create test database: %w", err))
	}
	utils.PanicOnError(migrationDb.Close, "closing migration db connection in test")

	mails := &recordingMailService{}
	templateService, err := services.NewTemplateService()
	if err != nil {
		panic(err)
	}

	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) clock.Service {
		return c
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) utils.PasswordHasher {
		return utils.NewBcryptHasher()
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) services.CodeGenerator {
		return services.NewCodeGenerator()
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) services.TemplateService {
		return templateService
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) services.MailService {
		return mails
	})

	err = setup.Repositories(dc, config.DatabaseConfig{
		Mode:     config.DatabaseModePostgres,
		Postgres: pc,
	})
	if err != nil {
		panic(err)
	}
	setup.Mediator(dc)

	scope := dc.BuildProvider()
	m := ioc.GetDependency[mediator.Mediator](scope)

	return &harness{
		m:      m,
		scope:  scope,
		ctx:    middlewares.ContextWithScope(ctx, scope),
		mails:  mails,
		dbName: dbName,
	}
}
