package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/course-points/internal/config"
	"github.com/fsdevblog/course-points/internal/metrics"
	"github.com/fsdevblog/course-points/internal/repository/pgrepo"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	"github.com/fsdevblog/course-points/internal/service"
	"github.com/fsdevblog/course-points/internal/transport/api"
	"github.com/fsdevblog/course-points/internal/transport/gateway"
	"github.com/fsdevblog/course-points/internal/transport/quizgen"
	"github.com/fsdevblog/course-points/pkg/uow"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Info("Starting app")
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	paymentGateway, gwErr := gateway.New(
		a.Config.GatewayProvider,
		a.Config.GatewayBaseURL,
		a.Config.GatewayKeyID,
		a.Config.GatewayKeySecret,
		a.Config.GatewaySaltIndex,
	)
	if gwErr != nil {
		return fmt.Errorf("app run: %s", gwErr.Error())
	}

	services, sErr := service.Factory(unitOfWork, paymentGateway)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	metrics.Register()

	router := api.New(api.RouterArgs{
		Logger:          a.Logger,
		PurchaseService: services.PurchaseService,
		WalletService:   services.WalletService,
		QuizService:     services.QuizService,
		JWTSecretKey:    []byte(a.Config.JWTSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	processor := quizgen.New(services.QuizService, a.Config.QuizgenAddress, a.Logger).
		SetWorkers(a.Config.QuizgenWorkers).
		SetLimitPerIteration(a.Config.QuizgenJobsPerIter)

	go processor.Run(notifyCtx)

	go a.reconcileStaleOrders(notifyCtx, services.WalletService)

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// reconcileStaleOrders периодически помечает зависшие pending ордера как failed:
// брошенный чекаут не должен вечно висеть в pending.
func (a *App) reconcileStaleOrders(ctx context.Context, wallet *service.WalletService) {
	l := a.Logger.WithFields(logrus.Fields{
		"component": "wallet",
		"module":    "reconciler",
	})

	ticker := time.NewTicker(a.Config.StaleSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Info("Got stop signal, exiting...")
			return
		case <-ticker.C:
			count, err := wallet.ReconcileStaleOrders(ctx, a.Config.StaleOrderTTL)
			if err != nil {
				l.WithError(err).Error("reconcile stale orders")
				continue
			}
			if count > 0 {
				l.WithField("count", count).Info("failed stale orders")
			}
		}
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.CourseRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewCourseRepository(dbtx)
		},
		repoargs.PurchaseRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewPurchaseRepository(dbtx)
		},
		repoargs.PaymentOrderRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewPaymentOrderRepository(dbtx)
		},
		repoargs.QuestionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewQuestionRepository(dbtx)
		},
		repoargs.QuestionJobRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewQuestionJobRepository(dbtx)
		},
		repoargs.TestResultRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTestResultRepository(dbtx)
		},
	}

	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}

	return unitOfWork, nil
}
