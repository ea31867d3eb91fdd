package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/course-points/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// GatewayTimeout запас на поход сервиса к платежному шлюзу с его ретраями.
	GatewayTimeout = 35 * time.Second
)

const (
	RouteGroup        = "/api"
	PurchasesRoute    = "/purchases"
	CoursesRoute      = "/courses"
	CourseRoute       = "/courses/:id"
	CourseTestRoute   = "/courses/:id/test"
	BalanceRoute      = "/balance"
	TopUpRoute        = "/wallet/topup"
	ConfirmTopUpRoute = "/wallet/confirm"
	WalletOrdersRoute = "/wallet/orders"
	TestResultsRoute  = "/test-results"
	MetricsRoute      = "/metrics"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	PurchaseService PurchaseServicer
	WalletService   WalletServicer
	QuizService     QuizServicer
	JWTSecretKey    []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	purchasesHandler := NewPurchasesHandler(args.PurchaseService)
	walletHandler := NewWalletHandler(args.WalletService)
	quizHandler := NewQuizHandler(args.QuizService)

	r.GET(MetricsRoute, gin.WrapH(promhttp.Handler()))

	api := r.Group(RouteGroup)
	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// все роуты группы требуют авторизованного пользователя.
	api.POST(PurchasesRoute, purchasesHandler.Create)
	api.GET(PurchasesRoute, purchasesHandler.Index)

	api.GET(CoursesRoute, purchasesHandler.Courses)
	api.GET(CourseRoute, purchasesHandler.Course)

	api.GET(BalanceRoute, walletHandler.Balance)
	api.POST(TopUpRoute, walletHandler.TopUp)
	api.POST(ConfirmTopUpRoute, walletHandler.Confirm)
	api.GET(WalletOrdersRoute, walletHandler.Orders)

	api.GET(CourseTestRoute, quizHandler.Questions)
	api.POST(CourseTestRoute, quizHandler.Submit)
	api.GET(TestResultsRoute, quizHandler.Results)
	return r
}
