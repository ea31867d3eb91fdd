package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	. "github.com/fsdevblog/course-points/internal/service"
	"github.com/fsdevblog/course-points/internal/service/mocks"
	"github.com/fsdevblog/course-points/pkg/uow"
	uowmocks "github.com/fsdevblog/course-points/pkg/uow/mocks"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockTX        *uowmocks.MockTX
	mockUserRepo  *mocks.MockUserRepository
	mockOrderRepo *mocks.MockPaymentOrderRepository
	mockGateway   *mocks.MockPaymentGateway
	service       *WalletService
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func (s *WalletServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockPaymentOrderRepository(s.mockCtrl)
	s.mockGateway = mocks.NewMockPaymentGateway(s.mockCtrl)

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.PaymentOrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()

	var err error
	s.service, err = NewWalletService(s.mockUOW, s.mockGateway)
	s.Require().NoError(err)
}

func (s *WalletServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *WalletServiceTestSuite) expectTx() {
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(s.T().Context(), s.mockTX)
		},
	)
}

func (s *WalletServiceTestSuite) pendingOrder(userID uuid.UUID, points int64) *domain.PaymentOrder {
	return &domain.PaymentOrder{
		ID:               1,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
		OrderCode:        "order_NXhT2gJ9vK",
		UserID:           userID,
		PointsAmount:     points,
		AmountMinorUnits: 39900,
		Currency:         "INR",
		Status:           domain.PaymentOrderStatusPending,
	}
}

func (s *WalletServiceTestSuite) TestTopUp() {
	userID := uuid.New()
	user := &domain.User{ID: userID, Points: 10}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)

	// 500 баллов стоят 399 рупий; сумма ордера считается сервером в пайсах.
	s.mockGateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args GatewayOrderArgs) (*GatewayOrder, error) {
			s.Equal(int64(39900), args.AmountMinorUnits)
			s.Equal("INR", args.Currency)
			s.NotEmpty(args.Receipt)
			return &GatewayOrder{
				OrderCode:        "order_NXhT2gJ9vK",
				AmountMinorUnits: args.AmountMinorUnits,
				Currency:         args.Currency,
			}, nil
		})

	s.mockOrderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.PaymentOrderCreate) (*domain.PaymentOrder, error) {
			s.Equal(userID, args.UserID)
			s.Equal(int64(500), args.PointsAmount)
			s.Equal(int64(39900), args.AmountMinorUnits)
			return s.pendingOrder(userID, args.PointsAmount), nil
		})

	s.mockGateway.EXPECT().KeyID().Return("rzp_test_4UzYxLFzV0")

	handle, err := s.service.TopUp(s.T().Context(), userID, 500)
	s.Require().NoError(err)
	s.Equal("order_NXhT2gJ9vK", handle.OrderCode)
	s.Equal(int64(39900), handle.AmountMinorUnits)
	s.Equal("INR", handle.Currency)
	s.Equal("rzp_test_4UzYxLFzV0", handle.KeyID)
}

func (s *WalletServiceTestSuite) TestTopUp_UnknownPackage() {
	userID := uuid.New()

	// произвольное количество баллов не продается, только пакеты из каталога.
	handle, err := s.service.TopUp(s.T().Context(), userID, 250)
	s.Require().Error(err)

	var unknownPackage *domain.UnknownPointsPackageError
	s.Require().ErrorAs(err, &unknownPackage)
	s.Require().ErrorIs(err, domain.ErrInvalidInput)
	s.Equal(int64(250), unknownPackage.PointsAmount)
	s.Nil(handle)
}

func (s *WalletServiceTestSuite) TestTopUp_GatewayUnavailable() {
	userID := uuid.New()
	user := &domain.User{ID: userID}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
	s.mockGateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	handle, err := s.service.TopUp(s.T().Context(), userID, 100)
	s.Require().ErrorIs(err, domain.ErrGateway)
	s.Nil(handle)
}

func (s *WalletServiceTestSuite) TestConfirmTopUp() {
	userID := uuid.New()
	order := s.pendingOrder(userID, 500)
	verified := *order
	verified.Status = domain.PaymentOrderStatusVerified

	s.mockOrderRepo.EXPECT().FindByOrderCode(gomock.Any(), order.OrderCode).Return(order, nil)
	s.mockGateway.EXPECT().
		VerifySignature(order.OrderCode, "pay_29QQoUBi66xm2f", "deadbeef").
		Return(true)

	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.PaymentOrderRepoName)).
		Return(s.mockOrderRepo, nil)
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil)

	s.mockOrderRepo.EXPECT().
		UpdateStatusFromPending(gomock.Any(), order.OrderCode, domain.PaymentOrderStatusVerified).
		Return(&verified, nil)
	// начисление - инкремент: 40 уже на балансе + 500 из ордера.
	s.mockUserRepo.EXPECT().CreditPoints(gomock.Any(), userID, order.PointsAmount).
		Return(int64(540), nil)

	s.expectTx()

	balance, err := s.service.ConfirmTopUp(s.T().Context(), ConfirmTopUpArgs{
		UserID:    userID,
		OrderCode: order.OrderCode,
		PaymentID: "pay_29QQoUBi66xm2f",
		Signature: "deadbeef",
	})
	s.Require().NoError(err)
	s.Equal(int64(540), balance)
}

func (s *WalletServiceTestSuite) TestConfirmTopUp_InvalidSignature() {
	userID := uuid.New()
	order := s.pendingOrder(userID, 500)
	failed := *order
	failed.Status = domain.PaymentOrderStatusFailed

	s.mockOrderRepo.EXPECT().FindByOrderCode(gomock.Any(), order.OrderCode).Return(order, nil)
	s.mockGateway.EXPECT().
		VerifySignature(order.OrderCode, "pay_29QQoUBi66xm2f", "tampered").
		Return(false)
	s.mockOrderRepo.EXPECT().
		UpdateStatusFromPending(gomock.Any(), order.OrderCode, domain.PaymentOrderStatusFailed).
		Return(&failed, nil)

	// баланс не трогается: CreditPoints не настроен, контроллер упадет при вызове.
	balance, err := s.service.ConfirmTopUp(s.T().Context(), ConfirmTopUpArgs{
		UserID:    userID,
		OrderCode: order.OrderCode,
		PaymentID: "pay_29QQoUBi66xm2f",
		Signature: "tampered",
	})
	s.Require().ErrorIs(err, domain.ErrInvalidSignature)
	s.Zero(balance)
}

func (s *WalletServiceTestSuite) TestConfirmTopUp_ForeignOrder() {
	owner := uuid.New()
	stranger := uuid.New()
	order := s.pendingOrder(owner, 500)

	s.mockOrderRepo.EXPECT().FindByOrderCode(gomock.Any(), order.OrderCode).Return(order, nil)

	// чужой ордер выглядит как несуществующий, чтобы не раскрывать его наличие.
	balance, err := s.service.ConfirmTopUp(s.T().Context(), ConfirmTopUpArgs{
		UserID:    stranger,
		OrderCode: order.OrderCode,
		PaymentID: "pay_29QQoUBi66xm2f",
		Signature: "deadbeef",
	})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
	s.Zero(balance)
}

func (s *WalletServiceTestSuite) TestConfirmTopUp_AlreadyConfirmed() {
	userID := uuid.New()
	order := s.pendingOrder(userID, 500)

	s.mockOrderRepo.EXPECT().FindByOrderCode(gomock.Any(), order.OrderCode).Return(order, nil)
	s.mockGateway.EXPECT().
		VerifySignature(order.OrderCode, "pay_29QQoUBi66xm2f", "deadbeef").
		Return(true)

	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.PaymentOrderRepoName)).
		Return(s.mockOrderRepo, nil)
	// ордер уже не pending: повторный confirm не начисляет второй раз.
	s.mockOrderRepo.EXPECT().
		UpdateStatusFromPending(gomock.Any(), order.OrderCode, domain.PaymentOrderStatusVerified).
		Return(nil, domain.ErrRecordNotFound)

	s.expectTx()

	balance, err := s.service.ConfirmTopUp(s.T().Context(), ConfirmTopUpArgs{
		UserID:    userID,
		OrderCode: order.OrderCode,
		PaymentID: "pay_29QQoUBi66xm2f",
		Signature: "deadbeef",
	})
	s.Require().ErrorIs(err, domain.ErrOrderNotPending)
	s.Zero(balance)
}

// Два последовательных подтвержденных пополнения складываются: 500 + 100 + 500 = 1100,
// второе не перезаписывает первое.
func (s *WalletServiceTestSuite) TestConfirmTopUp_SequentialAccumulate() {
	userID := uuid.New()
	balance := int64(500)

	credit := func(_ context.Context, _ uuid.UUID, amount int64) (int64, error) {
		balance += amount
		return balance, nil
	}

	first := s.pendingOrder(userID, 100)
	first.OrderCode = "order_first"
	second := s.pendingOrder(userID, 500)
	second.OrderCode = "order_second"

	for _, order := range []*domain.PaymentOrder{first, second} {
		verified := *order
		verified.Status = domain.PaymentOrderStatusVerified

		s.mockOrderRepo.EXPECT().FindByOrderCode(gomock.Any(), order.OrderCode).Return(order, nil)
		s.mockGateway.EXPECT().
			VerifySignature(order.OrderCode, "pay_29QQoUBi66xm2f", "deadbeef").
			Return(true)
		s.mockTX.EXPECT().
			Get(uow.RepositoryName(repoargs.PaymentOrderRepoName)).
			Return(s.mockOrderRepo, nil)
		s.mockTX.EXPECT().
			Get(uow.RepositoryName(repoargs.UserRepoName)).
			Return(s.mockUserRepo, nil)
		s.mockOrderRepo.EXPECT().
			UpdateStatusFromPending(gomock.Any(), order.OrderCode, domain.PaymentOrderStatusVerified).
			Return(&verified, nil)
		s.mockUserRepo.EXPECT().CreditPoints(gomock.Any(), userID, order.PointsAmount).
			DoAndReturn(credit)
		s.expectTx()
	}

	firstBalance, firstErr := s.service.ConfirmTopUp(s.T().Context(), ConfirmTopUpArgs{
		UserID:    userID,
		OrderCode: first.OrderCode,
		PaymentID: "pay_29QQoUBi66xm2f",
		Signature: "deadbeef",
	})
	s.Require().NoError(firstErr)
	s.Equal(int64(600), firstBalance)

	secondBalance, secondErr := s.service.ConfirmTopUp(s.T().Context(), ConfirmTopUpArgs{
		UserID:    userID,
		OrderCode: second.OrderCode,
		PaymentID: "pay_29QQoUBi66xm2f",
		Signature: "deadbeef",
	})
	s.Require().NoError(secondErr)
	s.Equal(int64(1100), secondBalance)
}

func (s *WalletServiceTestSuite) TestReconcileStaleOrders() {
	s.mockOrderRepo.EXPECT().FailStale(gomock.Any(), 30*time.Minute).Return(int64(3), nil)

	count, err := s.service.ReconcileStaleOrders(s.T().Context(), 30*time.Minute)
	s.Require().NoError(err)
	s.Equal(int64(3), count)
}
