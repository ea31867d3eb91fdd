package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/metrics"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	"github.com/fsdevblog/course-points/pkg/uow"
)

const topUpCurrency = "INR"

// pointsPackages серверный каталог пакетов пополнения: количество баллов -> цена в рупиях.
// Сумма ордера всегда берется отсюда, присланная клиентом цена игнорируется.
var pointsPackages = map[int64]decimal.Decimal{
	100:  decimal.NewFromInt(99),
	500:  decimal.NewFromInt(399),
	1000: decimal.NewFromInt(699),
}

const minorUnitFactor = 100

type WalletService struct {
	uow       uow.UOW
	userRepo  UserRepository
	orderRepo PaymentOrderRepository
	gateway   PaymentGateway
}

func NewWalletService(u uow.UOW, gateway PaymentGateway) (*WalletService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	orderRepo, orderRepoErr := uow.GetRepositoryAs[PaymentOrderRepository](
		u, uow.RepositoryName(repoargs.PaymentOrderRepoName))
	if orderRepoErr != nil {
		return nil, orderRepoErr
	}
	return &WalletService{
		uow:       u,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
	}, nil
}

// Balance возвращает профиль юзера с текущим балансом баллов.
func (s *WalletService) Balance(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("getting balance: %w", domain.ErrProfileUnavailable)
		}
		return nil, fmt.Errorf("getting balance: %w", err)
	}
	return user, nil
}

type CheckoutHandle struct {
	OrderCode        string
	AmountMinorUnits int64
	Currency         string
	KeyID            string
}

// TopUp создает ордер пополнения баланса: цена пакета конвертируется в минимальные
// единицы валюты на сервере, ордер создается у платежного шлюза и сохраняется в статусе
// pending. Возвращает хэндл для клиентского чекаута.
//
// Неизвестный пакет -> *domain.UnknownPointsPackageError. Недоступный шлюз ->
// domain.ErrGateway (вызывающий может повторить позже).
func (s *WalletService) TopUp(ctx context.Context, userID uuid.UUID, pointsAmount int64) (*CheckoutHandle, error) {
	price, ok := pointsPackages[pointsAmount]
	if !ok {
		return nil, &domain.UnknownPointsPackageError{PointsAmount: pointsAmount, UserID: userID}
	}

	if _, userErr := s.userRepo.FindByID(ctx, userID); userErr != nil {
		if errors.Is(userErr, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("topping up: %w", domain.ErrProfileUnavailable)
		}
		return nil, fmt.Errorf("topping up: %w", userErr)
	}

	amountMinorUnits := price.Mul(decimal.NewFromInt(minorUnitFactor)).IntPart()

	gwOrder, gwErr := s.gateway.CreateOrder(ctx, GatewayOrderArgs{
		AmountMinorUnits: amountMinorUnits,
		Currency:         topUpCurrency,
		Receipt:          fmt.Sprintf("topup_%d", time.Now().UnixMilli()),
	})
	if gwErr != nil {
		return nil, fmt.Errorf("topping up: %w: %s", domain.ErrGateway, gwErr.Error())
	}

	order, createErr := s.orderRepo.Create(ctx, repoargs.PaymentOrderCreate{
		OrderCode:        gwOrder.OrderCode,
		UserID:           userID,
		PointsAmount:     pointsAmount,
		AmountMinorUnits: gwOrder.AmountMinorUnits,
		Currency:         gwOrder.Currency,
	})
	if createErr != nil {
		return nil, fmt.Errorf("topping up: %w", createErr)
	}

	return &CheckoutHandle{
		OrderCode:        order.OrderCode,
		AmountMinorUnits: order.AmountMinorUnits,
		Currency:         order.Currency,
		KeyID:            s.gateway.KeyID(),
	}, nil
}

type ConfirmTopUpArgs struct {
	UserID    uuid.UUID
	OrderCode string
	PaymentID string
	Signature string
}

// ConfirmTopUp завершает пополнение после редиректа от шлюза.
//
// Подпись проверяется до любых изменений баланса. Неверная подпись -> ордер помечается
// failed, баланс не трогается, возвращается domain.ErrInvalidSignature (не ретраится,
// вызывающий обязан залогировать как возможную попытку подделки).
//
// При верной подписи перевод ордера pending -> verified и начисление баллов выполняются
// одной транзакцией. Ордер не в pending (повторный confirm, брошенный чекаут после
// реконсиляции) -> domain.ErrOrderNotPending. Начисление - инкремент, не перезапись:
// два последовательных пополнения складываются.
func (s *WalletService) ConfirmTopUp(ctx context.Context, args ConfirmTopUpArgs) (int64, error) {
	order, findErr := s.orderRepo.FindByOrderCode(ctx, args.OrderCode)
	if findErr != nil {
		return 0, fmt.Errorf("confirming top-up: %w", findErr)
	}
	// чужой ордер неотличим от несуществующего.
	if order.UserID != args.UserID {
		return 0, fmt.Errorf("confirming top-up: %w", domain.ErrRecordNotFound)
	}

	if !s.gateway.VerifySignature(args.OrderCode, args.PaymentID, args.Signature) {
		metrics.TopUpsRejected.Inc()
		if _, failErr := s.orderRepo.UpdateStatusFromPending(
			ctx, args.OrderCode, domain.PaymentOrderStatusFailed,
		); failErr != nil && !errors.Is(failErr, domain.ErrRecordNotFound) {
			return 0, fmt.Errorf("confirming top-up: %w", failErr)
		}
		return 0, fmt.Errorf("confirming top-up of order `%s`: %w", args.OrderCode, domain.ErrInvalidSignature)
	}

	var balance int64
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[PaymentOrderRepository](
			tx, uow.RepositoryName(repoargs.PaymentOrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		verified, verifyErr := orderRepo.UpdateStatusFromPending(c, args.OrderCode, domain.PaymentOrderStatusVerified)
		if verifyErr != nil {
			if errors.Is(verifyErr, domain.ErrRecordNotFound) {
				return domain.ErrOrderNotPending
			}
			return verifyErr //nolint:wrapcheck
		}

		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		var creditErr error
		balance, creditErr = userRepo.CreditPoints(c, verified.UserID, verified.PointsAmount)
		if creditErr != nil {
			if errors.Is(creditErr, domain.ErrRecordNotFound) {
				return domain.ErrProfileUnavailable
			}
			return creditErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, domain.ErrOrderNotPending) || errors.Is(txErr, domain.ErrProfileUnavailable) {
			return 0, txErr
		}
		return 0, fmt.Errorf("confirming top-up: %w", txErr)
	}

	metrics.TopUpsConfirmed.Inc()
	return balance, nil
}

// Orders возвращает платежные ордера юзера, отсортированные по дате по убыванию.
func (s *WalletService) Orders(ctx context.Context, userID uuid.UUID) ([]domain.PaymentOrder, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// ReconcileStaleOrders помечает зависшие pending ордера как failed. Вызывается
// периодически из фонового цикла приложения.
func (s *WalletService) ReconcileStaleOrders(ctx context.Context, olderThan time.Duration) (int64, error) {
	count, err := s.orderRepo.FailStale(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("reconciling stale orders: %w", err)
	}
	return count, nil
}
