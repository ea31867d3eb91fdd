package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/metrics"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	"github.com/fsdevblog/course-points/pkg/uow"
)

type PurchaseService struct {
	uow          uow.UOW
	purchaseRepo PurchaseRepository
	courseRepo   CourseRepository
	userRepo     UserRepository
}

func NewPurchaseService(u uow.UOW) (*PurchaseService, error) {
	purchaseRepo, purchaseRepoErr := uow.GetRepositoryAs[PurchaseRepository](
		u, uow.RepositoryName(repoargs.PurchaseRepoName))
	if purchaseRepoErr != nil {
		return nil, purchaseRepoErr
	}
	courseRepo, courseRepoErr := uow.GetRepositoryAs[CourseRepository](u, uow.RepositoryName(repoargs.CourseRepoName))
	if courseRepoErr != nil {
		return nil, courseRepoErr
	}
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &PurchaseService{
		uow:          u,
		purchaseRepo: purchaseRepo,
		courseRepo:   courseRepo,
		userRepo:     userRepo,
	}, nil
}

type PurchaseResult struct {
	Purchase *domain.Purchase
	Balance  int64
}

// Purchase проводит покупку курса за баллы.
//
// Предусловия проверяются по порядку: курс существует, курс еще не куплен
// (*domain.AlreadyOwnedError), профиль юзера доступен (domain.ErrProfileUnavailable),
// баллов хватает (domain.ErrNotEnoughPoints).
//
// Запись о покупке, списание баллов и постановка курса в очередь генерации вопросов
// выполняются одной транзакцией. Списание - условный атомарный апдейт, поэтому два
// конкурентных вызова не могут увести баланс в минус: проигравший получит
// ErrNotEnoughPoints или AlreadyOwnedError, но не частично закоммиченное состояние.
func (s *PurchaseService) Purchase(ctx context.Context, userID, courseID uuid.UUID) (*PurchaseResult, error) {
	course, courseErr := s.courseRepo.FindByID(ctx, courseID)
	if courseErr != nil {
		return nil, fmt.Errorf("purchasing course: %w", courseErr)
	}

	if existing, existsErr := s.purchaseRepo.FindByUserAndCourse(ctx, userID, courseID); existsErr == nil {
		return nil, domain.NewAlreadyOwnedError(existing)
	} else if !errors.Is(existsErr, domain.ErrRecordNotFound) {
		return nil, fmt.Errorf("purchasing course: %w", existsErr)
	}

	user, userErr := s.userRepo.FindByID(ctx, userID)
	if userErr != nil {
		if errors.Is(userErr, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("purchasing course: %w", domain.ErrProfileUnavailable)
		}
		return nil, fmt.Errorf("purchasing course: %w", userErr)
	}

	if user.Points < course.PointsPrice {
		return nil, fmt.Errorf("purchasing course: %w", domain.ErrNotEnoughPoints)
	}

	var result *PurchaseResult
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		purchase, purchaseErr := s.createPurchase(c, tx, userID, course)
		if purchaseErr != nil {
			return purchaseErr
		}

		balance, debitErr := s.debitPoints(c, tx, userID, course.PointsPrice)
		if debitErr != nil {
			return debitErr
		}

		jobRepo, jobRepoErr := uow.GetAs[QuestionJobRepository](
			tx, uow.RepositoryName(repoargs.QuestionJobRepoName))
		if jobRepoErr != nil {
			return jobRepoErr //nolint:wrapcheck
		}
		if enqueueErr := jobRepo.Enqueue(c, course.ID); enqueueErr != nil {
			return enqueueErr //nolint:wrapcheck
		}

		result = &PurchaseResult{Purchase: purchase, Balance: balance}
		return nil
	})

	if txErr != nil {
		var alreadyOwned *domain.AlreadyOwnedError
		if errors.As(txErr, &alreadyOwned) ||
			errors.Is(txErr, domain.ErrNotEnoughPoints) ||
			errors.Is(txErr, domain.ErrProfileUnavailable) {
			return nil, txErr
		}
		return nil, fmt.Errorf("purchasing course: %w", txErr)
	}

	metrics.CoursePurchases.Inc()
	return result, nil
}

// createPurchase вставляет запись о покупке внутри транзакции. Конфликт уникального ключа
// (user_id, course_id) означает, что конкурентная покупка успела раньше: возвращаем
// *domain.AlreadyOwnedError с существующей записью.
func (s *PurchaseService) createPurchase(
	ctx context.Context,
	tx uow.TX,
	userID uuid.UUID,
	course *domain.Course,
) (*domain.Purchase, error) {
	purchaseRepo, repoErr := uow.GetAs[PurchaseRepository](tx, uow.RepositoryName(repoargs.PurchaseRepoName))
	if repoErr != nil {
		return nil, repoErr //nolint:wrapcheck
	}

	purchase, createErr := purchaseRepo.Create(ctx, repoargs.PurchaseCreate{
		UserID:      userID,
		CourseID:    course.ID,
		PointsSpent: course.PointsPrice,
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			existing, existingErr := s.purchaseRepo.FindByUserAndCourse(ctx, userID, course.ID)
			if existingErr != nil {
				return nil, fmt.Errorf("fetching duplicate purchase: %w", existingErr)
			}
			return nil, domain.NewAlreadyOwnedError(existing)
		}
		return nil, createErr //nolint:wrapcheck
	}
	return purchase, nil
}

// debitPoints списывает стоимость курса. Репозиторий возвращает ErrRecordNotFound и когда
// юзера нет, и когда баллов не хватает; различаем повторным чтением профиля в той же транзакции.
func (s *PurchaseService) debitPoints(
	ctx context.Context,
	tx uow.TX,
	userID uuid.UUID,
	amount int64,
) (int64, error) {
	userRepo, repoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if repoErr != nil {
		return 0, repoErr //nolint:wrapcheck
	}

	balance, debitErr := userRepo.DebitPoints(ctx, userID, amount)
	if debitErr != nil {
		if errors.Is(debitErr, domain.ErrRecordNotFound) {
			if _, findErr := userRepo.FindByID(ctx, userID); errors.Is(findErr, domain.ErrRecordNotFound) {
				return 0, domain.ErrProfileUnavailable
			}
			return 0, domain.ErrNotEnoughPoints
		}
		return 0, debitErr //nolint:wrapcheck
	}
	return balance, nil
}

// PurchasedCourses возвращает курсы, купленные юзером, отсортированные по дате покупки по убыванию.
func (s *PurchaseService) PurchasedCourses(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	courses, err := s.courseRepo.GetPurchasedByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return courses, nil
}

// Courses возвращает каталог курсов.
func (s *PurchaseService) Courses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return courses, nil
}

// CourseByID возвращает курс или domain.ErrRecordNotFound.
func (s *PurchaseService) CourseByID(ctx context.Context, courseID uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return course, nil
}
