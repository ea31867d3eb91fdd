package service

import (
	"fmt"

	"github.com/fsdevblog/course-points/pkg/uow"
)

type AppServices struct {
	PurchaseService *PurchaseService
	WalletService   *WalletService
	QuizService     *QuizService
}

func Factory(unitOfWork uow.UOW, gateway PaymentGateway) (*AppServices, error) {
	purchaseService, purchaseServiceErr := NewPurchaseService(unitOfWork)
	if purchaseServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", purchaseServiceErr.Error())
	}

	walletService, walletServiceErr := NewWalletService(unitOfWork, gateway)
	if walletServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", walletServiceErr.Error())
	}

	quizService, quizServiceErr := NewQuizService(unitOfWork)
	if quizServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", quizServiceErr.Error())
	}

	return &AppServices{
		PurchaseService: purchaseService,
		WalletService:   walletService,
		QuizService:     quizService,
	}, nil
}
