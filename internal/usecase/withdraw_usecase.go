package usecase

import (
	"context"
	"fmt"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
	"dukkan/pkg/metrics"
	"dukkan/pkg/utils"
)

type WithdrawUseCase struct {
	withdrawRepo repository.WithdrawRepository
	userRepo     repository.UserRepository
	ledger       repository.Ledger
	notifier     Notifier
}

func NewWithdrawUseCase(
	withdrawRepo repository.WithdrawRepository,
	userRepo repository.UserRepository,
	ledger repository.Ledger,
	notifier Notifier,
) *WithdrawUseCase {
	return &WithdrawUseCase{
		withdrawRepo: withdrawRepo,
		userRepo:     userRepo,
		ledger:       ledger,
		notifier:     notifier,
	}
}

type ClaimWithdrawInput struct {
	Method         string `json:"method" validate:"required"`
	AccountDetails string `json:"accountDetails"`
	// Amount is only checked against the computed total.
	Amount *float64 `json:"amount" validate:"omitempty,gt=0"`
}

type ResolveWithdrawInput struct {
	Status     string `json:"status" validate:"required,oneof=completed rejected"`
	AdminNotes string `json:"adminNotes"`
}

func (uc *WithdrawUseCase) List(ctx context.Context, actor *entity.User, status string, pagination utils.Pagination) ([]*entity.WithdrawRequest, int64, error) {
	filter := repository.WithdrawFilter{Status: status}
	if !actor.IsAdmin() {
		filter.UserID = actor.ID
	}

	requests, total, err := uc.withdrawRepo.List(ctx, filter, &pagination)
	if err != nil {
		return nil, 0, errors.Wrap("Failed to list withdrawal requests", err)
	}
	return requests, total, nil
}

// Claim withdraws every completed order the merchant holds in one request.
func (uc *WithdrawUseCase) Claim(ctx context.Context, merchant *entity.User, input ClaimWithdrawInput) (*entity.WithdrawRequest, error) {
	req, err := uc.ledger.ClaimWithdrawal(ctx, repository.ClaimInput{
		UserID:         merchant.ID,
		Method:         input.Method,
		AccountDetails: input.AccountDetails,
		ExpectedAmount: input.Amount,
	})
	if err != nil {
		return nil, errors.Wrap("Failed to create withdrawal request", err)
	}

	metrics.WithdrawalCounter.WithLabelValues("claimed").Inc()
	logger.Info("Withdrawal %s claimed by %s for %.2f over %d orders", req.ID, merchant.ID, req.Amount, len(req.OrderIDs))

	uc.notifyAdmins(ctx, "طلب سحب جديد",
		fmt.Sprintf("طلب %s سحب مبلغ %.2f", merchant.Name, req.Amount))
	return req, nil
}

// Resolve completes or rejects a pending request. Repeating the same resolution is harmless.
func (uc *WithdrawUseCase) Resolve(ctx context.Context, admin *entity.User, id string, input ResolveWithdrawInput) (*entity.WithdrawRequest, error) {
	req, changed, err := uc.ledger.ResolveWithdrawal(ctx, repository.ResolveInput{
		RequestID: id,
		Status:    input.Status,
		AdminID:   admin.ID,
		Notes:     input.AdminNotes,
	})
	if err != nil {
		return nil, errors.Wrap("Failed to update withdrawal request", err)
	}
	if !changed {
		return req, nil
	}

	metrics.WithdrawalCounter.WithLabelValues(req.Status).Inc()
	logger.Info("Withdrawal %s %s by %s", req.ID, req.Status, admin.ID)

	title, message := "تم تحويل أرباحك", fmt.Sprintf("تمت الموافقة على سحب %.2f", req.Amount)
	if req.Status == entity.WithdrawRejected {
		title, message = "تم رفض طلب السحب", fmt.Sprintf("أعيد مبلغ %.2f إلى أرباحك", req.Amount)
		if req.AdminNotes != "" {
			message += ": " + req.AdminNotes
		}
	}
	uc.notifier.NotifyUser(ctx, req.UserID, entity.NotificationWithdraw, title, message)
	return req, nil
}

func (uc *WithdrawUseCase) notifyAdmins(ctx context.Context, title, message string) {
	admins, _, err := uc.userRepo.List(ctx, repository.UserFilter{Role: entity.RoleAdmin}, nil)
	if err != nil {
		logger.Warn("Failed to load admins for notification: %v", err)
		return
	}
	for _, admin := range admins {
		uc.notifier.NotifyUser(ctx, admin.ID, entity.NotificationWithdraw, title, message)
	}
}
