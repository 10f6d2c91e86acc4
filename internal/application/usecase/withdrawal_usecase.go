package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
)

// DefaultCurrency moneda de los retiros si la solicitud no indica otra.
const DefaultCurrency = "PHP"

// WithdrawalUseCase ciclo de vida de los retiros: pending → approved → processing → completed|failed.
// Cada paso es una actualización condicional; si otro proceso movió el estado antes, el paso
// falla con domain.ErrStatusMismatch y no se reintenta.
type WithdrawalUseCase struct {
	withdrawals repository.WithdrawalRepository
	sellers     repository.SellerRepository
	functions   ports.FunctionsClient
	renderer    ports.WithdrawalStatementRenderer
	now         Clock
}

// NewWithdrawalUseCase construye el caso de uso.
func NewWithdrawalUseCase(
	withdrawals repository.WithdrawalRepository,
	sellers repository.SellerRepository,
	functions ports.FunctionsClient,
	renderer ports.WithdrawalStatementRenderer,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{withdrawals: withdrawals, sellers: sellers, functions: functions, renderer: renderer, now: utcNow}
}

// Request registra una solicitud de retiro de la tienda del actor.
func (uc *WithdrawalUseCase) Request(ctx context.Context, actor access.Access, in dto.WithdrawalRequest) (*dto.WithdrawalResponse, error) {
	if actor.IsAdmin() || actor.SellerID == "" {
		return nil, domain.ErrForbidden
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	now := uc.now()
	w := &entity.Withdrawal{
		ID:            uuid.New().String(),
		SellerID:      actor.SellerID,
		RequestedBy:   actor.UserID,
		Amount:        in.Amount.Round(2),
		Currency:      currency,
		BankName:      strings.TrimSpace(in.BankName),
		AccountName:   strings.TrimSpace(in.AccountName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		Status:        entity.WithdrawalPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.withdrawals.Create(ctx, w); err != nil {
		return nil, err
	}
	resp := toWithdrawalResponse(w)
	return &resp, nil
}

// List retiros visibles para el actor.
func (uc *WithdrawalUseCase) List(ctx context.Context, actor access.Access, in dto.WithdrawalListRequest) ([]dto.WithdrawalResponse, error) {
	sellerID, err := sellerScope(actor)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, err := uc.withdrawals.List(ctx, repository.WithdrawalFilter{
		SellerID: sellerID,
		Status:   in.Status,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.WithdrawalResponse, 0, len(list))
	for _, w := range list {
		out = append(out, toWithdrawalResponse(w))
	}
	return out, nil
}

// Get obtiene un retiro visible para el actor.
func (uc *WithdrawalUseCase) Get(ctx context.Context, actor access.Access, id string) (*dto.WithdrawalResponse, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toWithdrawalResponse(w)
	return &resp, nil
}

// Approve pending → approved (admin).
func (uc *WithdrawalUseCase) Approve(ctx context.Context, actor access.Access, id string) (*dto.WithdrawalResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	w, err := uc.transition(ctx, id, entity.WithdrawalPending, entity.WithdrawalApproved, entity.WithdrawalPatch{ReviewedBy: actor.UserID})
	if err != nil {
		return nil, err
	}
	resp := toWithdrawalResponse(w)
	return &resp, nil
}

// Process approved → processing y ordena el pago. Si la función rechaza el pago, el retiro queda
// en failed con el motivo; si lo confirma, en completed. Otro estado del proveedor deja el retiro
// en processing con la referencia. Sin respuesta (timeout, red) el resultado del pago es
// desconocido: el retiro sigue en processing y se devuelve el error para conciliarlo a mano.
func (uc *WithdrawalUseCase) Process(ctx context.Context, actor access.Access, id string) (*dto.WithdrawalResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	w, err := uc.transition(ctx, id, entity.WithdrawalApproved, entity.WithdrawalProcessing, entity.WithdrawalPatch{ReviewedBy: actor.UserID})
	if err != nil {
		return nil, err
	}

	payout, payErr := uc.functions.ProcessPayout(ctx, ports.PayoutInput{
		WithdrawalID:  w.ID,
		SellerID:      w.SellerID,
		Amount:        w.Amount,
		Currency:      w.Currency,
		BankName:      w.BankName,
		AccountName:   w.AccountName,
		AccountNumber: w.AccountNumber,
	})
	// El pago ya se ordenó: el registro del resultado no depende de que el cliente siga conectado.
	record := context.WithoutCancel(ctx)
	switch {
	case errors.Is(payErr, ports.ErrFunctionRejected):
		w, err = uc.transition(record, id, entity.WithdrawalProcessing, entity.WithdrawalFailed, entity.WithdrawalPatch{FailureReason: payErr.Error()})
	case payErr != nil:
		return nil, fmt.Errorf("process payout %s: %w", id, payErr)
	case payoutSettled(payout.Status):
		w, err = uc.transition(record, id, entity.WithdrawalProcessing, entity.WithdrawalCompleted, entity.WithdrawalPatch{PayoutRef: payout.PayoutRef})
	default:
		// Sigue en processing; solo se guarda la referencia.
		w, err = uc.withdrawals.Transition(record, id, entity.WithdrawalProcessing, entity.WithdrawalProcessing, entity.WithdrawalPatch{PayoutRef: payout.PayoutRef})
	}
	if err != nil {
		return nil, err
	}
	resp := toWithdrawalResponse(w)
	return &resp, nil
}

// Complete processing → completed (admin, confirmación manual del pago).
func (uc *WithdrawalUseCase) Complete(ctx context.Context, actor access.Access, id string, in dto.CompleteWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	w, err := uc.transition(ctx, id, entity.WithdrawalProcessing, entity.WithdrawalCompleted, entity.WithdrawalPatch{PayoutRef: in.PayoutRef})
	if err != nil {
		return nil, err
	}
	resp := toWithdrawalResponse(w)
	return &resp, nil
}

// Fail processing → failed (admin).
func (uc *WithdrawalUseCase) Fail(ctx context.Context, actor access.Access, id string, in dto.FailWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.transition(ctx, id, entity.WithdrawalProcessing, entity.WithdrawalFailed, entity.WithdrawalPatch{FailureReason: reason})
	if err != nil {
		return nil, err
	}
	resp := toWithdrawalResponse(w)
	return &resp, nil
}

// Statement comprobante PDF del retiro.
func (uc *WithdrawalUseCase) Statement(ctx context.Context, actor access.Access, id string) ([]byte, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	seller, err := uc.sellers.GetByID(ctx, w.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		seller = &entity.Seller{ID: w.SellerID}
	}
	return uc.renderer.RenderStatement(w, seller)
}

func (uc *WithdrawalUseCase) transition(ctx context.Context, id, from, to string, patch entity.WithdrawalPatch) (*entity.Withdrawal, error) {
	if !entity.CanTransition(from, to) {
		return nil, domain.ErrStatusMismatch
	}
	return uc.withdrawals.Transition(ctx, id, from, to, patch)
}

func (uc *WithdrawalUseCase) load(ctx context.Context, actor access.Access, id string) (*entity.Withdrawal, error) {
	w, err := uc.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if !canSeeSeller(actor, w.SellerID) {
		return nil, domain.ErrForbidden
	}
	return w, nil
}

func payoutSettled(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "paid", "succeeded", "success":
		return true
	}
	return false
}

func toWithdrawalResponse(w *entity.Withdrawal) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:            w.ID,
		SellerID:      w.SellerID,
		RequestedBy:   w.RequestedBy,
		Amount:        w.Amount,
		Currency:      w.Currency,
		BankName:      w.BankName,
		AccountName:   w.AccountName,
		AccountNumber: w.AccountNumber,
		Status:        w.Status,
		PayoutRef:     w.PayoutRef,
		FailureReason: w.FailureReason,
		ReviewedBy:    w.ReviewedBy,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}
