package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/ports"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/entity"
)

func withdrawal(id, status string) *entity.Withdrawal {
	return &entity.Withdrawal{ID: id, SellerID: "s-1", Amount: decimal.NewFromInt(1500), Currency: "PHP", Status: status}
}

func TestWithdrawals_RequestValidaMonto(t *testing.T) {
	uc := usecase.NewWithdrawalUseCase(newFakeWithdrawals(), nil, &fakeFunctions{}, nil)

	_, err := uc.Request(context.Background(), sellerActor, dto.WithdrawalRequest{Amount: decimal.Zero, BankName: "BDO", AccountName: "A", AccountNumber: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Request(context.Background(), adminActor, dto.WithdrawalRequest{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.Request(context.Background(), sellerActor, dto.WithdrawalRequest{
		Amount: decimal.RequireFromString("250.456"), BankName: "BDO", AccountName: "Clinic", AccountNumber: "001",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalPending, got.Status)
	assert.Equal(t, "PHP", got.Currency)
	assert.Equal(t, "s-1", got.SellerID)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("250.46")))
}

func TestWithdrawals_ApproveSoloDesdePending(t *testing.T) {
	repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalPending), withdrawal("w-2", entity.WithdrawalCompleted))
	uc := usecase.NewWithdrawalUseCase(repo, nil, &fakeFunctions{}, nil)

	got, err := uc.Approve(context.Background(), adminActor, "w-1")
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalApproved, got.Status)
	assert.Equal(t, adminActor.UserID, got.ReviewedBy)

	_, err = uc.Approve(context.Background(), adminActor, "w-1")
	assert.ErrorIs(t, err, domain.ErrStatusMismatch, "el segundo intento no debe aplicar")

	_, err = uc.Approve(context.Background(), adminActor, "w-2")
	assert.ErrorIs(t, err, domain.ErrStatusMismatch)

	_, err = uc.Approve(context.Background(), adminActor, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Approve(context.Background(), sellerActor, "w-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestWithdrawals_ProcessCompletaCuandoElPagoSeConfirma(t *testing.T) {
	repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalApproved))
	fn := &fakeFunctions{payout: &ports.PayoutResult{PayoutRef: "po_1", Status: "paid"}}
	uc := usecase.NewWithdrawalUseCase(repo, nil, fn, nil)

	got, err := uc.Process(context.Background(), adminActor, "w-1")
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalCompleted, got.Status)
	assert.Equal(t, "po_1", got.PayoutRef)
	assert.Equal(t, []string{"processPayout:w-1"}, fn.calls)
}

func TestWithdrawals_ProcessFallaCuandoLaFuncionRechazaElPago(t *testing.T) {
	repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalApproved))
	fn := &fakeFunctions{payoutErr: rejectedErr{msg: "cuenta bancaria inválida"}}
	uc := usecase.NewWithdrawalUseCase(repo, nil, fn, nil)

	got, err := uc.Process(context.Background(), adminActor, "w-1")
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalFailed, got.Status)
	assert.Equal(t, "cuenta bancaria inválida", got.FailureReason)
}

func TestWithdrawals_ProcessSinRespuestaQuedaEnProcessing(t *testing.T) {
	cases := map[string]error{
		"timeout": fmt.Errorf("functions: processPayout: %w: %w", ports.ErrFunctionUnavailable, context.DeadlineExceeded),
		"red":     errors.New("functions: processPayout: connection reset by peer"),
	}
	for name, payErr := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalApproved))
			uc := usecase.NewWithdrawalUseCase(repo, nil, &fakeFunctions{payoutErr: payErr}, nil)

			_, err := uc.Process(context.Background(), adminActor, "w-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, payErr)

			w, err := repo.GetByID(context.Background(), "w-1")
			require.NoError(t, err)
			assert.Equal(t, entity.WithdrawalProcessing, w.Status, "resultado del pago desconocido: no se marca failed")
			assert.Empty(t, w.FailureReason)
		})
	}
}

func TestWithdrawals_ProcessRegistraResultadoConContextoCancelado(t *testing.T) {
	repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalApproved))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fn := &fakeFunctions{payout: &ports.PayoutResult{PayoutRef: "po_1", Status: "completed"}, onPayout: cancel}
	uc := usecase.NewWithdrawalUseCase(repo, nil, fn, nil)

	got, err := uc.Process(ctx, adminActor, "w-1")
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalCompleted, got.Status)
	assert.Equal(t, "po_1", got.PayoutRef)
}

func TestWithdrawals_ProcessPendienteConservaReferencia(t *testing.T) {
	repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalApproved))
	fn := &fakeFunctions{payout: &ports.PayoutResult{PayoutRef: "po_2", Status: "queued"}}
	uc := usecase.NewWithdrawalUseCase(repo, nil, fn, nil)

	got, err := uc.Process(context.Background(), adminActor, "w-1")
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalProcessing, got.Status)
	assert.Equal(t, "po_2", got.PayoutRef)

	done, err := uc.Complete(context.Background(), adminActor, "w-1", dto.CompleteWithdrawalRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalCompleted, done.Status)
	assert.Equal(t, "po_2", done.PayoutRef)
}

func TestWithdrawals_ProcessRequiereAprobacion(t *testing.T) {
	repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalPending))
	fn := &fakeFunctions{}
	uc := usecase.NewWithdrawalUseCase(repo, nil, fn, nil)

	_, err := uc.Process(context.Background(), adminActor, "w-1")
	assert.ErrorIs(t, err, domain.ErrStatusMismatch)
	assert.Empty(t, fn.calls, "no se ordena el pago si la transición no aplicó")
}

func TestWithdrawals_FailExigeMotivo(t *testing.T) {
	repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalProcessing))
	uc := usecase.NewWithdrawalUseCase(repo, nil, &fakeFunctions{}, nil)

	_, err := uc.Fail(context.Background(), adminActor, "w-1", dto.FailWithdrawalRequest{Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.Fail(context.Background(), adminActor, "w-1", dto.FailWithdrawalRequest{Reason: "rechazado por el banco"})
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalFailed, got.Status)
}

func TestWithdrawals_GetDeOtroSeller(t *testing.T) {
	repo := newFakeWithdrawals(withdrawal("w-1", entity.WithdrawalPending))
	uc := usecase.NewWithdrawalUseCase(repo, nil, &fakeFunctions{}, nil)

	_, err := uc.Get(context.Background(), otherSeller, "w-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
