package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/perishable-inventory/internal/application/dto"
	"github.com/jhoicas/perishable-inventory/internal/domain"
	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
	"github.com/jhoicas/perishable-inventory/internal/domain/inventory"
)

// PurchaseFromRequest adapta el request HTTP al caso de uso Purchase(ctx, TransactionInput).
func (uc *TransactionUseCase) PurchaseFromRequest(ctx context.Context, in dto.TransactionRequest) (*dto.StoreResponse, error) {
	input, err := inputFromRequest(in)
	if err != nil {
		return nil, err
	}
	store, err := uc.Purchase(ctx, input)
	if err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// SellFromRequest adapta el request HTTP al caso de uso Sell(ctx, TransactionInput).
func (uc *TransactionUseCase) SellFromRequest(ctx context.Context, in dto.TransactionRequest) (*dto.StoreResponse, error) {
	input, err := inputFromRequest(in)
	if err != nil {
		return nil, err
	}
	store, err := uc.Sell(ctx, input)
	if err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// StoreSnapshot devuelve la cola actual como DTO.
func (uc *TransactionUseCase) StoreSnapshot(ctx context.Context) (*dto.StoreResponse, error) {
	store, err := uc.Store(ctx)
	if err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

func inputFromRequest(in dto.TransactionRequest) (TransactionInput, error) {
	if in.Quantity == nil {
		return TransactionInput{}, fmt.Errorf("%w: quantity requerido", domain.ErrInvalidInput)
	}
	day, err := inventory.ParseDay(in.Date)
	if err != nil {
		return TransactionInput{}, err
	}
	return TransactionInput{Quantity: *in.Quantity, Date: day}, nil
}

// ToStoreResponse convierte la cola de lotes en el cuerpo {"store": [...]}.
func ToStoreResponse(store entity.Batches) *dto.StoreResponse {
	out := make([]dto.BatchDTO, 0, len(store))
	for _, b := range store {
		out = append(out, dto.BatchDTO{Day: inventory.FormatDay(b.Day), Quantity: b.Quantity})
	}
	return &dto.StoreResponse{Store: out}
}
