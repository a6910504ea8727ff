package handler

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rl1809/stockroom/internal/core/domain"
	"github.com/rl1809/stockroom/internal/core/service"
)

type GRPCHandler struct {
	inventory *service.InventoryService
}

var _ InventoryServer = (*GRPCHandler)(nil)

func NewGRPCHandler(inventory *service.InventoryService) *GRPCHandler {
	return &GRPCHandler{inventory: inventory}
}

func (h *GRPCHandler) AddItem(ctx context.Context, req *AddItemRequest) (*MutationReply, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return &MutationReply{Success: false, Message: "invalid price"}, nil
	}

	res, err := h.inventory.Add(ctx, domain.ItemFields{
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
		Price:    price,
		Unit:     req.Unit,
	})
	if err != nil {
		return failure(err), nil
	}
	return success("item added", res), nil
}

func (h *GRPCHandler) Sell(ctx context.Context, req *StockRequest) (*MutationReply, error) {
	id, err := h.resolve(req.ItemID, req.ItemName)
	if err != nil {
		return failure(err), nil
	}

	res, err := h.inventory.Sell(ctx, id, req.Quantity)
	if err != nil {
		return failure(err), nil
	}
	return success("sale recorded", res), nil
}

func (h *GRPCHandler) Restock(ctx context.Context, req *StockRequest) (*MutationReply, error) {
	id, err := h.resolve(req.ItemID, req.ItemName)
	if err != nil {
		return failure(err), nil
	}

	res, err := h.inventory.Restock(ctx, id, req.Quantity)
	if err != nil {
		return failure(err), nil
	}
	return success("restock recorded", res), nil
}

func (h *GRPCHandler) Remove(ctx context.Context, req *RemoveRequest) (*MutationReply, error) {
	id, err := h.resolve(req.ItemID, req.ItemName)
	if err != nil {
		return failure(err), nil
	}

	res, err := h.inventory.Remove(ctx, id)
	if err != nil {
		return failure(err), nil
	}
	return success("item removed", res), nil
}

func (h *GRPCHandler) Dashboard(ctx context.Context, _ *DashboardRequest) (*DashboardReply, error) {
	s := h.inventory.Dashboard()
	return &DashboardReply{
		ItemCount:  s.ItemCount,
		TotalValue: s.TotalValue.StringFixed(2),
		Categories: s.Categories,
	}, nil
}

func (h *GRPCHandler) resolve(id, name string) (string, error) {
	if id != "" {
		return id, nil
	}
	return h.inventory.FindByName(name)
}

func success(message string, res *service.MutationResult) *MutationReply {
	reply := &MutationReply{
		Success:  true,
		Message:  message,
		ItemID:   res.Item.ID,
		Quantity: res.Item.Quantity,
	}
	if res.Alert != nil {
		reply.Alert = res.Alert.Message()
	}
	return reply
}

func failure(err error) *MutationReply {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		return &MutationReply{Success: false, Message: "item not found"}
	case errors.Is(err, service.ErrInsufficientStock):
		return &MutationReply{Success: false, Message: "insufficient stock"}
	default:
		return &MutationReply{Success: false, Message: "internal error"}
	}
}
