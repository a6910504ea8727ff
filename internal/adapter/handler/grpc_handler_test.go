package handler

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/stockroom/internal/core/service"
)

func newTestClient(t *testing.T, inventory *service.InventoryService) *InventoryClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterInventoryServer(srv, NewGRPCHandler(inventory))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewInventoryClient(conn)
}

func TestGRPCHandler_AddSellRestock(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, newTestInventory())

	added, err := client.AddItem(ctx, &AddItemRequest{Name: "Apple", Category: "Fruit", Quantity: 10, Price: "1.5", Unit: "kg"})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if !added.Success || added.ItemID == "" {
		t.Fatalf("expected success with item ID, got %+v", added)
	}

	sold, err := client.Sell(ctx, &StockRequest{ItemName: "Apple", Quantity: 3})
	if err != nil {
		t.Fatalf("Sell failed: %v", err)
	}
	if !sold.Success {
		t.Fatalf("expected success, got %s", sold.Message)
	}
	if sold.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", sold.Quantity)
	}
	if sold.Alert != "Item Apple is below 10 units! Current quantity: 7" {
		t.Errorf("unexpected alert %q", sold.Alert)
	}

	restocked, err := client.Restock(ctx, &StockRequest{ItemID: added.ItemID, Quantity: 5})
	if err != nil {
		t.Fatalf("Restock failed: %v", err)
	}
	if restocked.Quantity != 12 || restocked.Alert != "" {
		t.Errorf("expected quantity 12 without alert, got %+v", restocked)
	}

	dash, err := client.Dashboard(ctx, &DashboardRequest{})
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dash.ItemCount != 1 || dash.TotalValue != "18.00" {
		t.Errorf("expected 1 item worth 18.00, got %d worth %s", dash.ItemCount, dash.TotalValue)
	}
}

func TestGRPCHandler_Failures(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, newTestInventory())

	if _, err := client.AddItem(ctx, &AddItemRequest{Name: "Banana", Category: "Fruit", Quantity: 5, Price: "1", Unit: "kg"}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	tests := []struct {
		name    string
		call    func() (*MutationReply, error)
		message string
	}{
		{
			name:    "insufficient stock",
			call:    func() (*MutationReply, error) { return client.Sell(ctx, &StockRequest{ItemName: "Banana", Quantity: 6}) },
			message: "insufficient stock",
		},
		{
			name:    "unknown name",
			call:    func() (*MutationReply, error) { return client.Sell(ctx, &StockRequest{ItemName: "Mango", Quantity: 1}) },
			message: "item not found",
		},
		{
			name:    "unknown id",
			call:    func() (*MutationReply, error) { return client.Remove(ctx, &RemoveRequest{ItemID: "missing"}) },
			message: "item not found",
		},
		{
			name: "bad price",
			call: func() (*MutationReply, error) {
				return client.AddItem(ctx, &AddItemRequest{Name: "Pear", Price: "cheap"})
			},
			message: "invalid price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := tt.call()
			if err != nil {
				t.Fatalf("unexpected transport error: %v", err)
			}
			if reply.Success {
				t.Error("expected failure")
			}
			if reply.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, reply.Message)
			}
		})
	}
}
