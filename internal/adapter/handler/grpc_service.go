package handler

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	serviceName   = "stockroom.v1.InventoryService"
	jsonCodecName = "json"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec carries the plain Go message structs below over gRPC. Clients
// select it with grpc.CallContentSubtype(jsonCodecName).
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return jsonCodecName }

type AddItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Unit     string `json:"unit"`
}

// StockRequest addresses an item by ID, or by name when ItemID is empty.
type StockRequest struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

type RemoveRequest struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
}

type MutationReply struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ItemID   string `json:"item_id,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
	Alert    string `json:"alert,omitempty"`
}

type DashboardRequest struct{}

type DashboardReply struct {
	ItemCount  int      `json:"item_count"`
	TotalValue string   `json:"total_value"`
	Categories []string `json:"categories"`
}

type InventoryServer interface {
	AddItem(context.Context, *AddItemRequest) (*MutationReply, error)
	Sell(context.Context, *StockRequest) (*MutationReply, error)
	Restock(context.Context, *StockRequest) (*MutationReply, error)
	Remove(context.Context, *RemoveRequest) (*MutationReply, error)
	Dashboard(context.Context, *DashboardRequest) (*DashboardReply, error)
}

func RegisterInventoryServer(s grpc.ServiceRegistrar, srv InventoryServer) {
	s.RegisterService(&inventoryServiceDesc, srv)
}

var inventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*InventoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddItem", Handler: unaryHandler(InventoryServer.AddItem, "AddItem")},
		{MethodName: "Sell", Handler: unaryHandler(InventoryServer.Sell, "Sell")},
		{MethodName: "Restock", Handler: unaryHandler(InventoryServer.Restock, "Restock")},
		{MethodName: "Remove", Handler: unaryHandler(InventoryServer.Remove, "Remove")},
		{MethodName: "Dashboard", Handler: unaryHandler(InventoryServer.Dashboard, "Dashboard")},
	},
	Streams: []grpc.StreamDesc{},
}

func unaryHandler[Req, Resp any](call func(InventoryServer, context.Context, *Req) (*Resp, error), method string) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InventoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + serviceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(InventoryServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type InventoryClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryClient(cc grpc.ClientConnInterface) *InventoryClient {
	return &InventoryClient{cc: cc}
}

func (c *InventoryClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*MutationReply, error) {
	out := new(MutationReply)
	return out, c.invoke(ctx, "AddItem", in, out, opts)
}

func (c *InventoryClient) Sell(ctx context.Context, in *StockRequest, opts ...grpc.CallOption) (*MutationReply, error) {
	out := new(MutationReply)
	return out, c.invoke(ctx, "Sell", in, out, opts)
}

func (c *InventoryClient) Restock(ctx context.Context, in *StockRequest, opts ...grpc.CallOption) (*MutationReply, error) {
	out := new(MutationReply)
	return out, c.invoke(ctx, "Restock", in, out, opts)
}

func (c *InventoryClient) Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*MutationReply, error) {
	out := new(MutationReply)
	return out, c.invoke(ctx, "Remove", in, out, opts)
}

func (c *InventoryClient) Dashboard(ctx context.Context, in *DashboardRequest, opts ...grpc.CallOption) (*DashboardReply, error) {
	out := new(DashboardReply)
	return out, c.invoke(ctx, "Dashboard", in, out, opts)
}

func (c *InventoryClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsonCodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...)
}
