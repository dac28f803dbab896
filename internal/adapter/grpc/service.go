package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "finance.v1.FinanceService"

// FinanceServiceServer is the server API for the finance service.
// Messages are plain Go structs carried by the JSON codec, so clients must
// call with the "json" content-subtype (grpc.CallContentSubtype(CodecName)).
// FinanceServiceClient does this; clients on the default proto codec cannot.
type FinanceServiceServer interface {
	GetState(context.Context, *emptypb.Empty) (*GetStateResponse, error)
	GetOverview(context.Context, *GetOverviewRequest) (*GetOverviewResponse, error)
	Initialize(context.Context, *emptypb.Empty) (*GetStateResponse, error)
	AddTransaction(context.Context, *AddTransactionRequest) (*TransactionResponse, error)
	UpdateTransaction(context.Context, *UpdateTransactionRequest) (*TransactionResponse, error)
	DeleteTransaction(context.Context, *DeleteRequest) (*emptypb.Empty, error)
	AddCategory(context.Context, *AddCategoryRequest) (*CategoryResponse, error)
	UpdateCategory(context.Context, *UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(context.Context, *DeleteRequest) (*emptypb.Empty, error)
	ListTransactionsByPeriod(context.Context, *ListTransactionsByPeriodRequest) (*ListTransactionsResponse, error)
	GetFinancialSummary(context.Context, *emptypb.Empty) (*FinancialSummaryResponse, error)
}

// FullMethod returns the full RPC path of method, as seen by interceptors
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// FinanceService_ServiceDesc is the grpc.ServiceDesc for the finance service
var FinanceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FinanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetState", Handler: unaryHandler("GetState", FinanceServiceServer.GetState)},
		{MethodName: "GetOverview", Handler: unaryHandler("GetOverview", FinanceServiceServer.GetOverview)},
		{MethodName: "Initialize", Handler: unaryHandler("Initialize", FinanceServiceServer.Initialize)},
		{MethodName: "AddTransaction", Handler: unaryHandler("AddTransaction", FinanceServiceServer.AddTransaction)},
		{MethodName: "UpdateTransaction", Handler: unaryHandler("UpdateTransaction", FinanceServiceServer.UpdateTransaction)},
		{MethodName: "DeleteTransaction", Handler: unaryHandler("DeleteTransaction", FinanceServiceServer.DeleteTransaction)},
		{MethodName: "AddCategory", Handler: unaryHandler("AddCategory", FinanceServiceServer.AddCategory)},
		{MethodName: "UpdateCategory", Handler: unaryHandler("UpdateCategory", FinanceServiceServer.UpdateCategory)},
		{MethodName: "DeleteCategory", Handler: unaryHandler("DeleteCategory", FinanceServiceServer.DeleteCategory)},
		{MethodName: "ListTransactionsByPeriod", Handler: unaryHandler("ListTransactionsByPeriod", FinanceServiceServer.ListTransactionsByPeriod)},
		{MethodName: "GetFinancialSummary", Handler: unaryHandler("GetFinancialSummary", FinanceServiceServer.GetFinancialSummary)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "finance/v1/finance",
}

// RegisterFinanceServiceServer registers srv on s
func RegisterFinanceServiceServer(s grpc.ServiceRegistrar, srv FinanceServiceServer) {
	s.RegisterService(&FinanceService_ServiceDesc, srv)
}

// unaryHandler decodes the request and runs call through the interceptor chain
func unaryHandler[Req, Resp any](method string, call func(FinanceServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FinanceServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FinanceServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FinanceServiceClient is the client API for the finance service.
// Every call uses the JSON codec.
type FinanceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFinanceServiceClient creates a client on cc
func NewFinanceServiceClient(cc grpc.ClientConnInterface) *FinanceServiceClient {
	return &FinanceServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FinanceServiceClient) GetState(ctx context.Context, opts ...grpc.CallOption) (*GetStateResponse, error) {
	return invoke[GetStateResponse](ctx, c.cc, "GetState", &emptypb.Empty{}, opts)
}

func (c *FinanceServiceClient) GetOverview(ctx context.Context, in *GetOverviewRequest, opts ...grpc.CallOption) (*GetOverviewResponse, error) {
	return invoke[GetOverviewResponse](ctx, c.cc, "GetOverview", in, opts)
}

func (c *FinanceServiceClient) Initialize(ctx context.Context, opts ...grpc.CallOption) (*GetStateResponse, error) {
	return invoke[GetStateResponse](ctx, c.cc, "Initialize", &emptypb.Empty{}, opts)
}

func (c *FinanceServiceClient) AddTransaction(ctx context.Context, in *AddTransactionRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, c.cc, "AddTransaction", in, opts)
}

func (c *FinanceServiceClient) UpdateTransaction(ctx context.Context, in *UpdateTransactionRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, c.cc, "UpdateTransaction", in, opts)
}

func (c *FinanceServiceClient) DeleteTransaction(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) error {
	_, err := invoke[emptypb.Empty](ctx, c.cc, "DeleteTransaction", in, opts)
	return err
}

func (c *FinanceServiceClient) AddCategory(ctx context.Context, in *AddCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, "AddCategory", in, opts)
}

func (c *FinanceServiceClient) UpdateCategory(ctx context.Context, in *UpdateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, "UpdateCategory", in, opts)
}

func (c *FinanceServiceClient) DeleteCategory(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) error {
	_, err := invoke[emptypb.Empty](ctx, c.cc, "DeleteCategory", in, opts)
	return err
}

func (c *FinanceServiceClient) ListTransactionsByPeriod(ctx context.Context, in *ListTransactionsByPeriodRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return invoke[ListTransactionsResponse](ctx, c.cc, "ListTransactionsByPeriod", in, opts)
}

func (c *FinanceServiceClient) GetFinancialSummary(ctx context.Context, opts ...grpc.CallOption) (*FinancialSummaryResponse, error) {
	return invoke[FinancialSummaryResponse](ctx, c.cc, "GetFinancialSummary", &emptypb.Empty{}, opts)
}
