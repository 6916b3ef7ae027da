package report

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// FaultSinkReportBatchMethod is the full method name of the batch call
const FaultSinkReportBatchMethod = "/boundary.v1.FaultSink/ReportBatch"

// FaultSinkClient is the client API of the external fault sink. The request
// is a list of fault structs, the response a struct holding "accepted".
type FaultSinkClient interface {
	ReportBatch(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type faultSinkClient struct {
	cc grpc.ClientConnInterface
}

// NewFaultSinkClient creates a FaultSinkClient on cc
func NewFaultSinkClient(cc grpc.ClientConnInterface) FaultSinkClient {
	return &faultSinkClient{cc: cc}
}

func (c *faultSinkClient) ReportBatch(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FaultSinkReportBatchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// FaultSinkServer is the server API of the fault sink
type FaultSinkServer interface {
	ReportBatch(ctx context.Context, in *structpb.ListValue) (*structpb.Struct, error)
}

// RegisterFaultSinkServer registers srv on s
func RegisterFaultSinkServer(s grpc.ServiceRegistrar, srv FaultSinkServer) {
	s.RegisterService(&faultSinkServiceDesc, srv)
}

func faultSinkReportBatchHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.ListValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FaultSinkServer).ReportBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FaultSinkReportBatchMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FaultSinkServer).ReportBatch(ctx, req.(*structpb.ListValue))
	}
	return interceptor(ctx, in, info, handler)
}

var faultSinkServiceDesc = grpc.ServiceDesc{
	ServiceName: "boundary.v1.FaultSink",
	HandlerType: (*FaultSinkServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ReportBatch",
			Handler:    faultSinkReportBatchHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "boundary/v1/faultsink.proto",
}

// Accepted reads the accepted count from a ReportBatch response
func Accepted(resp *structpb.Struct) int {
	if resp == nil {
		return 0
	}
	v, ok := resp.GetFields()["accepted"]
	if !ok {
		return 0
	}
	return int(v.GetNumberValue())
}
