package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/msto63/boundary/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/boundary.v1.FaultSink/ReportBatch"}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(logging.Discard())

	_, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("handler exploded")
	})
	if status.Code(err) != codes.Internal {
		t.Errorf("code = %v, want Internal", status.Code(err))
	}

	resp, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Errorf("resp = %v, err = %v", resp, err)
	}
}

func TestRequestIDInterceptor(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{
			name:     "from metadata",
			ctx:      metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-42")),
			expected: "req-42",
		},
		{
			name: "generated",
			ctx:  context.Background(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			RequestIDInterceptor()(tt.ctx, nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
				got = GetRequestID(ctx)
				return nil, nil
			})

			if tt.expected != "" && got != tt.expected {
				t.Errorf("request id = %q, want %q", got, tt.expected)
			}
			if got == "" {
				t.Error("request id is empty")
			}
		})
	}
}

func TestClientRequestIDInterceptor(t *testing.T) {
	ctx := WithRequestID(context.Background(), "fault-1")

	var sent []string
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		sent = md.Get(RequestIDHeader)
		return nil
	}

	if err := ClientRequestIDInterceptor()(ctx, "/m", nil, nil, nil, invoker); err != nil {
		t.Fatalf("interceptor error = %v", err)
	}
	if len(sent) != 1 || sent[0] != "fault-1" {
		t.Errorf("outgoing request id = %v, want [fault-1]", sent)
	}
}

func TestWaitReady_Timeout(t *testing.T) {
	conn, err := NewClient(DefaultClientConfig("passthrough:///127.0.0.1:1"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := WaitReady(ctx, conn); err == nil {
		t.Error("WaitReady() to a closed port should fail")
	}
}
