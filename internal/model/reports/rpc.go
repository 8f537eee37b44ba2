package reports

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName        = "ledger.ReportAcceptor"
	acceptReportMethod = "/" + serviceName + "/AcceptReport"

	userIDField = "user_id"
	textField   = "text"
)

type reportAcceptorServer interface {
	AcceptReport(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error)
}

var acceptorServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*reportAcceptorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AcceptReport",
			Handler:    acceptReportHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/reports.proto",
}

func acceptReportHandler(srv interface{}, ctx context.Context, dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(reportAcceptorServer).AcceptReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: acceptReportMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(reportAcceptorServer).AcceptReport(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// encodeReport keeps the user id as a string, struct numbers are float64.
func encodeReport(userID int64, text string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		userIDField: strconv.FormatInt(userID, 10),
		textField:   text,
	})
}

func decodeReport(in *structpb.Struct) (int64, string, error) {
	fields := in.GetFields()
	userID, err := strconv.ParseInt(fields[userIDField].GetStringValue(), 10, 64)
	if err != nil {
		return 0, "", errors.Wrap(err, "decode user id")
	}
	return userID, fields[textField].GetStringValue(), nil
}
