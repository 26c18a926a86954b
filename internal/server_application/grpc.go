package server_application

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/expression"
	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
	pb "github.com/ERRORIK404/calculator_screen/pkg/proto"
)

type Server struct {
	pb.UnimplementedScreenServiceServer
	app *Application
}

func NewServer(app *Application) *Server {
	return &Server{app: app}
}

// NewGRPCServer returns a grpc.Server with the screen service and its
// authentication interceptor registered.
func NewGRPCServer(app *Application, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(app.AuthInterceptor))
	grpcServer := grpc.NewServer(opts...)
	pb.RegisterScreenServiceServer(grpcServer, NewServer(app))
	return grpcServer
}

// AuthInterceptor requires "authorization: Bearer <token>" on every method
// but Login and stores the login in the context.
func (a *Application) AuthInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if info.FullMethod == pb.ScreenService_Login_FullMethodName {
		return handler(ctx, req)
	}

	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get("authorization")
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing authorization metadata")
	}
	token, ok := strings.CutPrefix(values[0], "Bearer ")
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authorization must be a bearer token")
	}
	login, err := a.Authenticate(token)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "operation failed: %v", err)
	}
	return handler(context.WithValue(ctx, loginKey{}, login), req)
}

// useScreen runs fn against the caller's screen while it is held open.
func (s *Server) useScreen(ctx context.Context, fn func(*screen.Controller)) error {
	login, ok := ctx.Value(loginKey{}).(string)
	if !ok {
		return status.Error(codes.Unauthenticated, "not authenticated")
	}
	s.app.Screens.Use(login, fn)
	return nil
}

func (s *Server) state(ctx context.Context, action func(*screen.Controller)) (*structpb.Struct, error) {
	var state screen.State
	err := s.useScreen(ctx, func(c *screen.Controller) {
		if action != nil {
			action(c)
		}
		state = c.Snapshot()
	})
	if err != nil {
		return nil, err
	}
	out, err := pb.StateToStruct(state)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "operation failed: %v", err)
	}
	return out, nil
}

func (s *Server) Login(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	fields := in.GetFields()
	token, err := s.app.Login(ctx, fields["login"].GetStringValue(), fields["password"].GetStringValue())
	switch {
	case err == nil:
		return wrapperspb.String(token), nil
	case errors.Is(err, locerr.ErrEmptyLogin):
		return nil, status.Errorf(codes.InvalidArgument, "operation failed: %v", err)
	case errors.Is(err, locerr.ErrInvalidCredentials):
		return nil, status.Errorf(codes.Unauthenticated, "operation failed: %v", err)
	default:
		return nil, status.Errorf(codes.Internal, "operation failed: %v", err)
	}
}

func (s *Server) GetState(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
	return s.state(ctx, nil)
}

func (s *Server) AddOperand(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return s.state(ctx, func(c *screen.Controller) {
		c.AddOperand(int(in.GetValue()))
	})
}

func (s *Server) AddOperator(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	op, err := expression.ParseOperator(in.GetValue())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "operation failed: %v", err)
	}
	return s.state(ctx, func(c *screen.Controller) {
		c.AddOperator(op)
	})
}

func (s *Server) RemoveLast(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
	return s.state(ctx, (*screen.Controller).RemoveLast)
}

func (s *Server) Calculate(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
	return s.state(ctx, (*screen.Controller).Calculate)
}

func (s *Server) ToggleHistory(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
	return s.state(ctx, (*screen.Controller).ToggleHistory)
}

func (s *Server) LoadHistory(ctx context.Context, in *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.useScreen(ctx, (*screen.Controller).LoadHistory); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) SaveHistory(ctx context.Context, in *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.useScreen(ctx, (*screen.Controller).SaveHistory); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}
