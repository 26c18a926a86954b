package server_application

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
	pb "github.com/ERRORIK404/calculator_screen/pkg/proto"
)

func dialBufconn(t *testing.T, app *Application) pb.ScreenServiceClient {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	grpcServer := NewGRPCServer(app)
	go grpcServer.Serve(lis)
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return pb.NewScreenServiceClient(conn)
}

func grpcLogin(t *testing.T, client pb.ScreenServiceClient, login, password string) (context.Context, error) {
	t.Helper()
	creds, err := structpb.NewStruct(map[string]any{"login": login, "password": password})
	require.NoError(t, err)
	token, err := client.Login(context.Background(), creds)
	if err != nil {
		return nil, err
	}
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token.GetValue()), nil
}

func TestGRPC_Unauthenticated(t *testing.T) {
	app, _, _ := newTestApp(t)
	client := dialBufconn(t, app)

	_, err := client.GetState(context.Background(), &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer forged")
	_, err = client.Calculate(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = grpcLogin(t, client, "ghost", "pw")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = grpcLogin(t, client, "", "pw")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_CalculationCycle(t *testing.T) {
	app, histories, _ := newTestApp(t)
	require.NoError(t, app.Register(context.Background(), "bob", "pw"))
	client := dialBufconn(t, app)

	ctx, err := grpcLogin(t, client, "bob", "pw")
	require.NoError(t, err)

	_, err = client.GetState(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	app.Screens.Read("bob").Wait()

	_, err = client.AddOperand(ctx, wrapperspb.Int64(7))
	require.NoError(t, err)
	_, err = client.AddOperator(ctx, wrapperspb.String("/"))
	require.NoError(t, err)
	_, err = client.AddOperand(ctx, wrapperspb.Int64(2))
	require.NoError(t, err)

	out, err := client.Calculate(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	state, err := pb.StateFromStruct(out)
	require.NoError(t, err)
	assert.Equal(t, "3", state.Display)
	assert.Equal(t, []history.Item{{Expression: "7/2", Result: 3}}, state.Histories)

	_, err = client.AddOperator(ctx, wrapperspb.String("/"))
	require.NoError(t, err)
	_, err = client.AddOperand(ctx, wrapperspb.Int64(0))
	require.NoError(t, err)
	out, err = client.Calculate(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	state, err = pb.StateFromStruct(out)
	require.NoError(t, err)
	require.NotNil(t, state.Event)
	assert.Equal(t, screen.DivisionByZeroError, *state.Event)

	out, err = client.RemoveLast(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	state, err = pb.StateFromStruct(out)
	require.NoError(t, err)
	assert.Equal(t, "3/", state.Display)

	out, err = client.ToggleHistory(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	state, err = pb.StateFromStruct(out)
	require.NoError(t, err)
	assert.True(t, state.HistoryOpen)

	_, err = client.AddOperator(ctx, wrapperspb.String("^"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.SaveHistory(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	app.Screens.Read("bob").Wait()
	assert.Equal(t, []history.Item{{Expression: "7/2", Result: 3}}, histories.Items(t, "bob"))

	_, err = client.LoadHistory(ctx, &emptypb.Empty{})
	require.NoError(t, err)
}
