// Package client_application drives a screen hosted by the gRPC service.
package client_application

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ERRORIK404/calculator_screen/internal/console"
	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/expression"
	pb "github.com/ERRORIK404/calculator_screen/pkg/proto"
)

type Client struct {
	conn   *grpc.ClientConn
	client pb.ScreenServiceClient
	token  string
}

var _ console.Screen = (*Client)(nil)

// Dial connects to the service at addr without transport security.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("did not connect: %w", err)
	}
	return &Client{conn: conn, client: pb.NewScreenServiceClient(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Login authenticates and keeps the token for later calls.
func (c *Client) Login(ctx context.Context, login, password string) error {
	creds, err := structpb.NewStruct(map[string]any{"login": login, "password": password})
	if err != nil {
		return err
	}
	token, err := c.client.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	c.token = token.GetValue()
	return nil
}

func (c *Client) authorized(ctx context.Context) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
}

func decode(out *structpb.Struct, err error) (screen.State, error) {
	if err != nil {
		return screen.State{}, err
	}
	return pb.StateFromStruct(out)
}

func (c *Client) State(ctx context.Context) (screen.State, error) {
	return decode(c.client.GetState(c.authorized(ctx), &emptypb.Empty{}))
}

func (c *Client) AddOperand(ctx context.Context, operand int) (screen.State, error) {
	return decode(c.client.AddOperand(c.authorized(ctx), wrapperspb.Int64(int64(operand))))
}

func (c *Client) AddOperator(ctx context.Context, op expression.Operator) (screen.State, error) {
	return decode(c.client.AddOperator(c.authorized(ctx), wrapperspb.String(op.Symbol())))
}

func (c *Client) RemoveLast(ctx context.Context) (screen.State, error) {
	return decode(c.client.RemoveLast(c.authorized(ctx), &emptypb.Empty{}))
}

func (c *Client) Calculate(ctx context.Context) (screen.State, error) {
	return decode(c.client.Calculate(c.authorized(ctx), &emptypb.Empty{}))
}

func (c *Client) ToggleHistory(ctx context.Context) (screen.State, error) {
	return decode(c.client.ToggleHistory(c.authorized(ctx), &emptypb.Empty{}))
}

func (c *Client) LoadHistory(ctx context.Context) error {
	_, err := c.client.LoadHistory(c.authorized(ctx), &emptypb.Empty{})
	return err
}

func (c *Client) SaveHistory(ctx context.Context) error {
	_, err := c.client.SaveHistory(c.authorized(ctx), &emptypb.Empty{})
	return err
}
