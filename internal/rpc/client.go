package rpc

import (
	"context"
	"fmt"

	"github.com/danielpatrickdp/mindreader/internal/game"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region types
// PlayResult is one remote turn plus the running tally.
type PlayResult struct {
	Turn       game.Turn
	PlayerWins int
	Guesses    int
}

// #endregion types

// #region client-struct
// Client wraps the gRPC connection to a Predictor server.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// #endregion client-struct

// #region constructor
// NewClient connects to a Predictor server at addr.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn creates a Client over an existing connection.
// Used for testing without a real network.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection if the client owns it.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region new-session
// NewSession opens a game on the server.
func (c *Client) NewSession(ctx context.Context) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodNewSession, &emptypb.Empty{}, out); err != nil {
		return "", fmt.Errorf("new session rpc: %w", err)
	}
	return out.GetValue(), nil
}

// #endregion new-session

// #region play
// Play submits one choice.
func (c *Client) Play(ctx context.Context, sessionID string, choice int) (PlayResult, error) {
	in, err := structpb.NewStruct(map[string]any{
		"session_id": sessionID,
		"choice":     choice,
	})
	if err != nil {
		return PlayResult{}, fmt.Errorf("encode play: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodPlay, in, out); err != nil {
		return PlayResult{}, fmt.Errorf("play rpc: %w", err)
	}

	var res PlayResult
	for key, dst := range map[string]*int{
		"turn":        &res.Turn.Number,
		"choice":      &res.Turn.Choice,
		"prediction":  &res.Turn.Prediction,
		"player_wins": &res.PlayerWins,
		"guesses":     &res.Guesses,
	} {
		v, err := intField(out, key)
		if err != nil {
			return PlayResult{}, fmt.Errorf("decode play: %w", err)
		}
		*dst = v
	}
	res.Turn.Guessed = out.GetFields()["guessed"].GetBoolValue()
	return res, nil
}

// #endregion play

// #region end-session
// EndSession closes a game and returns the server's tally.
func (c *Client) EndSession(ctx context.Context, sessionID string) (game.Tally, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodEndSession, wrapperspb.String(sessionID), out); err != nil {
		return game.Tally{}, fmt.Errorf("end session rpc: %w", err)
	}
	var t game.Tally
	for key, dst := range map[string]*int{
		"turns":       &t.Turns,
		"player_wins": &t.PlayerWins,
		"guesses":     &t.Guesses,
	} {
		v, err := intField(out, key)
		if err != nil {
			return game.Tally{}, fmt.Errorf("decode tally: %w", err)
		}
		*dst = v
	}
	return t, nil
}

// #endregion end-session
