package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
)

// Client sends solve requests to the workers.
type Client struct {
	nc      *nats.Conn
	subject string
}

func NewClient(nc *nats.Conn, subject string) *Client {
	return &Client{nc: nc, subject: subject}
}

// Solve asks a worker for the best play in the position. The deadline of
// ctx bounds the wait.
func (c *Client) Solve(ctx context.Context, p *position.Position) (*solver.Solution, error) {
	req := SolveRequest{ID: p.ID(), Position: p.String()}
	if dl, ok := ctx.Deadline(); ok {
		req.TimeoutMs = int(max(0, time.Until(dl).Milliseconds()))
	}
	data, err := json.Marshal(&req)
	if err != nil {
		return nil, err
	}
	res, err := c.nc.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Err(c.nc.LastError()).Msg("nats-last-error")
		}
		return nil, err
	}
	return DecodeResponse(res.Data)
}

// DecodeResponse turns a worker's response into a solution or an error.
func DecodeResponse(data []byte) (*solver.Solution, error) {
	var resp SolveResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New("worker returned: " + resp.Error)
	}
	if resp.Solution == nil {
		return nil, errors.New("worker returned no solution")
	}
	return resp.Solution, nil
}
