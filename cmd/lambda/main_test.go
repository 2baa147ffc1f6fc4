package main

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rummy/config"
	"github.com/domino14/rummy/worker"
)

func TestHandleRequest(t *testing.T) {
	is := is.New(t)
	cfg = config.DefaultConfig()
	evt := worker.LambdaEvent{
		SolveRequest: worker.SolveRequest{
			ID:       "foo",
			Position: "R5,B5,O5/R6,R7,R8 R4,K5",
		},
	}
	resp, err := HandleRequest(context.Background(), evt)
	is.NoErr(err)
	is.Equal(resp.ID, "foo")
	is.Equal(resp.Solution.Score, 9)
	is.Equal(len(resp.Solution.Played), 2)
}

func TestHandleRequestWithoutSolveTimeout(t *testing.T) {
	is := is.New(t)
	cfg = config.DefaultConfig()
	cfg.Set(config.ConfigSolveTimeout, "0s")
	resp, err := HandleRequest(context.Background(), worker.LambdaEvent{
		SolveRequest: worker.SolveRequest{ID: "bar", Position: "R4,R5,R6 R7"},
	})
	is.NoErr(err)
	is.Equal(resp.Solution.Score, 7)
}

func TestHandleRequestBadPosition(t *testing.T) {
	is := is.New(t)
	cfg = config.DefaultConfig()
	_, err := HandleRequest(context.Background(), worker.LambdaEvent{
		SolveRequest: worker.SolveRequest{Position: "R5,B5 X9"},
	})
	is.True(err != nil)
}
