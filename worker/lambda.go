package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
)

// LambdaEvent is the payload the solver Lambda function accepts. If
// ReplyChannel is set, the response is also published there over NATS.
type LambdaEvent struct {
	SolveRequest
	ReplyChannel string `json:"reply_channel,omitempty"`
}

// LambdaInvoker solves positions by invoking the solver Lambda function
// synchronously.
type LambdaInvoker struct {
	client   *lambda.Client
	function string
}

// NewLambdaInvoker uses the default AWS credential chain and region.
func NewLambdaInvoker(ctx context.Context, function string) (*LambdaInvoker, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &LambdaInvoker{client: lambda.NewFromConfig(awsCfg), function: function}, nil
}

func (l *LambdaInvoker) Solve(ctx context.Context, p *position.Position) (*solver.Solution, error) {
	payload, err := json.Marshal(&LambdaEvent{
		SolveRequest: SolveRequest{ID: p.ID(), Position: p.String()},
	})
	if err != nil {
		return nil, err
	}
	out, err := l.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(l.function),
		Payload:      payload,
	})
	if err != nil {
		return nil, err
	}
	if out.FunctionError != nil {
		log.Error().Str("function", l.function).Str("function-error", *out.FunctionError).
			Bytes("payload", out.Payload).Msg("lambda-function-error")
		return nil, errors.New("lambda function error: " + *out.FunctionError)
	}
	return DecodeResponse(out.Payload)
}
