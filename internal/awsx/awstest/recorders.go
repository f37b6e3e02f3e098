package awstest

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQS records every SendMessage call. Set Err to make sends fail.
type SQS struct {
	mu   sync.Mutex
	Sent []*sqs.SendMessageInput
	Err  error
}

func (s *SQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Sent = append(s.Sent, params)
	return &sqs.SendMessageOutput{}, nil
}

// SentBodies returns the message bodies in send order.
func (s *SQS) SentBodies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	bodies := make([]string, 0, len(s.Sent))
	for _, m := range s.Sent {
		if m.MessageBody != nil {
			bodies = append(bodies, *m.MessageBody)
		}
	}
	return bodies
}

// SES records every SendEmail call. Set Err to make sends fail.
type SES struct {
	mu   sync.Mutex
	Sent []*ses.SendEmailInput
	Err  error
}

func (s *SES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Sent = append(s.Sent, params)
	return &ses.SendEmailOutput{}, nil
}

// CloudWatch records every PutMetricData call. Set Err to make publishes fail.
type CloudWatch struct {
	mu   sync.Mutex
	Data []*cloudwatch.PutMetricDataInput
	Err  error
}

func (c *CloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	c.Data = append(c.Data, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}
