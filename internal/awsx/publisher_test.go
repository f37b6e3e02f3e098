package awsx

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type sqsRecorder struct {
	sent []*sqs.SendMessageInput
	err  error
}

func (r *sqsRecorder) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, params)
	return &sqs.SendMessageOutput{}, nil
}

func TestSendOrderConfirmation(t *testing.T) {
	rec := &sqsRecorder{}
	p := NewPublisher(rec, "https://sqs.test/orders")

	err := p.SendOrderConfirmation(context.Background(), ConfirmationMessage{
		OrderID:       "o-1",
		User:          "u-1",
		CorrelationID: "c-1",
	}, map[string]string{"source": "api"})
	if err != nil {
		t.Fatalf("SendOrderConfirmation error: %v", err)
	}

	if len(rec.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(rec.sent))
	}
	input := rec.sent[0]
	if *input.QueueUrl != "https://sqs.test/orders" {
		t.Fatalf("unexpected queue url: %s", *input.QueueUrl)
	}

	var msg ConfirmationMessage
	if err := json.Unmarshal([]byte(*input.MessageBody), &msg); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if msg.OrderID != "o-1" || msg.User != "u-1" || msg.CorrelationID != "c-1" {
		t.Fatalf("body roundtrip mismatch: %+v", msg)
	}

	attr, ok := input.MessageAttributes["source"]
	if !ok {
		t.Fatal("missing source attribute")
	}
	if *attr.DataType != "String" || *attr.StringValue != "api" {
		t.Fatalf("unexpected attribute: %+v", attr)
	}
}

func TestSendOrderConfirmationNoAttributes(t *testing.T) {
	rec := &sqsRecorder{}
	p := NewPublisher(rec, "https://sqs.test/orders")

	if err := p.SendOrderConfirmation(context.Background(), ConfirmationMessage{OrderID: "o-1"}, nil); err != nil {
		t.Fatalf("SendOrderConfirmation error: %v", err)
	}
	if rec.sent[0].MessageAttributes != nil {
		t.Fatalf("expected no attributes, got %v", rec.sent[0].MessageAttributes)
	}
}

func TestSendOrderConfirmationError(t *testing.T) {
	rec := &sqsRecorder{err: context.DeadlineExceeded}
	p := NewPublisher(rec, "https://sqs.test/orders")

	if err := p.SendOrderConfirmation(context.Background(), ConfirmationMessage{OrderID: "o-1"}, nil); err == nil {
		t.Fatal("expected error")
	}
}
