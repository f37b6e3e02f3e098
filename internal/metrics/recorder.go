// Package metrics emits operational counters to CloudWatch.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
)

// Recorder publishes metric data under one namespace. A failed publish is
// logged and never fails the caller.
type Recorder struct {
	client    awsx.CloudWatchAPI
	namespace string
	logger    *slog.Logger
	nowFunc   func() time.Time
}

func NewRecorder(client awsx.CloudWatchAPI, namespace string, logger *slog.Logger) *Recorder {
	return &Recorder{
		client:    client,
		namespace: namespace,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// Count publishes a count metric.
func (r *Recorder) Count(ctx context.Context, name string, value float64) {
	if r == nil || r.client == nil {
		return
	}
	now := r.nowFunc()
	input := &cloudwatch.PutMetricDataInput{
		Namespace: &r.namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &name,
				Value:      &value,
				Unit:       cwtypes.StandardUnitCount,
				Timestamp:  &now,
			},
		},
	}
	if _, err := r.client.PutMetricData(ctx, input); err != nil {
		r.logger.Warn("put metric data", "metric", name, "error", err)
	}
}
