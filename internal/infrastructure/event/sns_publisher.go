package event

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/stackfood/customers/internal/domain/shared"
	"go.uber.org/zap"
)

// SNSAPI is the subset of the SNS client used by the publisher
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes domain events to an SNS topic. Publishing is
// fire-and-forget: every failure is logged and swallowed, never surfaced
// to the calling workflow.
type SNSPublisher struct {
	client   SNSAPI
	topicARN string
	logger   *zap.Logger
}

// NewSNSPublisher creates a publisher for the given topic
func NewSNSPublisher(client SNSAPI, topicARN string, logger *zap.Logger) *SNSPublisher {
	return &SNSPublisher{
		client:   client,
		topicARN: topicARN,
		logger:   logger.Named("sns"),
	}
}

// Publish serializes each event to JSON and publishes it with an eventType
// message attribute for subscriber-side filtering.
func (p *SNSPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) {
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			p.logger.Error("failed to serialize event",
				zap.String("event_type", e.EventType()),
				zap.String("aggregate_id", e.AggregateID().String()),
				zap.Error(err),
			)
			continue
		}

		_, err = p.client.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(p.topicARN),
			Message:  aws.String(string(payload)),
			MessageAttributes: map[string]types.MessageAttributeValue{
				"eventType": {
					DataType:    aws.String("String"),
					StringValue: aws.String(e.EventType()),
				},
			},
		})
		if err != nil {
			p.logger.Error("failed to publish event",
				zap.String("event_type", e.EventType()),
				zap.String("aggregate_id", e.AggregateID().String()),
				zap.Error(err),
			)
			continue
		}

		p.logger.Debug("event published",
			zap.String("event_type", e.EventType()),
			zap.String("aggregate_id", e.AggregateID().String()),
		)
	}
}

var _ shared.EventPublisher = (*SNSPublisher)(nil)
