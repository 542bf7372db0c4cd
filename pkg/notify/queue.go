package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// EventOrderCreated é o tipo do evento publicado na fila.
const EventOrderCreated = "order.created"

// SQSClient define a interface necessária para publicar (permite Mocking)
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// QueueSink publica o pedido criado em uma fila SQS para consumidores
// downstream (impressora da cozinha, analytics).
type QueueSink struct {
	Client   SQSClient
	QueueURL string
}

type orderEvent struct {
	Type  string       `json:"type"`
	Order OrderMessage `json:"order"`
}

func (q *QueueSink) Notify(ctx context.Context, msg OrderMessage) error {
	if q.QueueURL == "" {
		return nil
	}
	body, err := json.Marshal(orderEvent{Type: EventOrderCreated, Order: msg})
	if err != nil {
		return fmt.Errorf("notify: encode order event: %w", err)
	}

	_, err = q.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.QueueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {DataType: aws.String("String"), StringValue: aws.String(EventOrderCreated)},
			"tenantId":  {DataType: aws.String("String"), StringValue: aws.String(msg.TenantID)},
		},
	})
	if err != nil {
		return fmt.Errorf("notify: sqs send failed: %w", err)
	}
	return nil
}
