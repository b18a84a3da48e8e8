package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// API is the subset of the SNS client used by Publisher.
type API interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Publisher delivers notification payloads to SNS topics. Logical topic names
// such as "email.send" are mapped to topic ARNs.
type Publisher struct {
	client API
	arns   map[string]string
}

func NewClient(awsCfg aws.Config, endpoint string) *sns.Client {
	var opts []func(*sns.Options)
	if endpoint != "" {
		opts = append(opts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	return sns.NewFromConfig(awsCfg, opts...)
}

func NewPublisher(client API, arns map[string]string) *Publisher {
	return &Publisher{client: client, arns: arns}
}

func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	arn, ok := p.arns[topic]
	if !ok || arn == "" {
		return fmt.Errorf("no SNS topic ARN configured for %q", topic)
	}
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(arn),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"topic": {DataType: aws.String("String"), StringValue: aws.String(topic)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish %s: %w", topic, err)
	}
	return nil
}
