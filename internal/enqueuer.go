package internal

import (
	"encoding/json"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

type Enqueuer struct {
	client       sqsiface.SQSAPI
	delaySeconds int64

	mu        sync.Mutex
	queueURLs map[string]string
}

func (e *Enqueuer) SendMsg(msg interface{}, queue string) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	queueURL, err := e.queueURL(queue)
	if err != nil {
		return err
	}

	_, err = e.client.SendMessage(&sqs.SendMessageInput{
		DelaySeconds: aws.Int64(e.delaySeconds),
		MessageBody:  aws.String(string(msgBytes)),
		QueueUrl:     aws.String(queueURL),
	})
	return err
}

// queueURL resolves a queue name once per warm container.
func (e *Enqueuer) queueURL(queue string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if url, ok := e.queueURLs[queue]; ok {
		return url, nil
	}
	out, err := e.client.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		return "", err
	}
	e.queueURLs[queue] = aws.StringValue(out.QueueUrl)
	return e.queueURLs[queue], nil
}

func NewEnqueuer(client sqsiface.SQSAPI, delaySeconds int64) *Enqueuer {
	return &Enqueuer{
		client:       client,
		delaySeconds: delaySeconds,
		queueURLs:    map[string]string{},
	}
}
