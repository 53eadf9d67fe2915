package sns

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	input *awssns.PublishInput
	err   error
}

func (f *fakeAPI) Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &awssns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

func TestClient_Publish(t *testing.T) {
	api := &fakeAPI{}
	c := NewClient(api, "arn:aws:sns:us-east-1:000000000000:events")

	id, err := c.Publish(context.Background(), "S3 file uploaded: a.json", "S3 File Upload")
	require.NoError(t, err)
	assert.Equal(t, "sns-1", id)
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:events", aws.ToString(api.input.TopicArn))
	assert.Equal(t, "S3 File Upload", aws.ToString(api.input.Subject))
}

func TestClient_PublishWithoutSubject(t *testing.T) {
	api := &fakeAPI{}
	c := NewClient(api, "arn")

	_, err := c.Publish(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Nil(t, api.input.Subject)
}

func TestClient_PublishError(t *testing.T) {
	api := &fakeAPI{err: errors.New("AuthorizationError")}
	c := NewClient(api, "arn")

	_, err := c.Publish(context.Background(), "hello", "")
	assert.ErrorContains(t, err, "AuthorizationError")
}
