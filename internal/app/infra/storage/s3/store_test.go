package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilpotu/aws-s3-service/internal/app/pkg/outcome"
)

// fakeAPI 内存中的 bucket
type fakeAPI struct {
	objects      map[string][]byte
	contentTypes map[string]string
	getErr       error
	putErr       error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeAPI) GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeAPI) PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(params.Key)
	f.objects[key] = data
	f.contentTypes[key] = aws.ToString(params.ContentType)
	return &awss3.PutObjectOutput{}, nil
}

func TestStore_UploadAndRead(t *testing.T) {
	api := newFakeAPI()
	store := NewStore(api, "bucket")
	ctx := context.Background()

	require.NoError(t, store.UploadJSON(ctx, "docs/a.json", map[string]interface{}{"name": "alice"}))
	assert.Equal(t, "application/json", api.contentTypes["docs/a.json"])
	assert.Contains(t, string(api.objects["docs/a.json"]), "\n  \"name\"")

	content, status, err := store.ReadJSON(ctx, "docs/a.json")
	require.NoError(t, err)
	assert.Equal(t, outcome.Found, status)
	assert.Equal(t, "alice", content["name"])
}

func TestStore_ReadMissingKey(t *testing.T) {
	store := NewStore(newFakeAPI(), "bucket")

	content, status, err := store.ReadJSON(context.Background(), "missing.json")
	require.NoError(t, err)
	assert.Equal(t, outcome.NotFound, status)
	assert.Nil(t, content)
}

func TestStore_ReadProviderError(t *testing.T) {
	api := newFakeAPI()
	api.getErr = errors.New("AccessDenied")
	store := NewStore(api, "bucket")

	_, status, err := store.ReadJSON(context.Background(), "a.json")
	assert.Error(t, err)
	assert.Equal(t, outcome.Unknown, status)
}

func TestStore_ReadInvalidJSON(t *testing.T) {
	api := newFakeAPI()
	api.objects["bad.json"] = []byte("not-json")
	store := NewStore(api, "bucket")

	_, _, err := store.ReadJSON(context.Background(), "bad.json")
	assert.ErrorContains(t, err, "decode object bad.json")
}

func TestStore_UpdateJSON(t *testing.T) {
	api := newFakeAPI()
	api.objects["u.json"] = []byte(`{"name":"alice","city":"paris"}`)
	store := NewStore(api, "bucket")

	merged, status, err := store.UpdateJSON(context.Background(), "u.json", map[string]interface{}{"city": "berlin", "age": 30})
	require.NoError(t, err)
	assert.Equal(t, outcome.Updated, status)
	assert.Equal(t, "alice", merged["name"])
	assert.Equal(t, "berlin", merged["city"])

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(api.objects["u.json"], &stored))
	assert.Equal(t, float64(30), stored["age"])
}

func TestStore_UpdateNullDocument(t *testing.T) {
	api := newFakeAPI()
	api.objects["doc.json"] = []byte("null")
	store := NewStore(api, "bucket")

	_, status, err := store.ReadJSON(context.Background(), "doc.json")
	assert.ErrorContains(t, err, "not a JSON object")
	assert.Equal(t, outcome.Unknown, status)

	assert.NotPanics(t, func() {
		_, status, err = store.UpdateJSON(context.Background(), "doc.json", map[string]interface{}{"a": 1})
	})
	assert.ErrorContains(t, err, "decode object doc.json")
	assert.Equal(t, outcome.Unknown, status)
	assert.Equal(t, "null", string(api.objects["doc.json"]))
}

func TestStore_UpdateMissingKey(t *testing.T) {
	api := newFakeAPI()
	store := NewStore(api, "bucket")

	_, status, err := store.UpdateJSON(context.Background(), "missing.json", map[string]interface{}{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, outcome.NotFound, status)
	assert.Empty(t, api.objects)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&types.NoSuchKey{}))
	assert.True(t, IsNotFound(&types.NotFound{}))
	assert.True(t, IsNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.False(t, IsNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, IsNotFound(errors.New("timeout")))
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "users/u-1/personal.json", UserKey("u-1", KindPersonal))
	assert.True(t, IsUserKind(KindHealth))
	assert.False(t, IsUserKind(KindAll))
}
