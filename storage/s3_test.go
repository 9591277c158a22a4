package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
	failGet error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: map[string][]byte{}}
}

func (f *fakeObjectAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = b
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	api := newFakeObjectAPI()
	store := NewS3StoreWithClient(api, "console", "streamdesk/")
	assert.Equal(t, DriverS3, store.Driver())
	exerciseKVStore(t, store)

	_, ok := api.objects["console/streamdesk/accounts.json"]
	assert.True(t, ok)
	require.NotEmpty(t, api.puts)
	assert.Equal(t, "application/json", aws.ToString(api.puts[0].ContentType))
	assert.NoError(t, store.Close())
}

func TestS3Store_GetError(t *testing.T) {
	api := newFakeObjectAPI()
	api.failGet = errors.New("access denied")
	store := NewS3StoreWithClient(api, "console", "")

	_, err := store.Get(context.Background(), "accounts")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

