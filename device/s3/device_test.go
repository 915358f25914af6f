package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/devbitmap/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient is a testify mock of Client.
type MockClient struct {
	mock.Mock
}

func result[T any](args mock.Arguments) (*T, error) {
	if v := args.Get(0); v != nil {
		return v.(*T), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClient) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return result[s3.GetObjectOutput](m.Called(ctx, params))
}

func (m *MockClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	return result[s3.HeadObjectOutput](m.Called(ctx, params))
}

func (m *MockClient) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return result[s3.PutObjectOutput](m.Called(ctx, params))
}

func (m *MockClient) UploadPart(ctx context.Context, params *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return result[s3.UploadPartOutput](m.Called(ctx, params))
}

func (m *MockClient) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return result[s3.CreateMultipartUploadOutput](m.Called(ctx, params))
}

func (m *MockClient) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return result[s3.CompleteMultipartUploadOutput](m.Called(ctx, params))
}

func (m *MockClient) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return result[s3.AbortMultipartUploadOutput](m.Called(ctx, params))
}

func (m *MockClient) onHead(size int64) {
	m.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Bucket == "b" && *in.Key == "k"
	})).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(size)}, nil)
}

func (m *MockClient) onRange(rng, body string) {
	m.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Bucket == "b" && *in.Key == "k" && *in.Range == rng
	})).Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte(body)))}, nil).Once()
}

// capturePut records the body of the next PutObject call.
func (m *MockClient) capturePut(body *[]byte) {
	m.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "b" && *in.Key == "k"
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(*s3.PutObjectInput)
		*body, _ = io.ReadAll(in.Body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()
}

func TestDevice_GetMissingObject(t *testing.T) {
	client := new(MockClient)
	client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, &types.NotFound{})

	dev := NewDevice(client, "b", "k")
	got, err := dev.Get(context.Background(), 10, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, got)
	client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
}

func TestDevice_GetRanges(t *testing.T) {
	client := new(MockClient)
	client.onHead(10)
	client.onRange("bytes=2-5", "2345")
	client.onRange("bytes=6-9", "6789")

	dev := NewDevice(client, "b", "k", WithMaxRangeSize(4))
	got, err := dev.Get(context.Background(), 2, 12)
	require.NoError(t, err)
	assert.Equal(t, append([]byte("23456789"), 0, 0, 0, 0), got)
	client.AssertExpectations(t)
}

func TestDevice_GetPastEnd(t *testing.T) {
	client := new(MockClient)
	client.onHead(4)

	dev := NewDevice(client, "b", "k")
	got, err := dev.Get(context.Background(), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, got)
	client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
}

func TestDevice_PutCreatesObject(t *testing.T) {
	client := new(MockClient)
	client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{})

	var body []byte
	client.capturePut(&body)

	dev := NewDevice(client, "b", "k")
	require.NoError(t, dev.Put(context.Background(), 3, []byte("ab")))
	assert.Equal(t, []byte{0, 0, 0, 'a', 'b'}, body)
	client.AssertExpectations(t)
}

func TestDevice_PutReadModifyWrite(t *testing.T) {
	client := new(MockClient)
	client.onHead(4)
	client.onRange("bytes=0-3", "wxyz")

	var body []byte
	client.capturePut(&body)

	dev := NewDevice(client, "b", "k")
	require.NoError(t, dev.Put(context.Background(), 2, []byte("Q")))
	assert.Equal(t, "wxQz", string(body))
	client.AssertExpectations(t)
}

func TestDevice_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	client := new(MockClient)
	client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, boom)
	dev := NewDevice(client, "b", "k")

	_, err := dev.Get(ctx, 0, 1)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, dev.Put(ctx, 0, []byte{1}), boom)

	_, err = dev.Get(ctx, 0, -1)
	assert.ErrorIs(t, err, device.ErrInvalidLength)

	client = new(MockClient)
	client.onHead(8)
	client.On("GetObject", mock.Anything, mock.Anything).Return(nil, boom)
	dev = NewDevice(client, "b", "k")

	_, err = dev.Get(ctx, 0, 8)
	assert.ErrorIs(t, err, boom)
}

func TestDevice_EmptyPut(t *testing.T) {
	client := new(MockClient)
	dev := NewDevice(client, "b", "k")

	require.NoError(t, dev.Put(context.Background(), 100, nil))
	client.AssertNotCalled(t, "HeadObject", mock.Anything, mock.Anything)
}
