package s3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobprep-backend/internal/shared/storage/object"
)

type fakeS3 struct {
	objects map[string][]byte
	lastPut *s3.PutObjectInput
}

func newFake() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestObjectKey(t *testing.T) {
	cases := map[string]struct{ prefix, key, want string }{
		"no prefix":      {"", "exported_pdfs/report_user_1.pdf", "exported_pdfs/report_user_1.pdf"},
		"plain prefix":   {"root", "exported_docs/a.docx", "root/exported_docs/a.docx"},
		"slashed prefix": {"/root/", "/exported_docs/a.docx", "root/exported_docs/a.docx"},
		"nested prefix":  {"root/sub", "exported_docs/a.docx", "root/sub/exported_docs/a.docx"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewWithClient(newFake(), Options{Bucket: "b", Prefix: tc.prefix})
			assert.Equal(t, tc.want, store.objectKey(tc.key))
		})
	}
}

func TestPutThenOpen(t *testing.T) {
	fake := newFake()
	store := NewWithClient(fake, Options{Bucket: "bucket", Prefix: "/jobprep/"})

	n, err := store.Put(context.Background(), "exported_pdfs/report_user_2.pdf", "application/pdf", strings.NewReader("%PDF-1.3"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	require.NotNil(t, fake.lastPut)
	assert.Equal(t, "jobprep/exported_pdfs/report_user_2.pdf", aws.ToString(fake.lastPut.Key))
	assert.Equal(t, int64(8), aws.ToInt64(fake.lastPut.ContentLength))
	assert.Equal(t, `attachment; filename="report_user_2.pdf"`, aws.ToString(fake.lastPut.ContentDisposition))
	assert.Equal(t, s3types.ServerSideEncryptionAes256, fake.lastPut.ServerSideEncryption)

	rc, err := store.Open(context.Background(), "exported_pdfs/report_user_2.pdf")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(body))
}

func TestPutWithKMSKey(t *testing.T) {
	fake := newFake()
	store := NewWithClient(fake, Options{Bucket: "bucket", KMSKeyID: " kms-1 "})

	_, err := store.Put(context.Background(), "exported_docs/a.docx", "application/octet-stream", strings.NewReader("PK"))
	require.NoError(t, err)
	assert.Equal(t, s3types.ServerSideEncryptionAwsKms, fake.lastPut.ServerSideEncryption)
	assert.Equal(t, "kms-1", aws.ToString(fake.lastPut.SSEKMSKeyId))
}

func TestOpenMissingKey(t *testing.T) {
	store := NewWithClient(newFake(), Options{Bucket: "bucket"})

	_, err := store.Open(context.Background(), "exported_docs/none.docx")
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Options{Region: "us-east-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET")
}
