package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// GetObjectAPI is the slice of the S3 client used by S3Source. *s3.Client
// satisfies it; tests can substitute a stub.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches an object from S3, using its ETag as the version and
// If-None-Match for conditional gets.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	src := &refresh.S3Source{
//	    Client: s3.NewFromConfig(cfg),
//	    Bucket: "my-bucket",
//	    Key:    "configs/routing.json",
//	}
type S3Source struct {
	// Client is the S3 client (from aws-sdk-go-v2).
	Client GetObjectAPI

	// Bucket is the S3 bucket name.
	Bucket string

	// Key is the object key.
	Key string
}

// Fetch implements Source.
func (s *S3Source) Fetch(ctx context.Context, version string) ([]byte, string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	}
	if version != "" {
		input.IfNoneMatch = aws.String(version)
	}

	out, err := s.Client.GetObject(ctx, input)
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "NotModified" {
			return nil, "", ErrNotModified
		}
		return nil, "", fmt.Errorf("refresh: get s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("refresh: read s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return data, aws.ToString(out.ETag), nil
}
