package s3

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const uriScheme = "s3://"

// ItfS3 fetches model files kept in a bucket.
type ItfS3 interface {
	Download(uri string) ([]byte, error)
}

type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type s3Client struct {
	client  *s3.S3
	session *session.Session
}

func New(config Config) (ItfS3, error) {
	sess, err := newSession(config)
	if err != nil {
		return nil, err
	}

	return &s3Client{
		client:  s3.New(sess),
		session: sess,
	}, nil
}

func IsURI(path string) bool {
	return strings.HasPrefix(path, uriScheme)
}

// ParseURI splits s3://bucket/key into its parts.
func ParseURI(uri string) (bucket, key string, err error) {
	if !IsURI(uri) {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse s3 uri: %w", err)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri needs both bucket and key: %q", uri)
	}

	return bucket, key, nil
}

func (s *s3Client) Download(uri string) ([]byte, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	_, err = s.client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("file does not exist: %w", err)
	}

	downloader := s3manager.NewDownloader(s.session)
	buf := aws.NewWriteAtBuffer([]byte{})

	if _, err := downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", uri, err)
	}

	return buf.Bytes(), nil
}

func newSession(config Config) (*session.Session, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}

	// Without explicit keys the default provider chain is used.
	if config.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			config.AccessKeyID,
			config.SecretAccessKey,
			"",
		)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}

	return sess, nil
}
