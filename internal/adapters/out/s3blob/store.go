// Package s3blob keeps shipment documents in an S3 bucket.
//
// Objects are laid out as <prefix><namespace>/<digest>-<file name>, where the
// namespace is the shipment's tracking number and the digest is a keyed BLAKE3
// hash of the content. Uploading the same file twice to one shipment lands on
// the same key.
package s3blob

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/zeebo/blake3"
)

// Client is the part of the S3 API the store uses.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string

	// Prefix is prepended to every key, e.g. "documents/".
	Prefix string

	// PublicDomain serves the objects, e.g. a CDN. Empty means the bucket URL.
	PublicDomain string

	// Endpoint overrides the S3 endpoint for S3-compatible stores.
	Endpoint string
}

// documentDomainKey separates document digests from any other BLAKE3 use.
var documentDomainKey = [32]byte{
	'p', 'a', 'r', 'c', 'e', 'l', 't', 'r', 'a', 'c', 'k', '.',
	'd', 'o', 'c', 'u', 'm', 'e', 'n', 't',
}

// Store implements ports.BlobStore.
type Store struct {
	client Client
	cfg    Config
}

// NewStore builds an S3 client from cfg. Without static credentials the
// default AWS credential chain is used.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewStoreWithClient(client, cfg), nil
}

func NewStoreWithClient(client Client, cfg Config) *Store {
	if cfg.Prefix != "" && !strings.HasSuffix(cfg.Prefix, "/") {
		cfg.Prefix += "/"
	}
	return &Store{client: client, cfg: cfg}
}

// Put uploads the document and returns its public URL.
func (s *Store) Put(ctx context.Context, namespace string, doc ports.Document) (string, error) {
	if err := validNamespace(namespace); err != nil {
		return "", err
	}
	if len(doc.Content) == 0 {
		return "", errs.NewValueIsRequiredError("content")
	}

	key := s.namespacePrefix(namespace) + digest(doc.Content) + "-" + safeFileName(doc.FileName)
	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(doc.Content),
		ContentLength: aws.Int64(int64(len(doc.Content))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return s.url(key), nil
}

// DeleteNamespace removes every object under the namespace, one listing page
// at a time.
func (s *Store) DeleteNamespace(ctx context.Context, namespace string) error {
	if err := validNamespace(namespace); err != nil {
		return err
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(s.namespacePrefix(namespace)),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", namespace, err)
		}
		if len(page.Contents) == 0 {
			continue
		}

		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}

		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.cfg.Bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", namespace, err)
		}
		if out != nil && len(out.Errors) > 0 {
			failed := make([]error, 0, len(out.Errors))
			for _, e := range out.Errors {
				failed = append(failed, fmt.Errorf("%s: %s", aws.ToString(e.Key), aws.ToString(e.Message)))
			}
			return fmt.Errorf("failed to delete objects of %s: %w", namespace, errors.Join(failed...))
		}
	}
	return nil
}

// ListNamespaces returns, sorted, the namespaces whose newest object was
// written before olderThan.
func (s *Store) ListNamespaces(ctx context.Context, olderThan time.Time) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(s.cfg.Prefix),
	})

	newest := make(map[string]time.Time)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		for _, obj := range page.Contents {
			rest := strings.TrimPrefix(aws.ToString(obj.Key), s.cfg.Prefix)
			namespace, _, ok := strings.Cut(rest, "/")
			if !ok || namespace == "" {
				continue
			}
			modified := aws.ToTime(obj.LastModified)
			if modified.After(newest[namespace]) {
				newest[namespace] = modified
			}
		}
	}

	namespaces := make([]string, 0, len(newest))
	for namespace, modified := range newest {
		if modified.Before(olderThan) {
			namespaces = append(namespaces, namespace)
		}
	}
	sort.Strings(namespaces)
	return namespaces, nil
}

func (s *Store) namespacePrefix(namespace string) string {
	return s.cfg.Prefix + namespace + "/"
}

func (s *Store) url(key string) string {
	if s.cfg.PublicDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cfg.PublicDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func validNamespace(namespace string) error {
	if namespace == "" {
		return errs.NewValueIsRequiredError("namespace")
	}
	if strings.ContainsAny(namespace, "/\\") {
		return errs.NewValueIsInvalidErrorWithCause("namespace", fmt.Errorf("%q contains a path separator", namespace))
	}
	return nil
}

// digest is the first 16 bytes of the keyed BLAKE3 hash, hex encoded.
func digest(content []byte) string {
	hasher, err := blake3.NewKeyed(documentDomainKey[:])
	if err != nil {
		// Only possible with a key that is not 32 bytes long.
		panic(err)
	}
	_, _ = hasher.Write(content)
	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// safeFileName keeps the base name and replaces anything outside
// [A-Za-z0-9._-] so the key stays URL friendly.
func safeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "document"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
