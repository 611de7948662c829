// Package backup copies collection documents to and from an S3-compatible
// bucket (AWS S3 or MinIO). Objects are stored as <prefix>/<name>.json.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/config"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/storage"
)

// ObjectClient is the subset of *s3.Client used here.
type ObjectClient interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectClient {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type Service struct {
	backend storage.Backend
	cfg     config.BackupConfig
	logger  logging.Logger
	client  ObjectClient
}

func New(backend storage.Backend, cfg config.BackupConfig, logger logging.Logger) *Service {
	return &Service{backend: backend, cfg: cfg, logger: logger.With("bucket", cfg.Bucket)}
}

func (s *Service) getClient(ctx context.Context) (ObjectClient, error) {
	if s.client != nil {
		return s.client, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	s.client = newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return s.client, nil
}

func (s *Service) key(name string) string {
	return path.Join(s.cfg.Prefix, name+".json")
}

// Push uploads every stored document and returns the uploaded names.
func (s *Service) Push(ctx context.Context) ([]string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.backend.Names(ctx)
	if err != nil {
		return nil, err
	}

	pushed := make([]string, 0, len(names))
	for _, name := range names {
		data, err := s.backend.Load(ctx, name)
		if err != nil {
			return pushed, err
		}
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.cfg.Bucket),
			Key:         aws.String(s.key(name)),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return pushed, fmt.Errorf("failed to upload %s: %w", name, err)
		}
		s.logger.Debug(ctx, "document uploaded", "collection", name, "bytes", len(data))
		pushed = append(pushed, name)
	}

	s.logger.Info(ctx, "backup pushed", "documents", len(pushed))
	return pushed, nil
}

// Pull downloads the named documents and replaces local copies. Only known
// collections may be named. Names without a remote object are skipped. A
// remote object that is not a JSON array is rejected before anything local
// is overwritten for that name.
func (s *Service) Pull(ctx context.Context, names []string) ([]string, error) {
	for _, name := range names {
		if !slices.Contains(models.Collections, name) {
			return nil, fmt.Errorf("%w: unknown collection %q", common.ErrorValidation, name)
		}
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	pulled := make([]string, 0, len(names))
	for _, name := range names {
		out, err := client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(s.key(name)),
		})
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			s.logger.Debug(ctx, "no remote copy", "collection", name)
			continue
		}
		if err != nil {
			return pulled, fmt.Errorf("failed to download %s: %w", name, err)
		}

		data, err := io.ReadAll(out.Body)
		out.Body.Close()
		if err != nil {
			return pulled, fmt.Errorf("failed to read %s: %w", name, err)
		}

		if err := checkArray(data); err != nil {
			return pulled, fmt.Errorf("%w: remote %s: %w", common.ErrorCorruptDocument, name, err)
		}
		if err := s.backend.Save(ctx, name, data); err != nil {
			return pulled, err
		}
		pulled = append(pulled, name)
	}

	s.logger.Info(ctx, "backup pulled", "documents", len(pulled))
	return pulled, nil
}

// checkArray accepts only a well-formed JSON array.
func checkArray(data []byte) error {
	if t := bytes.TrimSpace(data); len(t) == 0 || t[0] != '[' {
		return errors.New("not a JSON array")
	}
	var items []json.RawMessage
	return json.Unmarshal(data, &items)
}
