package service

import (
	"calibration_quiz/internal/config"
	"calibration_quiz/internal/quiz"
	"calibration_quiz/internal/util"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider 定义题库文件的存储接口
type StorageProvider interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error
}

// LocalStorageProvider 本地存储实现，name 相对 Root 解析
type LocalStorageProvider struct {
	Root string
}

func (p *LocalStorageProvider) path(name string) string {
	if filepath.IsAbs(name) || p.Root == "" {
		return name
	}
	return filepath.Join(p.Root, name)
}

func (p *LocalStorageProvider) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(p.path(name))
}

func (p *LocalStorageProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	dst := p.path(name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Client *minio.Client
	Bucket string
}

func NewMinioStorageProvider(cfg *config.QuizConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Client: client, Bucket: cfg.MinioBucket}, nil
}

func (p *MinioStorageProvider) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := p.Client.GetObject(ctx, p.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat surfaces a missing object here instead of on first read.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	exists, err := p.Client.BucketExists(ctx, p.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := p.Client.MakeBucket(ctx, p.Bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}
	_, err = p.Client.PutObject(ctx, p.Bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// StorageService loads the question bank from the configured source.
type StorageService struct {
	Provider StorageProvider
	Cfg      *config.QuizConfig
}

func NewStorageService(cfg *config.QuizConfig) (*StorageService, error) {
	var provider StorageProvider
	switch cfg.Source {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(cfg)
		if err != nil {
			return nil, err
		}
		provider = p
	case util.StorageLocal, "":
		provider = &LocalStorageProvider{}
	default:
		return nil, fmt.Errorf("unsupported question source %q", cfg.Source)
	}
	return &StorageService{Provider: provider, Cfg: cfg}, nil
}

// LoadBank reads and decodes the configured bank. The format follows the
// file extension.
func (s *StorageService) LoadBank(ctx context.Context) (*quiz.Bank, error) {
	r, err := s.Provider.Open(ctx, s.Cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open question bank %s: %w", s.Cfg.Path, err)
	}
	defer r.Close()
	return quiz.LoadBank(r, quiz.FormatFromPath(s.Cfg.Path))
}

// PublishBank validates a local bank file and uploads it to the configured
// bank location.
func (s *StorageService) PublishBank(ctx context.Context, localPath string) (int, error) {
	format := quiz.FormatFromPath(localPath)
	if format != quiz.FormatFromPath(s.Cfg.Path) {
		return 0, fmt.Errorf("bank %s is %s but %s expects %s", localPath, format, s.Cfg.Path, quiz.FormatFromPath(s.Cfg.Path))
	}

	f, err := os.Open(localPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	bank, err := quiz.LoadBank(f, format)
	if err != nil {
		return 0, err
	}
	if bank.Len() < s.Cfg.SampleSize {
		return 0, fmt.Errorf("%w: have %d, need %d", quiz.ErrInsufficientBank, bank.Len(), s.Cfg.SampleSize)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	contentType := "application/json"
	if format == quiz.FormatYAML {
		contentType = "application/yaml"
	}
	if err := s.Provider.Upload(ctx, s.Cfg.Path, f, info.Size(), contentType); err != nil {
		return 0, err
	}
	return bank.Len(), nil
}
