package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrUploadValidation is returned for malformed presign requests.
var ErrUploadValidation = errors.New("upload request validation error")

// Asset kinds accepted by the admin upload surface.
const (
	AssetKindImage = "image"
	AssetKindVideo = "video"
)

// PresignUploadRequest asks for a one-shot upload URL for a product asset.
type PresignUploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
}

// PresignUploadResponse carries the URL to PUT the asset to and the key it
// will live under.
type PresignUploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// UploadService hands out presigned S3 PUT URLs so the admin panel uploads
// product images and reel videos directly to the bucket.
type UploadService interface {
	PresignUpload(ctx context.Context, req PresignUploadRequest) (*PresignUploadResponse, error)
}

type uploadService struct {
	client *s3.Client
	bucket string
}

// NewUploadService loads AWS configuration and builds the S3-backed upload
// service.
func NewUploadService(ctx context.Context, region, bucket string) (UploadService, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &uploadService{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (s *uploadService) PresignUpload(ctx context.Context, req PresignUploadRequest) (*PresignUploadResponse, error) {
	if strings.TrimSpace(req.FileName) == "" || strings.TrimSpace(req.FileType) == "" {
		return nil, fmt.Errorf("%w: fileName and fileType are required", ErrUploadValidation)
	}
	var prefix string
	switch req.Kind {
	case AssetKindImage:
		prefix = "product-images/"
	case AssetKindVideo:
		prefix = "product-videos/"
	default:
		return nil, fmt.Errorf("%w: kind must be %q or %q", ErrUploadValidation, AssetKindImage, AssetKindVideo)
	}

	key := prefix + time.Now().Format("20060102150405") + "-" + req.FileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.FileType),
	}
	presigner := s3.NewPresignClient(s.client)
	presigned, err := presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}
	return &PresignUploadResponse{URL: presigned.URL, Key: key}, nil
}
