package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/postboard/internal/common"
	sc "github.com/dmitrijs2005/postboard/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// PresignExpiry is how long upload and download URLs stay valid.
const PresignExpiry = 15 * time.Minute

// MediaService hands out presigned S3 URLs for post images. The bytes
// never pass through the API server.
type MediaService struct {
	config *sc.Config
	posts  *PostService
	now    func() time.Time
}

func NewMediaService(cfg *sc.Config, posts *PostService) *MediaService {
	return &MediaService{config: cfg, posts: posts, now: time.Now}
}

// Enabled reports whether a bucket is configured.
func (s *MediaService) Enabled() bool {
	return s.config.ImagesEnabled()
}

func (s *MediaService) storageKey(postID string) string {
	d := s.now().UTC()
	return fmt.Sprintf("posts/%d/%d/%d/%s/%v", d.Year(), d.Month(), d.Day(), postID, uuid.New())
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// RequestUpload reserves a fresh object key for requester's own post,
// records it on the post and returns a presigned PUT URL for it.
func (s *MediaService) RequestUpload(ctx context.Context, requester common.UserID, postID string) (string, string, error) {
	if !s.Enabled() {
		return "", "", common.ErrorUnavailable
	}

	if _, err := s.posts.GetOwned(ctx, requester, postID); err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", internal(err)
	}

	bucket := s.config.S3Bucket
	key := s.storageKey(postID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", "", internal(err)
	}

	if err := s.posts.AttachImage(ctx, requester, postID, key); err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// DownloadURL returns a presigned GET URL for the image of a post;
// common.ErrorNotFound when the post has none.
func (s *MediaService) DownloadURL(ctx context.Context, postID string) (string, error) {
	if !s.Enabled() {
		return "", common.ErrorUnavailable
	}

	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return "", err
	}
	if post.ImageKey == "" {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", internal(err)
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &post.ImageKey,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", internal(err)
	}
	return req.URL, nil
}
