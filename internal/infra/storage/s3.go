package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/config"
)

// Fotos de "antes e depois" não precisam de resolução de impressão;
// 1280px no lado maior mantém o upload leve no 4G da equipe.
const maxPhotoEdge = 1280

const webpQuality = 80

type PhotoStore struct {
	client *s3.Client
	bucket string
}

func NewPhotoStore(cfg *config.Config) *PhotoStore {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	// endpoint customizado (minio em dev) exige path style
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &PhotoStore{
		client: s3.New(opts),
		bucket: cfg.S3Bucket,
	}
}

// SaveWorkPhoto decodifica (jpeg/png), reduz para o tamanho máximo,
// reencoda em webp e sobe para o bucket. Retorna a chave do objeto.
func (p *PhotoStore) SaveWorkPhoto(
	ctx context.Context,
	appointmentID uint,
	r io.Reader,
) (string, error) {

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decodificando imagem: %w", err)
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("convertendo para webp: %w", err)
	}

	objectKey := fmt.Sprintf("work-photos/%d.webp", appointmentID)

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("enviando para o bucket: %w", err)
	}

	return objectKey, nil
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPhotoEdge && h <= maxPhotoEdge {
		return src
	}

	if w > h {
		h = h * maxPhotoEdge / w
		w = maxPhotoEdge
	} else {
		w = w * maxPhotoEdge / h
		h = maxPhotoEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
