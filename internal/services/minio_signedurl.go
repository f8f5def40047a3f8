package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"velora_back_end/internal/database"
)

// GenerateSignedURL transforme une URL d'objet en URL signée avec expiration
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	bucket := os.Getenv("MINIO_BUCKET")
	reqParams := make(url.Values)

	// Ne garde que le chemin relatif au bucket
	publicPrefix := fmt.Sprintf("http://%s/%s/", os.Getenv("MINIO_ENDPOINT"), bucket)
	key := strings.TrimPrefix(objectPath, publicPrefix)

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
