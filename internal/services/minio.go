package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"velora_back_end/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadFile envoie un fichier dans le bucket sous le préfixe donné
// (ex: "products", "profiles") et retourne l'URL de l'objet.
func UploadFile(prefix string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	// Préfixe aléatoire : deux uploads du même nom de fichier ne se recouvrent pas
	objectName := path.Join(prefix, uuid.NewString()+"-"+file.Filename)

	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}
