package cloudinary

import (
	"bytes"
	"context"
	"errors"

	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("cloudinary is not configured")

type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

func NewCloudinaryUploader(cloud *cld.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cloud}
}

func (u *CloudinaryUploader) UploadBytes(
	ctx context.Context,
	folder string,
	filename string,
	b []byte,
) (interfaces.UploadResult, error) {
	if u == nil || u.cld == nil {
		return interfaces.UploadResult{}, ErrNotConfigured
	}

	res, err := u.cld.Upload.Upload(
		ctx,
		bytes.NewReader(b),
		uploader.UploadParams{
			Folder:       folder,
			PublicID:     filename,
			ResourceType: "image",
		},
	)
	if err != nil {
		return interfaces.UploadResult{}, err
	}
	if res.Error.Message != "" {
		return interfaces.UploadResult{}, errors.New(res.Error.Message)
	}

	return interfaces.UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}
