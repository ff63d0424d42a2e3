// Package media uploads recipe images to the backend. Uploads get a much
// longer deadline than regular API calls; a photo on a slow kitchen Wi-Fi
// should not be cut off by the 12s request budget.
package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	apierrors "github.com/tinkeroneo/cook-go/internal/errors"
	"github.com/tinkeroneo/cook-go/internal/types"
)

// DefaultUploadTimeout bounds a single image upload.
const DefaultUploadTimeout = 60 * time.Second

// UploadResult is the backend's record of a stored image.
type UploadResult struct {
	Reference string `json:"reference"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// Uploader is a thin client for the image endpoint.
type Uploader struct {
	rc      *resty.Client
	baseURL string
}

// NewUploader builds an Uploader authenticated with apiKey.
func NewUploader(baseURL, apiKey string, timeout time.Duration) *Uploader {
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetAuthToken(apiKey)
	return &Uploader{rc: rc, baseURL: baseURL}
}

// UploadImage streams the image for a recipe and returns the stored
// reference to put into Recipe.Image.
func (u *Uploader) UploadImage(ctx context.Context, spaceID, recipeID, filename string, r io.Reader) (*UploadResult, error) {
	if err := types.ValidateSpaceID(spaceID); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(recipeID, "recipeId"); err != nil {
		return nil, err
	}

	var result UploadResult
	resp, err := u.rc.R().
		SetContext(ctx).
		SetFileReader("image", filename, r).
		SetResult(&result).
		Post(fmt.Sprintf("%s/api/spaces/%s/recipes/%s/image", u.baseURL, url.PathEscape(spaceID), url.PathEscape(recipeID)))
	if err != nil {
		return nil, apierrors.NewNetworkError("upload image", err)
	}
	if resp.IsError() {
		return nil, apierrors.NewHTTPError(resp.StatusCode(), resp.String(), "upload image")
	}
	return &result, nil
}
