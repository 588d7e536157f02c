package app

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotAnImage is returned for uploads whose content is not an image.
var ErrNotAnImage = errors.New("file is not an image")

// dataURL encodes content as a base64 data URL carrying its detected type.
func dataURL(content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrNotAnImage
	}
	mt := mimetype.Detect(content)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotAnImage, mt.String())
	}
	// drop parameters such as "; charset=utf-8" from svg detection
	mediaType, _, _ := strings.Cut(mt.String(), ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(content), nil
}
