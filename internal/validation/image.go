package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const MaxImageKilobytes = 2048

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Image checks an uploaded file against the id card image rules and records
// failures under field. A nil header is reported as missing when required.
func Image(errs Errors, field string, fh *multipart.FileHeader, required bool) {
	attr := Attribute(field)
	if fh == nil {
		if required {
			errs.Add(field, fmt.Sprintf("The %s field is required.", attr))
		}
		return
	}

	contentType, err := sniff(fh)
	if err != nil {
		errs.Add(field, fmt.Sprintf("The %s failed to upload.", attr))
		return
	}
	if !strings.HasPrefix(contentType, "image/") {
		errs.Add(field, fmt.Sprintf("The %s field must be an image.", attr))
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExtensions[ext] || !imageContentTypes[contentType] {
		errs.Add(field, fmt.Sprintf("The %s field must be a file of type: jpeg, png, jpg, gif.", attr))
	}
	if fh.Size > MaxImageKilobytes*1024 {
		errs.Add(field, fmt.Sprintf("The %s field must not be greater than %d kilobytes.", attr, MaxImageKilobytes))
	}
}

func sniff(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
