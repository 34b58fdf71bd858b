package services

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/GitNimay/ai-add-generator/internal/application/usecases"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

const MaxUploadSize = 10 * 1024 * 1024 // 10MB

type ParameterService struct{}

func NewParameterService() *ParameterService {
	return &ParameterService{}
}

// ParseUpload reads the optional "image" file and "description" field.
// Either return value is nil when the field was not sent.
func (s *ParameterService) ParseUpload(w http.ResponseWriter, r *http.Request) (*usecases.ImageInput, *string, error) {
	if err := s.parseForm(w, r); err != nil {
		return nil, nil, err
	}

	description := s.getOptionalString(r, "description")

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, description, nil
	}
	if err != nil {
		return nil, nil, apperrors.New(apperrors.InvalidInput, "upload.parse", fmt.Errorf("failed to read image: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, apperrors.New(apperrors.InvalidInput, "upload.parse", fmt.Errorf("failed to read image: %w", err))
	}

	// ブラウザによってはContent-Typeが空になる
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	input := &usecases.ImageInput{
		Data:     data,
		MimeType: mimeType,
	}
	if description != nil {
		input.Description = strings.TrimSpace(*description)
	}

	return input, description, nil
}

// IsHardReset reports whether the reset should also forget the image.
func (s *ParameterService) IsHardReset(r *http.Request) bool {
	return s.getBool(r, "hard", false)
}

func (s *ParameterService) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(MaxUploadSize)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.Newf(apperrors.InvalidInput, "upload.parse", "image is too large (max 10MB)")
	}
	return apperrors.New(apperrors.InvalidInput, "upload.parse", fmt.Errorf("invalid form: %w", err))
}

func (s *ParameterService) getBool(r *http.Request, key string, defaultValue bool) bool {
	value := r.FormValue(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1"
}

func (s *ParameterService) getOptionalString(r *http.Request, key string) *string {
	if r.MultipartForm != nil {
		if values, ok := r.MultipartForm.Value[key]; ok && len(values) > 0 {
			return &values[0]
		}
	}
	if r.PostForm != nil {
		if values, ok := r.PostForm[key]; ok && len(values) > 0 {
			return &values[0]
		}
	}
	return nil
}
