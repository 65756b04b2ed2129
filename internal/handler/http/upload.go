package http

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/MKhiriev/go-onboard/models"
)

const (
	fieldProfilePicture = "profilePicture"
	fieldCertificate    = "certificate"

	// multipartMemory is kept in memory by ParseMultipartForm; the rest of
	// the form spills to temporary files.
	multipartMemory = 8 << 20

	jpegQuality = 80

	// maxImagePixels caps the decoded size of an upload; a small PNG can
	// declare dimensions that need gigabytes once decoded.
	maxImagePixels = 40_000_000

	contentTypePDF  = "application/pdf"
	contentTypeJPEG = "image/jpeg"
)

type artifactKind int

const (
	kindImage artifactKind = iota
	kindPDF
)

func init() {
	// pdfcpu otherwise writes a config directory under the user's home.
	api.DisableConfigDir()
}

// http.DetectContentType reports both .jpg and .jpeg as image/jpeg.
var imageContentTypes = map[string]bool{
	contentTypeJPEG: true,
	"image/png":     true,
}

// parseRegistrationForm bounds the whole request to two files plus the text
// fields and parses it.
func (h *Handler) parseRegistrationForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUploadSize+(1<<20))

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return ErrFileTooLarge
		}
		return fmt.Errorf("%w: %w", ErrInvalidMultipartForm, err)
	}

	return nil
}

// readArtifact loads a form file, checks its sniffed content type against
// kind and re-encodes images as JPEG when that makes them smaller.
func (h *Handler) readArtifact(r *http.Request, field string, kind artifactKind) (models.Artifact, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return models.Artifact{}, ErrMissingFile
	}
	if err != nil {
		return models.Artifact{}, fmt.Errorf("%w: %w", ErrInvalidMultipartForm, err)
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		return models.Artifact{}, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, field, header.Size)
	}

	buf, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		return models.Artifact{}, fmt.Errorf("%w: %w", ErrInvalidMultipartForm, err)
	}
	if int64(len(buf)) > h.maxUploadSize {
		return models.Artifact{}, fmt.Errorf("%w: %s", ErrFileTooLarge, field)
	}
	if len(buf) == 0 {
		return models.Artifact{}, ErrMissingFile
	}

	artifact := models.Artifact{
		Buffer:           buf,
		OriginalFilename: header.Filename,
		ContentType:      http.DetectContentType(buf),
	}

	switch kind {
	case kindImage:
		if !imageContentTypes[artifact.ContentType] {
			return models.Artifact{}, fmt.Errorf("%w: %s is %s", ErrUnsupportedFileType, field, artifact.ContentType)
		}
		return compressImage(artifact)
	case kindPDF:
		if artifact.ContentType != contentTypePDF {
			return models.Artifact{}, fmt.Errorf("%w: %s is %s", ErrUnsupportedFileType, field, artifact.ContentType)
		}
		return compressPDF(artifact)
	}

	return artifact, nil
}

// compressImage re-encodes the image as JPEG. The original is kept when the
// re-encoded version is not smaller.
func compressImage(artifact models.Artifact) (models.Artifact, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(artifact.Buffer))
	if err != nil {
		return models.Artifact{}, fmt.Errorf("%w: undecodable image: %w", ErrUnsupportedFileType, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return models.Artifact{}, fmt.Errorf("%w: image is %dx%d pixels", ErrUnsupportedFileType, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(artifact.Buffer))
	if err != nil {
		return models.Artifact{}, fmt.Errorf("%w: undecodable image: %w", ErrUnsupportedFileType, err)
	}

	var out bytes.Buffer
	if err = jpeg.Encode(&out, flattenOnWhite(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return models.Artifact{}, fmt.Errorf("error compressing image: %w", err)
	}

	if out.Len() >= len(artifact.Buffer) {
		return artifact, nil
	}

	return models.Artifact{
		Buffer:           out.Bytes(),
		OriginalFilename: strings.TrimSuffix(artifact.OriginalFilename, path.Ext(artifact.OriginalFilename)) + ".jpg",
		ContentType:      contentTypeJPEG,
	}, nil
}

// flattenOnWhite composites images with an alpha channel over a white
// background, since JPEG has no transparency and the encoder drops alpha.
func flattenOnWhite(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)

	return flat
}

// compressPDF rewrites the document with object and xref streams. The
// original is kept when the rewrite is not smaller.
func compressPDF(artifact models.Artifact) (models.Artifact, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true

	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(artifact.Buffer), &out, conf); err != nil {
		return models.Artifact{}, fmt.Errorf("%w: unreadable pdf: %w", ErrUnsupportedFileType, err)
	}

	if out.Len() >= len(artifact.Buffer) {
		return artifact, nil
	}

	return models.Artifact{
		Buffer:           out.Bytes(),
		OriginalFilename: artifact.OriginalFilename,
		ContentType:      contentTypePDF,
	}, nil
}
