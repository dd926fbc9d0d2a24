// Package storage keeps uploaded avatars on an afero filesystem rooted at the media directory.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path"
	"strings"

	"github.com/chai2010/webp"
	"github.com/spf13/afero"
	xdraw "golang.org/x/image/draw"

	"github.com/yukikurage/qa-forum/internal/constants"
)

const (
	jpegQuality = 85
	webpQuality = 80
)

var (
	ErrInvalidImage     = errors.New("invalid image")
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrInvalidPath      = errors.New("invalid media path")
)

// AvatarStorage crops, resizes and stores avatar images.
type AvatarStorage struct {
	fs   afero.Fs
	size int
}

// NewAvatarStorage stores files under root on the OS filesystem.
func NewAvatarStorage(root string) *AvatarStorage {
	return NewAvatarStorageFs(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// NewAvatarStorageFs stores files on fs, typically afero.NewMemMapFs() in tests.
func NewAvatarStorageFs(fs afero.Fs) *AvatarStorage {
	return &AvatarStorage{fs: fs, size: constants.AvatarSize}
}

// Save decodes content, crops it to a centered square, scales it to the avatar
// size and writes it as avatars/{userID}.{ext}. The stored name is returned.
func (s *AvatarStorage) Save(userID uint64, filename string, content io.Reader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "jpeg" {
		ext = "jpg"
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}

	src, err := decode(ext, data)
	if err != nil {
		return "", err
	}
	avatar := s.squareThumbnail(src)

	var buf bytes.Buffer
	if err := encode(&buf, ext, avatar); err != nil {
		return "", fmt.Errorf("failed to encode avatar: %w", err)
	}

	name := path.Join(constants.AvatarDir, fmt.Sprintf("%d.%s", userID, ext))
	if err := s.fs.MkdirAll(constants.AvatarDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create avatar directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, name, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write avatar: %w", err)
	}
	return name, nil
}

// Delete removes a stored avatar. The shared default avatar and empty names are
// left alone, as are files that no longer exist.
func (s *AvatarStorage) Delete(name string) error {
	if name == "" || name == constants.DefaultAvatar {
		return nil
	}
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete avatar %s: %w", clean, err)
	}
	return nil
}

// Open returns a stored file for serving.
func (s *AvatarStorage) Open(name string) (afero.File, os.FileInfo, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.fs.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, os.ErrNotExist
	}
	return f, info, nil
}

// Exists reports whether name is present in storage.
func (s *AvatarStorage) Exists(name string) bool {
	clean, err := cleanName(name)
	if err != nil {
		return false
	}
	ok, err := afero.Exists(s.fs, clean)
	return err == nil && ok
}

func cleanName(name string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(name))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", ErrInvalidPath
	}
	return clean, nil
}

func (s *AvatarStorage) squareThumbnail(src image.Image) image.Image {
	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, s.size, s.size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst
}

func decode(ext string, data []byte) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)
	switch ext {
	case "jpg":
		img, err = jpeg.Decode(r)
	case "png":
		img, err = png.Decode(r)
	case "gif":
		img, err = gif.Decode(r)
	case "webp":
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	return img, nil
}

func encode(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case "jpg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		return png.Encode(w, img)
	case "gif":
		return gif.Encode(w, img, nil)
	case "webp":
		return webp.Encode(w, img, &webp.Options{Quality: webpQuality})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}
}
