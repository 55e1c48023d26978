package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/piyush5566/job-portal-go/internal/models"
)

var (
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrFileNotFound    = errors.New("file not found")
)

const (
	resumePrefix   = "resumes"
	profileDir     = "img/profiles"
	companyLogoDir = "img/company_logos"

	// maxProfileDim bounds both dimensions of stored profile pictures.
	maxProfileDim = 300
)

var allowedResumeExts = map[string]bool{".pdf": true, ".doc": true, ".docx": true}
var allowedImageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// ImageKind selects the target directory and default sentinel for StoreImage.
type ImageKind string

const (
	ImageProfile ImageKind = "profile"
	ImageLogo    ImageKind = "logo"
)

// MediaStore implements the two-tier file service: a local filesystem rooted
// at MediaRoot and an optional remote ObjectStore. Suffixes persisted in the
// database are tier-relative ("<owner_id>/<filename>") and valid against
// either tier.
type MediaStore struct {
	root   string
	remote ObjectStore // nil when remote storage is disabled
}

func NewMediaStore(root string, remote ObjectStore) *MediaStore {
	return &MediaStore{root: root, remote: remote}
}

// StoreResume validates and persists a resume upload for owner. With a remote
// tier configured the bytes go to the object store under
// "resumes/<owner_id>/<filename>"; otherwise they land on the local tier.
// The returned suffix is what Application.ResumePath stores.
func (m *MediaStore) StoreResume(ctx context.Context, ownerID uint, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedResumeExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrInvalidFileType, ext)
	}

	name := sanitizeFilename(filename)
	suffix := strconv.FormatUint(uint64(ownerID), 10) + "/" + name

	if m.remote != nil {
		key := path.Join(resumePrefix, suffix)
		if err := m.remote.Put(ctx, key, data, contentTypeForExt(ext)); err != nil {
			return "", fmt.Errorf("upload resume to remote tier: %w", err)
		}
		slog.Info("resume uploaded to remote tier", "key", key, "actor_id", ownerID)
		return suffix, nil
	}

	localPath := filepath.Join(m.root, resumePrefix, filepath.FromSlash(suffix))
	if err := writeFileAtomic(localPath, data); err != nil {
		return "", fmt.Errorf("write resume to local tier: %w", err)
	}
	slog.Info("resume stored on local tier", "path", localPath, "actor_id", ownerID)
	return suffix, nil
}

// StoreImage validates and persists a profile picture or company logo. The
// stored name is random; the original filename only contributes its
// extension. Profile images are downscaled so neither dimension exceeds
// 300px. Internal failures degrade to the default image reference instead of
// propagating: image storage is never fatal to the surrounding operation.
func (m *MediaStore) StoreImage(kind ImageKind, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrInvalidFileType, ext)
	}

	dir := companyLogoDir
	fallback := models.DefaultCompanyLogo
	if kind == ImageProfile {
		dir = profileDir
		fallback = models.DefaultProfilePicture
	}

	if kind == ImageProfile {
		resized, err := resizeToFit(data, ext, maxProfileDim)
		if err != nil {
			slog.Error("profile image resize failed, using default picture", "error", err)
			return fallback, nil
		}
		data = resized
	}

	name := uuid.New().String()[:16] + ext
	rel := path.Join(dir, name)
	if err := writeFileAtomic(filepath.Join(m.root, filepath.FromSlash(rel)), data); err != nil {
		slog.Error("image write failed, using default image", "error", err, "kind", string(kind))
		return fallback, nil
	}

	slog.Info("image stored", "path", rel, "kind", string(kind))
	return rel, nil
}

// Retrieve streams a resume by its tier-relative suffix, local tier first.
// A remote hit warms the local tier for subsequent reads; a failed warm still
// serves the in-memory bytes. Absence from both tiers is ErrFileNotFound; a
// read error on a file known to exist locally is returned as-is and must be
// treated as a server error, not a 404.
func (m *MediaStore) Retrieve(ctx context.Context, suffix string) ([]byte, string, error) {
	if suffix == "" || strings.Contains(suffix, "..") {
		return nil, "", ErrFileNotFound
	}

	localPath := filepath.Join(m.root, resumePrefix, filepath.FromSlash(suffix))
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, "", fmt.Errorf("read local resume %s: %w", localPath, err)
		}
		return data, path.Base(suffix), nil
	}

	if m.remote == nil {
		return nil, "", ErrFileNotFound
	}

	key := path.Join(resumePrefix, suffix)
	ok, err := m.remote.Exists(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("check remote tier for %s: %w", key, err)
	}
	if !ok {
		return nil, "", ErrFileNotFound
	}

	data, err := m.remote.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, "", ErrFileNotFound
		}
		return nil, "", fmt.Errorf("fetch %s from remote tier: %w", key, err)
	}

	// Warm the local tier. Best effort: the bytes are already in hand.
	if err := writeFileAtomic(localPath, data); err != nil {
		slog.Warn("failed to warm local tier", "path", localPath, "error", err)
	}

	return data, path.Base(suffix), nil
}

// sanitizeFilename strips any path components and replaces characters outside
// [A-Za-z0-9._-] so uploads cannot escape their directory.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filepath.FromSlash(filename))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "file"
	}
	return base
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

func writeFileAtomic(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
