package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"tenant-platform/internal/model"
	"tenant-platform/internal/settings"
)

// MaxLogoBytes caps uploaded tenant logos.
const MaxLogoBytes = 2 << 20

var logoTypes = []struct {
	mime string
	ext  string
}{
	{"image/png", ".png"},
	{"image/jpeg", ".jpg"},
	{"image/webp", ".webp"},
	{"image/svg+xml", ".svg"},
}

// UploadLogo stores the image read from r as the tenant's logo and returns
// its public URL. The URL is also mirrored into settings branding.logo_url.
func (tm *TenantManager) UploadLogo(ctx context.Context, id uuid.UUID, r io.Reader) (string, error) {
	if _, err := tm.storage.GetTenant(ctx, id); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxLogoBytes+1))
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: logo is empty", model.ErrValidation)
	}
	if len(data) > MaxLogoBytes {
		return "", fmt.Errorf("%w: logo exceeds %d bytes", model.ErrValidation, MaxLogoBytes)
	}

	detected := mimetype.Detect(data)
	ext := ""
	for _, lt := range logoTypes {
		if detected.Is(lt.mime) {
			ext = lt.ext
			break
		}
	}
	if ext == "" {
		return "", fmt.Errorf("%w: unsupported logo type %s", model.ErrValidation, detected.String())
	}

	dir := filepath.Join(tm.opts.UploadsDir, "tenants", id.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create logo dir: %w", err)
	}
	old, _ := filepath.Glob(filepath.Join(dir, "logo.*"))
	for _, f := range old {
		_ = os.Remove(f)
	}
	if err := os.WriteFile(filepath.Join(dir, "logo"+ext), data, 0o644); err != nil {
		return "", fmt.Errorf("write logo: %w", err)
	}

	logoURL := fmt.Sprintf("%s/uploads/tenants/%s/logo%s", strings.TrimRight(tm.opts.PublicBaseURL, "/"), id, ext)
	if err := tm.storage.UpdateTenantLogo(ctx, id, logoURL); err != nil {
		return "", err
	}

	patch, _ := json.Marshal(map[string]any{"branding": map[string]any{"logo_url": logoURL}})
	if _, err := tm.storage.UpdateTenantSettings(ctx, id, func(current []byte) ([]byte, error) {
		return settings.MergeJSON(current, patch)
	}); err != nil {
		return "", fmt.Errorf("mirror logo into settings: %w", err)
	}

	tm.publish(model.EventTenantLogoUpdated, id)
	return logoURL, nil
}
