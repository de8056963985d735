package validation

import (
	"path"
	"strings"

	"github.com/dealmarket/bff/internal/model"
)

// ImageExtensions whitelists the file extensions accepted for image keys.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateImageKey checks an incoming image key: it must be a bare file name
// (no path component) with an image extension.
func ValidateImageKey(field, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return Fail(field + ".obligatoire")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return Fail(field+".invalide", "valeur", key)
	}
	if !ImageExtensions[strings.ToLower(path.Ext(key))] {
		return Fail(field+".extensionInvalide", "valeur", key)
	}
	return nil
}

// validateImages checks every image key in a list. Stored keys carry a "_<n>"
// suffix after the extension, which is stripped before the extension check.
func validateImages(field string, images []*model.Image) error {
	for _, img := range images {
		if img == nil {
			return Fail(field + ".invalide")
		}
		if err := ValidateImageKey(field+".urlImage", stripStamp(img.StorageKey)); err != nil {
			return err
		}
	}
	return nil
}

// stripStamp removes a trailing "_<digits>" suffix added on save.
func stripStamp(key string) string {
	i := strings.LastIndexByte(key, '_')
	if i <= 0 || i == len(key)-1 {
		return key
	}
	for _, r := range key[i+1:] {
		if r < '0' || r > '9' {
			return key
		}
	}
	return key[:i]
}
