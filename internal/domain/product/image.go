package product

import (
	"regexp"
	"strings"
)

const imageBucket = "product-images"

var publicObjectPath = regexp.MustCompile(`storage/v1/object/public/[^/]+/(.+)$`)

// ResolveImageURL returns the public URL for a product image, or "" when the
// product has none. An absolute imageURL wins; otherwise imagePath is
// normalized into the product-images bucket under storageBaseURL.
func ResolveImageURL(storageBaseURL, imageURL, imagePath string) string {
	if u := strings.TrimSpace(imageURL); strings.HasPrefix(u, "http") {
		return u
	}

	p := strings.TrimSpace(imagePath)
	if p == "" {
		return ""
	}
	p = strings.TrimPrefix(p, "/")

	if strings.Contains(p, "storage/v1/object/public/") {
		if m := publicObjectPath.FindStringSubmatch(p); m != nil {
			p = m[1]
		}
	}

	if !strings.HasPrefix(p, "products/") && !strings.HasPrefix(p, "avatars/") {
		p = "products/" + p
	}

	base := strings.TrimRight(storageBaseURL, "/")
	return base + "/storage/v1/object/public/" + imageBucket + "/" + p
}
