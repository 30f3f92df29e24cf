package media

// Fixed MIME allow-list for post attachments. Validation happens here, at
// the boundary, before any post ever references the resulting URL.

const (
	MaxImageSize = 10 << 20  // 10 MB
	MaxVideoSize = 100 << 20 // 100 MB
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var videoTypes = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}
