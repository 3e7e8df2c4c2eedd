package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for origin images
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/devGospel/jetstores/internal/catalog"
	"github.com/devGospel/jetstores/internal/store"
)

// ThumbHandler serves downscaled product images. Catalog images live on a
// remote CDN at full size; the first request for a product fetches and
// resizes one, later requests hit the disk cache.
type ThumbHandler struct {
	Store      *store.Store
	ThumbDir   string
	HTTPClient *http.Client
}

const thumbWidth = 400

func (h *ThumbHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}
	product := catalog.ByID(id)
	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	filename, err := h.Store.GetThumbnail(id)
	if err != nil {
		slog.Error("Thumbnail lookup failed", "product", id, "error", err)
	}
	if filename != "" {
		path := filepath.Join(h.ThumbDir, filename)
		if _, statErr := os.Stat(path); statErr == nil {
			w.Header().Set("Cache-Control", "public, max-age=86400")
			http.ServeFile(w, r, path)
			return
		}
		// Cache row without a file; regenerate below.
	}

	filename, err = h.generate(r, product.ImageURL, id)
	if err != nil {
		slog.Warn("Thumbnail generation failed, redirecting to origin", "product", id, "error", err)
		http.Redirect(w, r, product.ImageURL, http.StatusFound)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, filepath.Join(h.ThumbDir, filename))
}

// generate fetches the origin image, resizes it to card width and records
// it in the cache.
func (h *ThumbHandler) generate(r *http.Request, imageURL string, productID int) (string, error) {
	client := h.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("origin returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Resize image (fixed width, preserve aspect ratio)
	thumb := resize.Resize(thumbWidth, 0, img, resize.Lanczos3)

	if err := os.MkdirAll(h.ThumbDir, 0o755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	out, err := os.Create(filepath.Join(h.ThumbDir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return "", err
	}
	if err := h.Store.SetThumbnail(productID, filename); err != nil {
		slog.Error("Failed to record thumbnail", "product", productID, "error", err)
	}
	return filename, nil
}
