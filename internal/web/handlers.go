package web

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intelligrit/geostamp/internal/model"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("File too large (max %dMB)", s.MaxUploadBytes>>20), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "No file part", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "No file part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		jsonError(w, "No selected file", http.StatusBadRequest)
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		jsonError(w, "File type not allowed", http.StatusBadRequest)
		return
	}

	latStr := r.FormValue("lat")
	lngStr := r.FormValue("lng")
	if latStr == "" || lngStr == "" {
		jsonError(w, "No location data provided", http.StatusBadRequest)
		return
	}
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		jsonError(w, "Invalid location data", http.StatusBadRequest)
		return
	}
	locationName := r.FormValue("location_name")

	timestamp := time.Now().Format("20060102_150405")
	unique := fmt.Sprintf("%s_%s_%s", timestamp, uuid.NewString()[:8], sanitizeFilename(header.Filename))
	dstPath := filepath.Join(s.UploadDir, unique)

	if err := saveUpload(file, dstPath); err != nil {
		jsonError(w, fmt.Sprintf("saving upload: %v", err), http.StatusInternalServerError)
		return
	}

	rec := model.LocationRecord{Latitude: lat, Longitude: lng, Name: locationName}
	res := s.Engine.Tag(r.Context(), dstPath, rec)
	if !res.Success {
		// Mirror the engine's contract: a failed tagging call leaves no
		// partial side effects, including the upload itself.
		os.Remove(dstPath)
		jsonError(w, res.Message, http.StatusInternalServerError)
		return
	}

	img := &model.Image{
		Filename:       sanitizeFilename(header.Filename),
		UniqueFilename: unique,
		Lat:            lat,
		Lng:            lng,
		LocationName:   rec.DisplayName(),
		Timestamp:      timestamp,
		Path:           dstPath,
		SidecarPath:    res.MetadataFile,
		GeotaggedPath:  res.GeotaggedImage,
	}
	if err := s.Store.InsertImage(img); err != nil {
		jsonError(w, fmt.Sprintf("storing image record: %v", err), http.StatusInternalServerError)
		return
	}

	if err := s.Store.RecordUse(rec.DisplayName(), lat, lng); err != nil && s.Engine.Logf != nil {
		// History is a convenience; an upsert failure should not fail
		// an upload that has already been tagged and stored.
		s.Engine.Logf("recording location history: %v", err)
	}

	payload := map[string]any{
		"success":  true,
		"image_id": img.ID,
		"message":  "Image uploaded and geotagged successfully",
	}
	if res.Warning != "" {
		payload["warning"] = res.Warning
	}
	writeJSON(w, payload)
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	images, err := s.Store.ListImages()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if images == nil {
		images = []model.Image{}
	}
	writeJSON(w, map[string]any{"images": images})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, "invalid image id", http.StatusBadRequest)
		return
	}

	img, err := s.Store.GetImage(id)
	if err == sql.ErrNoRows {
		jsonError(w, "Image not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Detail responses carry the stored bytes for display, preferring the
	// stamped copy when one was produced.
	displayPath := img.Path
	if img.GeotaggedPath != "" {
		displayPath = img.GeotaggedPath
	}
	payload := map[string]any{"image": img}
	if data, err := os.ReadFile(displayPath); err == nil {
		payload["base64"] = base64.StdEncoding.EncodeToString(data)
	}
	writeJSON(w, payload)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Store.ListHistory()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	writeJSON(w, map[string]any{"history": entries})
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, "invalid history id", http.StatusBadRequest)
		return
	}

	var body struct {
		Favorite bool `json:"favorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = s.Store.SetFavorite(id, body.Favorite)
	if err == sql.ErrNoRows {
		jsonError(w, "History entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true})
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, "invalid history id", http.StatusBadRequest)
		return
	}

	err = s.Store.DeleteHistory(id)
	if err == sql.ErrNoRows {
		jsonError(w, "History entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true})
}

func saveUpload(src io.Reader, dstPath string) error {
	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return err
	}
	return dst.Close()
}

// sanitizeFilename strips directory components and anything outside a
// conservative character set, so an uploaded name can never escape the
// upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		out = "upload"
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
