package model

// DefaultLocationName is substituted when a tagging request carries no
// human-readable place name.
const DefaultLocationName = "Unknown location"

// LocationRecord is the location input to a tagging call. It is owned by
// the caller and never mutated by the engine.
type LocationRecord struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"location_name,omitempty"`
}

// DisplayName returns the location name, falling back to the default.
func (l LocationRecord) DisplayName() string {
	if l.Name == "" {
		return DefaultLocationName
	}
	return l.Name
}

// SidecarMetadata is the record persisted next to a tagged image. The key
// names are a compatibility surface: external readers parse this file, so
// they must stay stable.
type SidecarMetadata struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	LocationName     string  `json:"location_name"`
	ImagePath        string  `json:"image_path"`
	OriginalFilename string  `json:"original_filename"`
}

// GeotagResult is the outcome of a single tagging call. Success with a
// non-empty Warning means the metadata was persisted but the visual stamp
// could not be produced.
type GeotagResult struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message"`
	MetadataFile   string           `json:"metadata_file,omitempty"`
	GeotaggedImage string           `json:"geotagged_image,omitempty"`
	Warning        string           `json:"warning,omitempty"`
	Location       *SidecarMetadata `json:"location_data,omitempty"`
}

// Image is a stored upload.
type Image struct {
	ID             int64   `json:"id"`
	Filename       string  `json:"filename"`
	UniqueFilename string  `json:"unique_filename"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	LocationName   string  `json:"location_name"`
	Timestamp      string  `json:"timestamp"`
	Path           string  `json:"path"`
	SidecarPath    string  `json:"sidecar_path,omitempty"`
	GeotaggedPath  string  `json:"geotagged_path,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// HistoryEntry is a previously used tagging location. Use counts and the
// favorite flag drive ordering in the picker UI.
type HistoryEntry struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	UseCount   int     `json:"use_count"`
	Favorite   bool    `json:"favorite"`
	LastUsedAt string  `json:"last_used_at"`
}
