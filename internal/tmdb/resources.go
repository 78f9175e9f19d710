package tmdb

// AlternativeTitleResource is a single entry from the provider's
// alternative-title list.
type AlternativeTitleResource struct {
	ISO3166 string `json:"iso_3166_1"`
	Title   string `json:"title"`
	Type    string `json:"type"`
}

// AlternativeTitlesResource wraps the alternative-title list.
type AlternativeTitlesResource struct {
	Titles []AlternativeTitleResource `json:"titles"`
}

// TranslationDataResource holds the translated fields of a translation entry.
type TranslationDataResource struct {
	Title    string `json:"title"`
	Overview string `json:"overview"`
	Homepage string `json:"homepage"`
}

// TranslationResource is a single translation record.
type TranslationResource struct {
	ISO3166 string                  `json:"iso_3166_1"`
	ISO639  string                  `json:"iso_639_1"`
	Name    string                  `json:"name"`
	Data    TranslationDataResource `json:"data"`
}

// TranslationsResource wraps the translation list.
type TranslationsResource struct {
	Translations []TranslationResource `json:"translations"`
}

// Release date type codes used by the provider.
const (
	ReleaseTypePhysical = 5
	ReleaseTypeDigital  = 4
)

// ReleaseDateResource is one dated release entry within a country.
type ReleaseDateResource struct {
	Certification string `json:"certification"`
	ISO639        string `json:"iso_639_1"`
	Note          string `json:"note"`
	ReleaseDate   string `json:"release_date"`
	Type          int    `json:"type"`
}

// ReleaseDatesCountryResource groups release dates by country.
type ReleaseDatesCountryResource struct {
	ISO3166      string                `json:"iso_3166_1"`
	ReleaseDates []ReleaseDateResource `json:"release_dates"`
}

// ReleaseDatesResource wraps the per-country release date list.
type ReleaseDatesResource struct {
	Results []ReleaseDatesCountryResource `json:"results"`
}

// VideoResource is a single video entry (trailers, teasers, clips).
type VideoResource struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Size int    `json:"size"`
	Type string `json:"type"`
}

// VideosResource wraps the video list.
type VideosResource struct {
	Results []VideoResource `json:"results"`
}

// CastResource is a single cast entry.
type CastResource struct {
	ID          int    `json:"id"`
	CreditID    string `json:"credit_id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// CrewResource is a single crew entry.
type CrewResource struct {
	ID          int    `json:"id"`
	CreditID    string `json:"credit_id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Job         string `json:"job"`
	ProfilePath string `json:"profile_path"`
}

// CreditsResource wraps cast and crew lists.
type CreditsResource struct {
	Cast []CastResource `json:"cast"`
	Crew []CrewResource `json:"crew"`
}

// GenreResource is a single genre entry.
type GenreResource struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompanyResource is a single production company entry.
type ProductionCompanyResource struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CollectionResource describes the collection a movie belongs to.
type CollectionResource struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// statusCodeDeleted is the provider's soft-error code for a record that
// was removed upstream.
const statusCodeDeleted = 34

// MovieResource is the full detail payload for a single movie, including
// the appended alternative-title, release-date, video, credit, and
// translation sub-resources.
type MovieResource struct {
	ID               int     `json:"id"`
	IMDBID           string  `json:"imdb_id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	Homepage         string  `json:"homepage"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	Runtime          int     `json:"runtime"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`

	Genres              []GenreResource             `json:"genres"`
	ProductionCompanies []ProductionCompanyResource `json:"production_companies"`
	BelongsToCollection *CollectionResource         `json:"belongs_to_collection"`

	AlternativeTitles AlternativeTitlesResource `json:"alternative_titles"`
	ReleaseDates      ReleaseDatesResource      `json:"release_dates"`
	Videos            VideosResource            `json:"videos"`
	Credits           CreditsResource           `json:"credits"`
	Translations      TranslationsResource      `json:"translations"`

	// Soft-error envelope: populated on HTTP success when the provider
	// could not serve the record.
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// MovieResult is a single movie from search, find, and discovery
// responses. The trailer fields only appear in this payload shape.
type MovieResult struct {
	ID                  int     `json:"id"`
	Title               string  `json:"title"`
	Overview            string  `json:"overview"`
	PosterPath          string  `json:"poster_path"`
	ReleaseDate         string  `json:"release_date"`
	PhysicalRelease     string  `json:"physical_release"`
	PhysicalReleaseNote string  `json:"physical_release_note"`
	TrailerKey          string  `json:"trailer_key"`
	TrailerSite         string  `json:"trailer_site"`
	VoteAverage         float64 `json:"vote_average"`
	VoteCount           int     `json:"vote_count"`
}

// SearchResource is the paginated search response.
type SearchResource struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// FindResource is the response of the external-id find endpoint.
type FindResource struct {
	MovieResults []MovieResult `json:"movie_results"`
}

// changeResource is one entry of the changed-ids feed.
type changeResource struct {
	ID int `json:"id"`
}

// changesResource is the changed-ids feed response.
type changesResource struct {
	Results []changeResource `json:"results"`
}
