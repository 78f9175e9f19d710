package movie

import "time"

// ImageType classifies a cover image.
type ImageType string

const (
	ImagePoster   ImageType = "poster"
	ImageFanart   ImageType = "fanart"
	ImageHeadshot ImageType = "headshot"
)

// Image is a resolved cover reference.
type Image struct {
	Type ImageType
	URL  string
}

// TitleSource indicates where an alternative title came from.
type TitleSource string

const (
	// SourceProviderNative marks titles taken from the provider's own
	// alternative-title list.
	SourceProviderNative TitleSource = "tmdb"
	// SourceTranslation marks titles taken from translation records.
	SourceTranslation TitleSource = "translation"
)

// AlternativeTitle is a localized or alternate title for a movie.
type AlternativeTitle struct {
	Title    string
	Source   TitleSource
	TmdbID   int
	Language string
}

// CreditType distinguishes cast from crew entries.
type CreditType string

const (
	CreditCast CreditType = "cast"
	CreditCrew CreditType = "crew"
)

// Credit is a single cast or crew entry attached to a movie.
type Credit struct {
	Name     string
	TmdbID   int
	CreditID string
	Type     CreditType

	// Cast only.
	Character string
	Order     int

	// Crew only.
	Department string
	Job        string

	Headshot *Image
}

// Collection groups movies belonging to the same series.
type Collection struct {
	TmdbID int
	Name   string
	Images []Image
}

// Ratings carries the provider's aggregate vote data.
type Ratings struct {
	Value float64
	Votes int
}

// Movie is the canonical representation of a resolved movie.
type Movie struct {
	TmdbID int
	ImdbID string

	Title      string
	SortTitle  string
	CleanTitle string
	Slug       string

	Overview         string
	Website          string
	OriginalLanguage string
	Studio           string
	TrailerID        string
	Runtime          int

	InCinemas           *time.Time
	PhysicalRelease     *time.Time
	PhysicalReleaseNote string
	Year                int
	Status              Status

	Ratings           Ratings
	Genres            []string
	Images            []Image
	AlternativeTitles []AlternativeTitle
	Collection        *Collection

	HasPreReleaseEntry bool

	// Operational fields owned by the library manager. They are only ever
	// copied through onto a freshly mapped movie, never computed here.
	Path                string
	RootFolderPath      string
	ProfileID           int
	Monitored           bool
	MovieFileID         int64
	MinimumAvailability string
	Tags                []int
}
