// Package constants provides shared constants used throughout menumap:
// file permissions, matching thresholds, extraction limits and the default
// locations of source and output files.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Matching thresholds used when reconciling partials against the catalog
const (
	// DefaultPrefixLength is the number of leading runes compared in the
	// prefix tier of catalog-wide matching.
	DefaultPrefixLength = 15

	// CatalogMinOverlap is the minimum shared token count for a catalog-wide
	// token match.
	CatalogMinOverlap = 2

	// CategoryMinOverlap is the minimum shared token count for a match
	// restricted to one category.
	CategoryMinOverlap = 3
)

// Extraction limits
const (
	// MinDishNameLength is the shortest image stem accepted as a dish name.
	MinDishNameLength = 3

	// MinTitleLength is the shortest markup title or paragraph considered.
	MinTitleLength = 5

	// MarkupLookahead bounds the block of the last markup title, in characters.
	MarkupLookahead = 10000

	// TranscriptMinDishLength is the shortest transcript line taken as a dish.
	TranscriptMinDishLength = 5

	// LongParagraph is the rune length above which an unlabeled paragraph
	// becomes a description.
	LongParagraph = 50
)

// Default file locations
const (
	// DefaultArchive is the image archive read by rebuild.
	DefaultArchive = "sapiens photo.zip"

	// DefaultMarkupMember is the archive member holding the exported menu page.
	DefaultMarkupMember = "SapiensKitchen.html"

	// DefaultCatalog is the catalog JSON written by rebuild and import.
	DefaultCatalog = "menu.json"

	// DefaultAssetsDir receives extracted dish images.
	DefaultAssetsDir = "src/assets/menu"

	// AssetsRef is the relative prefix of image references in the catalog.
	AssetsRef = "images"
)

// Default code pages for archive member names
const (
	// DefaultLegacyEncoding is the code page assumed by readers that ignore
	// the UTF-8 flag.
	DefaultLegacyEncoding = "cp437"

	// DefaultRegionalEncoding is the code page the archive was actually
	// written with.
	DefaultRegionalEncoding = "windows-1251"
)

// FallbackCategory receives dishes no classifier rule matches.
const FallbackCategory = "Прочее"
