// Package attributes is a compiled-in directory of the Spotlight metadata
// attributes this module knows about, for discovery and for driving typed
// coercion of mdls -raw output.
package attributes

import (
	"sort"
	"strings"
)

type Type string

const (
	TypeUnknown Type = ""
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBool    Type = "bool"
	TypeDate    Type = "date"
	TypeArray   Type = "array"
)

type Category string

const (
	CategoryFileSystem Category = "filesystem"
	CategoryCommon     Category = "common"
	CategoryImage      Category = "image"
	CategoryAudio      Category = "audio"
	CategoryVideo      Category = "video"
	CategoryDocument   Category = "document"
	CategoryLocation   Category = "location"
)

// Definition describes one known Spotlight attribute. Read-only reference
// data compiled into the binary.
type Definition struct {
	Name        string
	Description string
	Type        Type
	Example     string
	Category    Category
}

// Common Uniform Type Identifiers usable as kMDItemContentType values.
const (
	UTIImage       = "public.image"
	UTIMovie       = "public.movie"
	UTIAudio       = "public.audio"
	UTIText        = "public.text"
	UTIPlainText   = "public.plain-text"
	UTIFolder      = "public.folder"
	UTIApplication = "com.apple.application-bundle"
	UTIPDF         = "com.adobe.pdf"
	UTIJPEG        = "public.jpeg"
	UTIPNG         = "public.png"
	UTIMPEG4       = "public.mpeg-4"
	UTIMP3         = "public.mp3"
)

var directory = []Definition{
	// File system
	{Name: "kMDItemFSName", Description: "File name on disk", Type: TypeString, Example: "report.pdf", Category: CategoryFileSystem},
	{Name: "kMDItemPath", Description: "Full path to the file", Type: TypeString, Example: "/Users/me/report.pdf", Category: CategoryFileSystem},
	{Name: "kMDItemDisplayName", Description: "Localized name shown in Finder", Type: TypeString, Example: "report.pdf", Category: CategoryFileSystem},
	{Name: "kMDItemFSSize", Description: "File size in bytes", Type: TypeNumber, Example: "48231", Category: CategoryFileSystem},
	{Name: "kMDItemFSCreationDate", Description: "File creation date", Type: TypeDate, Category: CategoryFileSystem},
	{Name: "kMDItemFSContentChangeDate", Description: "Last change to file content", Type: TypeDate, Category: CategoryFileSystem},
	{Name: "kMDItemFSOwnerUserID", Description: "Owning user id", Type: TypeNumber, Category: CategoryFileSystem},
	{Name: "kMDItemFSOwnerGroupID", Description: "Owning group id", Type: TypeNumber, Category: CategoryFileSystem},
	{Name: "kMDItemFSInvisible", Description: "Whether Finder hides the file", Type: TypeBool, Category: CategoryFileSystem},
	{Name: "kMDItemFSIsExtensionHidden", Description: "Whether the extension is hidden", Type: TypeBool, Category: CategoryFileSystem},
	{Name: "kMDItemFSLabel", Description: "Finder label index", Type: TypeNumber, Category: CategoryFileSystem},

	// Common
	{Name: "kMDItemContentType", Description: "Uniform Type Identifier of the content", Type: TypeString, Example: UTIPDF, Category: CategoryCommon},
	{Name: "kMDItemContentTypeTree", Description: "UTI hierarchy of the content", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemKind", Description: "Localized kind string", Type: TypeString, Example: "PDF document", Category: CategoryCommon},
	{Name: "kMDItemContentCreationDate", Description: "Content creation date", Type: TypeDate, Category: CategoryCommon},
	{Name: "kMDItemContentModificationDate", Description: "Content modification date", Type: TypeDate, Category: CategoryCommon},
	{Name: "kMDItemLastUsedDate", Description: "Last time the item was opened", Type: TypeDate, Category: CategoryCommon},
	{Name: "kMDItemUsedDates", Description: "Days on which the item was used", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemUseCount", Description: "Number of times the item was used", Type: TypeNumber, Category: CategoryCommon},
	{Name: "kMDItemDateAdded", Description: "Date the item was moved to its location", Type: TypeDate, Category: CategoryCommon},
	{Name: "kMDItemDownloadedDate", Description: "Date the item was downloaded", Type: TypeDate, Category: CategoryCommon},
	{Name: "kMDItemWhereFroms", Description: "URLs the item was downloaded from", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemTitle", Description: "Title of the document", Type: TypeString, Category: CategoryCommon},
	{Name: "kMDItemAuthors", Description: "Authors of the document", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemContributors", Description: "Contributors to the document", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemKeywords", Description: "Keywords associated with the item", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemSubject", Description: "Subject of the document", Type: TypeString, Category: CategoryCommon},
	{Name: "kMDItemDescription", Description: "Description of the content", Type: TypeString, Category: CategoryCommon},
	{Name: "kMDItemComment", Description: "Free-form comment", Type: TypeString, Category: CategoryCommon},
	{Name: "kMDItemCopyright", Description: "Copyright owner", Type: TypeString, Category: CategoryCommon},
	{Name: "kMDItemLanguages", Description: "Languages of the content", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemTextContent", Description: "Indexed text of the document", Type: TypeString, Category: CategoryCommon},
	{Name: "kMDItemCreator", Description: "Application that created the content", Type: TypeString, Example: "Pages", Category: CategoryCommon},
	{Name: "kMDItemEncodingApplications", Description: "Applications that encoded the content", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemVersion", Description: "Version of the document", Type: TypeString, Category: CategoryCommon},
	{Name: "kMDItemFinderComment", Description: "Finder comment", Type: TypeString, Category: CategoryCommon},
	{Name: "kMDItemEmailAddresses", Description: "Email addresses in the document", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemPhoneNumbers", Description: "Phone numbers in the document", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemRecipients", Description: "Recipients of the document", Type: TypeArray, Category: CategoryCommon},
	{Name: "kMDItemSupportFileType", Description: "Legacy file type hints", Type: TypeArray, Category: CategoryCommon},

	// Image
	{Name: "kMDItemPixelHeight", Description: "Image height in pixels", Type: TypeNumber, Example: "1080", Category: CategoryImage},
	{Name: "kMDItemPixelWidth", Description: "Image width in pixels", Type: TypeNumber, Example: "1920", Category: CategoryImage},
	{Name: "kMDItemPixelCount", Description: "Total pixel count", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemColorSpace", Description: "Color space model", Type: TypeString, Example: "RGB", Category: CategoryImage},
	{Name: "kMDItemBitsPerSample", Description: "Bits per color sample", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemHasAlphaChannel", Description: "Whether the image has an alpha channel", Type: TypeBool, Category: CategoryImage},
	{Name: "kMDItemOrientation", Description: "Orientation (0 landscape, 1 portrait)", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemAcquisitionMake", Description: "Camera manufacturer", Type: TypeString, Example: "Apple", Category: CategoryImage},
	{Name: "kMDItemAcquisitionModel", Description: "Camera model", Type: TypeString, Example: "iPhone 15 Pro", Category: CategoryImage},
	{Name: "kMDItemExposureTimeSeconds", Description: "Exposure time in seconds", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemFNumber", Description: "Aperture f-number", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemISOSpeed", Description: "ISO speed rating", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemFocalLength", Description: "Focal length in millimeters", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemFlashOnOff", Description: "Whether the flash fired", Type: TypeBool, Category: CategoryImage},
	{Name: "kMDItemResolutionWidthDPI", Description: "Horizontal resolution in DPI", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemResolutionHeightDPI", Description: "Vertical resolution in DPI", Type: TypeNumber, Category: CategoryImage},
	{Name: "kMDItemProfileName", Description: "Color profile name", Type: TypeString, Category: CategoryImage},

	// Audio
	{Name: "kMDItemDurationSeconds", Description: "Duration in seconds", Type: TypeNumber, Category: CategoryAudio},
	{Name: "kMDItemAudioBitRate", Description: "Audio bit rate in bits per second", Type: TypeNumber, Category: CategoryAudio},
	{Name: "kMDItemAudioSampleRate", Description: "Sample rate in hertz", Type: TypeNumber, Category: CategoryAudio},
	{Name: "kMDItemAudioChannelCount", Description: "Number of audio channels", Type: TypeNumber, Category: CategoryAudio},
	{Name: "kMDItemAlbum", Description: "Album title", Type: TypeString, Category: CategoryAudio},
	{Name: "kMDItemComposer", Description: "Composer", Type: TypeString, Category: CategoryAudio},
	{Name: "kMDItemMusicalGenre", Description: "Musical genre", Type: TypeString, Category: CategoryAudio},
	{Name: "kMDItemRecordingYear", Description: "Recording year", Type: TypeNumber, Category: CategoryAudio},
	{Name: "kMDItemAudioTrackNumber", Description: "Track number within the album", Type: TypeNumber, Category: CategoryAudio},
	{Name: "kMDItemTempo", Description: "Tempo in beats per minute", Type: TypeNumber, Category: CategoryAudio},

	// Video
	{Name: "kMDItemCodecs", Description: "Codecs used in the media", Type: TypeArray, Category: CategoryVideo},
	{Name: "kMDItemMediaTypes", Description: "Media types present", Type: TypeArray, Category: CategoryVideo},
	{Name: "kMDItemTotalBitRate", Description: "Combined audio and video bit rate", Type: TypeNumber, Category: CategoryVideo},
	{Name: "kMDItemVideoBitRate", Description: "Video bit rate in bits per second", Type: TypeNumber, Category: CategoryVideo},
	{Name: "kMDItemStreamable", Description: "Whether the media is streamable", Type: TypeBool, Category: CategoryVideo},
	{Name: "kMDItemDeliveryType", Description: "Delivery type (fast start or RTSP)", Type: TypeString, Category: CategoryVideo},

	// Document
	{Name: "kMDItemNumberOfPages", Description: "Page count", Type: TypeNumber, Category: CategoryDocument},
	{Name: "kMDItemPageHeight", Description: "Page height in points", Type: TypeNumber, Category: CategoryDocument},
	{Name: "kMDItemPageWidth", Description: "Page width in points", Type: TypeNumber, Category: CategoryDocument},
	{Name: "kMDItemSecurityMethod", Description: "Encryption method of the document", Type: TypeString, Category: CategoryDocument},
	{Name: "kMDItemFonts", Description: "Fonts used in the document", Type: TypeArray, Category: CategoryDocument},

	// Location
	{Name: "kMDItemLatitude", Description: "Latitude where the item was created", Type: TypeNumber, Category: CategoryLocation},
	{Name: "kMDItemLongitude", Description: "Longitude where the item was created", Type: TypeNumber, Category: CategoryLocation},
	{Name: "kMDItemAltitude", Description: "Altitude in meters", Type: TypeNumber, Category: CategoryLocation},
	{Name: "kMDItemCity", Description: "City where the item was created", Type: TypeString, Category: CategoryLocation},
	{Name: "kMDItemStateOrProvince", Description: "State or province", Type: TypeString, Category: CategoryLocation},
	{Name: "kMDItemCountry", Description: "Country where the item was created", Type: TypeString, Category: CategoryLocation},
	{Name: "kMDItemGPSDateStamp", Description: "GPS date stamp", Type: TypeDate, Category: CategoryLocation},
}

var byName = func() map[string]Definition {
	m := make(map[string]Definition, len(directory))
	for _, def := range directory {
		m[def.Name] = def
	}
	return m
}()

// Lookup returns the definition for an exact attribute name.
func Lookup(name string) (Definition, bool) {
	def, ok := byName[name]
	return def, ok
}

// TypeOf returns the expected value type for an attribute, or TypeUnknown
// for attributes outside the compiled table.
func TypeOf(name string) Type {
	if def, ok := byName[name]; ok {
		return def.Type
	}

	return TypeUnknown
}

// Search returns all definitions whose name or description contains the
// given substring, case-insensitively, sorted by name.
func Search(substr string) []Definition {
	substr = strings.ToLower(substr)

	var matches []Definition
	for _, def := range directory {
		if strings.Contains(strings.ToLower(def.Name), substr) ||
			strings.Contains(strings.ToLower(def.Description), substr) {
			matches = append(matches, def)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches
}

// ByCategory returns all definitions in a category, sorted by name.
func ByCategory(cat Category) []Definition {
	var matches []Definition
	for _, def := range directory {
		if def.Category == cat {
			matches = append(matches, def)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches
}

// Names returns every known attribute name, sorted.
func Names() []string {
	names := make([]string, 0, len(directory))
	for _, def := range directory {
		names = append(names, def.Name)
	}

	sort.Strings(names)
	return names
}
