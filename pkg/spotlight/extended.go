package spotlight

import (
	"context"
)

// ExtendedMetadata is an ergonomic view over a Metadata record: flat
// Spotlight attributes mapped onto basic, EXIF, and XMP sub-maps. The
// original record is retained verbatim in Spotlight.
type ExtendedMetadata struct {
	Basic     map[string]any
	EXIF      map[string]any
	XMP       map[string]any
	Spotlight *Metadata
}

var basicAttributeMap = map[string]string{
	"kMDItemFSName":              "name",
	"kMDItemDisplayName":         "displayName",
	"kMDItemPath":                "path",
	"kMDItemFSSize":              "size",
	"kMDItemContentType":         "contentType",
	"kMDItemContentTypeTree":     "contentTypeTree",
	"kMDItemKind":                "kind",
	"kMDItemFSCreationDate":      "created",
	"kMDItemFSContentChangeDate": "modified",
	"kMDItemLastUsedDate":        "lastOpened",
	"kMDItemDateAdded":           "added",
	"kMDItemUseCount":            "useCount",
}

var exifAttributeMap = map[string]string{
	"kMDItemAcquisitionMake":     "make",
	"kMDItemAcquisitionModel":    "model",
	"kMDItemExposureTimeSeconds": "exposureTime",
	"kMDItemFNumber":             "fNumber",
	"kMDItemISOSpeed":            "isoSpeed",
	"kMDItemFocalLength":         "focalLength",
	"kMDItemFlashOnOff":          "flash",
	"kMDItemPixelHeight":         "pixelHeight",
	"kMDItemPixelWidth":          "pixelWidth",
	"kMDItemColorSpace":          "colorSpace",
	"kMDItemBitsPerSample":       "bitsPerSample",
	"kMDItemHasAlphaChannel":     "hasAlphaChannel",
	"kMDItemOrientation":         "orientation",
	"kMDItemLatitude":            "latitude",
	"kMDItemLongitude":           "longitude",
	"kMDItemAltitude":            "altitude",
	"kMDItemGPSDateStamp":        "gpsDate",
}

var xmpAttributeMap = map[string]string{
	"kMDItemAuthors":      "authors",
	"kMDItemContributors": "contributors",
	"kMDItemTitle":        "title",
	"kMDItemSubject":      "subject",
	"kMDItemKeywords":     "keywords",
	"kMDItemDescription":  "description",
	"kMDItemComment":      "comment",
	"kMDItemCopyright":    "copyright",
	"kMDItemCreator":      "creatorTool",
	"kMDItemLanguages":    "languages",
	"kMDItemVersion":      "version",
}

// GetExtendedMetadata fetches all metadata for a path and builds the
// structured view.
func (s *Spotlight) GetExtendedMetadata(ctx context.Context, path string) (*ExtendedMetadata, error) {
	md, err := s.GetMetadata(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	return NewExtendedMetadata(md), nil
}

// NewExtendedMetadata builds the basic/EXIF/XMP view from an existing
// Metadata record. Attributes absent from the record are absent from the
// views; present-but-null attributes carry through as nil.
func NewExtendedMetadata(md *Metadata) *ExtendedMetadata {
	return &ExtendedMetadata{
		Basic:     project(md, basicAttributeMap),
		EXIF:      project(md, exifAttributeMap),
		XMP:       project(md, xmpAttributeMap),
		Spotlight: md,
	}
}

func project(md *Metadata, table map[string]string) map[string]any {
	out := make(map[string]any)

	for attr, field := range table {
		if v, ok := md.Get(attr); ok {
			out[field] = v
		}
	}

	return out
}
