// Package imaging provides the image I/O collaborators around the card
// detection engine: loading and caching decoded photos, cropping to a
// detected or manually specified region, saving the result, and
// classifying the photo's background to pick a detection strategy.
//
// The detection engine itself (package detect) never touches the
// filesystem; everything that opens, encodes, or writes files lives here.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left
// corner. Regions use inclusive left/top and exclusive right/bottom.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are
// stateless and may be called concurrently on different images.
package imaging
