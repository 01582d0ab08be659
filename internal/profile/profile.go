// Package profile holds named blurhash presets.
package profile

import "sort"

// DefaultName is used when a requested profile does not exist.
const DefaultName = "balanced"

// Profile defines how placeholders are computed and previewed.
type Profile struct {
	Name       string
	ComponentX int // encode grid, 1-9
	ComponentY int

	// Downscale applies the size-band reduction before encoding. Large
	// images then use fewer components than requested.
	Downscale bool

	// Placeholder decode size. PlaceholderHeight 0 derives it from the
	// source aspect ratio.
	PlaceholderWidth  int
	PlaceholderHeight int

	Punch   float64
	Preview string  // preview format, "" disables preview files
	Soften  float64 // Gaussian radius applied to previews, 0 = none
	Quality int     // preview quality for lossy formats
}

// Built-in profiles.
var profiles = map[string]Profile{
	// Mirrors the Android component: 8×8 encode, 4×3 placeholder bitmap.
	"compose": {
		Name:              "compose",
		ComponentX:        8,
		ComponentY:        8,
		Downscale:         true,
		PlaceholderWidth:  4,
		PlaceholderHeight: 3,
		Punch:             1,
		Preview:           "png",
	},
	"balanced": {
		Name:             "balanced",
		ComponentX:       4,
		ComponentY:       3,
		Downscale:        true,
		PlaceholderWidth: 32,
		Punch:            1,
		Preview:          "png",
	},
	"detailed": {
		Name:             "detailed",
		ComponentX:       9,
		ComponentY:       9,
		Downscale:        false,
		PlaceholderWidth: 64,
		Punch:            1.1,
		Preview:          "jpeg",
		Soften:           1,
		Quality:          85,
	},
	"compact": {
		Name:              "compact",
		ComponentX:        1,
		ComponentY:        1,
		Downscale:         true,
		PlaceholderWidth:  1,
		PlaceholderHeight: 1,
		Punch:             1,
	},
}

// Get returns a profile by name. Falls back to DefaultName if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Exists reports whether name is a built-in profile.
func Exists(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names returns built-in profile names sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PlaceholderSize returns the decode size for an image of the given
// aspect ratio (width / height).
func (p Profile) PlaceholderSize(aspect float64) (int, int) {
	w := p.PlaceholderWidth
	if w <= 0 {
		w = 32
	}
	if p.PlaceholderHeight > 0 {
		return w, p.PlaceholderHeight
	}
	if aspect <= 0 {
		return w, w
	}
	h := int(float64(w)/aspect + 0.5)
	if h < 1 {
		h = 1
	}
	return w, h
}
