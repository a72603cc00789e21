package slideview

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
)

// fontKey uniquely identifies a sized face by name, size, bold, and italic.
type fontKey struct {
	name   string
	size   float64
	bold   bool
	italic bool
}

// FontCache manages font loading and face caching. It searches system font
// directories and user-specified directories for .ttf and .otf files, then
// caches parsed sources and sized faces.
type FontCache struct {
	mu      sync.RWMutex
	dirs    []string
	sources map[string]*text.FontSource // lowercase font name -> parsed source
	faces   map[fontKey]text.Face
	scanned bool
}

var (
	sharedCacheOnce sync.Once
	sharedCache     *FontCache
)

// sharedFontCache is the process-wide cache used when render options carry
// no explicit one.
func sharedFontCache() *FontCache {
	sharedCacheOnce.Do(func() { sharedCache = NewFontCache() })
	return sharedCache
}

// NewFontCache creates a FontCache that searches the given directories plus
// the OS default font directories.
func NewFontCache(extraDirs ...string) *FontCache {
	dirs := append(systemFontDirs(), extraDirs...)
	return &FontCache{
		dirs:    dirs,
		sources: make(map[string]*text.FontSource),
		faces:   make(map[fontKey]text.Face),
	}
}

// GetFace returns a sized face for the given font properties, walking the
// substitution table when the requested family is not installed. Returns the
// zero Face if nothing usable is found.
func (fc *FontCache) GetFace(name string, sizePt float64, bold, italic bool) (text.Face, bool) {
	fc.ensureScanned()

	key := fontKey{name: strings.ToLower(name), size: sizePt, bold: bold, italic: italic}

	fc.mu.RLock()
	if face, ok := fc.faces[key]; ok {
		fc.mu.RUnlock()
		return face, true
	}
	fc.mu.RUnlock()

	src := fc.findSource(name, bold, italic)
	if src == nil {
		for _, sub := range substitutesFor(name) {
			if src = fc.findSource(sub, bold, italic); src != nil {
				break
			}
		}
	}
	if src == nil {
		return nil, false
	}

	face := src.Face(sizePt)
	fc.mu.Lock()
	fc.faces[key] = face
	fc.mu.Unlock()
	return face, true
}

// findSource looks up a parsed source by name, trying style-specific
// variants first.
func (fc *FontCache) findSource(name string, bold, italic bool) *text.FontSource {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	lower := strings.ToLower(name)
	if src := fc.findSourceByKey(lower, bold, italic); src != nil {
		return src
	}
	if alias, ok := chineseFontAliases[lower]; ok {
		return fc.findSourceByKey(alias, bold, italic)
	}
	return nil
}

// findSourceByKey looks up a source by its already-lowercased key, with
// style variants. Windows font files use "arialbd", "arialbi", "ariali".
func (fc *FontCache) findSourceByKey(lower string, bold, italic bool) *text.FontSource {
	if bold && italic {
		for _, suffix := range []string{" bold italic", "bi", " bolditalic", "z"} {
			if src, ok := fc.sources[lower+suffix]; ok {
				return src
			}
		}
	}
	if bold {
		for _, suffix := range []string{" bold", "bd", "b"} {
			if src, ok := fc.sources[lower+suffix]; ok {
				return src
			}
		}
	}
	if italic {
		for _, suffix := range []string{" italic", "i", " it"} {
			if src, ok := fc.sources[lower+suffix]; ok {
				return src
			}
		}
	}
	if src, ok := fc.sources[lower]; ok {
		return src
	}
	return nil
}

// LoadFont manually loads a TrueType/OpenType font file and registers it
// under the given name. Returns an error if the file exceeds
// maxFontFileSize.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.sources[strings.ToLower(name)] = src
	fc.registerByFamilyName(src)
	fc.mu.Unlock()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDirDepth(dir, 0)
	}
}

// maxFontScanDepth limits recursive directory traversal when scanning for
// fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into
// memory.
const maxFontFileSize = 20 << 20 // 20 MB

func (fc *FontCache) scanDirDepth(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDirDepth(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		src, err := text.NewFontSource(data)
		if err != nil {
			continue
		}
		baseName := strings.TrimSuffix(lower, filepath.Ext(lower))
		fc.sources[baseName] = src
		fc.registerByFamilyName(src)
	}
}

// registerByFamilyName registers a source by the family and full names from
// its name table.
func (fc *FontCache) registerByFamilyName(src *text.FontSource) {
	parsed := src.Parsed()
	if name := parsed.Name(); name != "" {
		fc.sources[strings.ToLower(name)] = src
	}
	if full := parsed.FullName(); full != "" {
		fc.sources[strings.ToLower(full)] = src
	}
}

// substitutesFor lists installed-font fallbacks for common deck fonts, in
// preference order.
func substitutesFor(name string) []string {
	switch strings.ToLower(name) {
	case "calibri", "candara", "segoe ui", "corbel":
		return []string{"carlito", "liberation sans", "dejavu sans", "arial", "helvetica"}
	case "cambria", "constantia", "georgia":
		return []string{"caladea", "liberation serif", "dejavu serif", "times new roman"}
	case "arial", "helvetica", "verdana", "tahoma":
		return []string{"liberation sans", "dejavu sans", "arial", "helvetica"}
	case "times new roman", "times":
		return []string{"liberation serif", "dejavu serif"}
	case "courier new", "consolas", "courier":
		return []string{"liberation mono", "dejavu sans mono"}
	default:
		return []string{"liberation sans", "dejavu sans", "arial", "helvetica"}
	}
}

// chineseFontAliases maps Chinese font names to their English equivalents, so
// files that reference fonts by Chinese name find them in the cache where
// they are registered by English family name.
var chineseFontAliases = map[string]string{
	"宋体":      "simsun",
	"黑体":      "simhei",
	"微软雅黑":    "microsoft yahei",
	"微软雅黑 ui": "microsoft yahei ui",
	"楷体":      "kaiti",
	"仿宋":      "fangsong",
	"新宋体":     "nsimsun",
	"等线":      "dengxian",
	"华文细黑":    "stxihei",
	"华文黑体":    "stheiti",
	"华文楷体":    "stkaiti",
	"华文宋体":    "stsong",
	"华文仿宋":    "stfangsong",
	"华文中宋":    "stzhongsong",
	"隶书":      "lisu",
	"幼圆":      "youyuan",
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		dirs := []string{filepath.Join(windir, "Fonts")}
		if localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default: // linux, freebsd, etc.
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
